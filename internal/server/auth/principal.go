package auth

import "github.com/dmitrijs2005/gopherblog/internal/server/models"

// Principal is the identity a request acts as. The zero value is anonymous.
type Principal struct {
	user *models.User
}

func Anonymous() Principal {
	return Principal{}
}

// Authenticated wraps user. A nil user gives the anonymous principal.
func Authenticated(user *models.User) Principal {
	return Principal{user: user}
}

func (p Principal) IsAuthenticated() bool {
	return p.user != nil
}

// ID returns the user id, or 0 for anonymous.
func (p Principal) ID() int64 {
	if p.user == nil {
		return 0
	}
	return p.user.ID
}

// Is reports whether p is the authenticated user with the given id.
func (p Principal) Is(id int64) bool {
	return p.user != nil && p.user.ID == id
}

func (p Principal) Name() string {
	if p.user == nil {
		return ""
	}
	return p.user.Name
}
