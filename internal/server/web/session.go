package web

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/server/auth"
	"github.com/gin-gonic/gin"
)

// sessionUserKey holds the user id decided during the current request, so
// Login or Logout followed by CurrentUserID agree before the browser sees
// the new cookie. A value of 0 means logged out.
const sessionUserKey = "session_user_id"

// SessionManager keeps the logged in user id in a signed, HttpOnly cookie.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewSessionManager(secretKey string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{secret: []byte(secretKey), ttl: ttl, secure: secure}
}

// Login issues a session for userID.
func (m *SessionManager) Login(c *gin.Context, userID int64) error {
	token, err := auth.GenerateToken(userID, m.secret, m.ttl)
	if err != nil {
		return err
	}
	m.setCookie(c, token, int(m.ttl.Seconds()))
	c.Set(sessionUserKey, userID)
	return nil
}

// Logout drops the session whether or not one exists.
func (m *SessionManager) Logout(c *gin.Context) {
	m.setCookie(c, "", -1)
	c.Set(sessionUserKey, int64(0))
}

// CurrentUserID returns the user id bound to the request, if any.
func (m *SessionManager) CurrentUserID(c *gin.Context) (int64, bool) {
	if v, ok := c.Get(sessionUserKey); ok {
		id, _ := v.(int64)
		return id, id > 0
	}

	token, err := c.Cookie(common.SessionCookieName)
	if err != nil || token == "" {
		return 0, false
	}
	id, err := auth.GetUserIDFromToken(token, m.secret)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (m *SessionManager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, value, maxAge, "/", "", m.secure, true)
}
