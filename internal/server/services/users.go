// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and resolving the principal
// behind a session.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/cryptox"
	"github.com/dmitrijs2005/gopherblog/internal/dbx"
	"github.com/dmitrijs2005/gopherblog/internal/server/auth"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/repomanager"
)

// UserService provides account operations:
// - Register: create users with a salted credential
// - Login: verify email and password
// - LoadPrincipal: turn a session user id into a request principal
type UserService struct {
	repomanager  repomanager.RepositoryManager
	hashPassword func(string) (string, error)
}

// NewUserService constructs a UserService over the given repositories.
func NewUserService(m repomanager.RepositoryManager) *UserService {
	return &UserService{
		repomanager:  m,
		hashPassword: cryptox.HashPassword,
	}
}

// Register creates an account. An email that is already registered yields
// common.ErrAlreadyExists and nothing is written.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	credential, err := s.hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var user *models.User
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, email)
		if err == nil {
			return common.ErrAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		user, err = repo.Create(ctx, &models.User{Email: email, Name: name, Password: credential})
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login returns the user owning email when password matches.
// An unknown email yields common.ErrEmailNotFound, a mismatch common.ErrWrongPassword.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.repomanager.Conn()).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrEmailNotFound
		}
		return nil, err
	}
	if !cryptox.CheckPassword(password, user.Password) {
		return nil, common.ErrWrongPassword
	}
	return user, nil
}

// LoadPrincipal resolves the account behind a session. A zero or unknown id
// gives the anonymous principal.
func (s *UserService) LoadPrincipal(ctx context.Context, id int64) (auth.Principal, error) {
	if id <= 0 {
		return auth.Anonymous(), nil
	}
	user, err := s.repomanager.Users(s.repomanager.Conn()).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return auth.Anonymous(), nil
		}
		return auth.Anonymous(), err
	}
	return auth.Authenticated(user), nil
}
