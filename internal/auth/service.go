// Package auth supplies the caller-identity capability consumed by the rest
// of the system: a Basic-auth middleware that resolves the current user and
// a small account service. Session management is deliberately absent.
package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mlutsenko/bookshelf/internal/database/users"
	"github.com/mlutsenko/bookshelf/internal/entities"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Service authenticates users against the local user table.
type Service struct {
	repo       *users.Repository
	bcryptCost int
}

// NewService creates an auth service.
func NewService(repo *users.Repository, bcryptCost int) *Service {
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

// Authenticate verifies a username/password pair and returns the user.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// CreateUser registers a new account with a bcrypt-hashed password.
func (s *Service) CreateUser(username, password string) (*entities.User, error) {
	if username == "" {
		return nil, errors.New("username must not be empty")
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
