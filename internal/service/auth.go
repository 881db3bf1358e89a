package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

// AuthService resolves a username/password pair to a unique identity.
// Unknown usernames register on first login; known usernames must present
// the matching password. Passwords are stored bcrypt-hashed.
type AuthService interface {
	// Authenticate reports whether the user was newly registered.
	// A wrong password for an existing user returns ErrWrongPassword.
	Authenticate(ctx context.Context, username, password string) (bool, error)
}

type userRepo interface {
	Save(ctx context.Context, user *entity.User) error
	Find(ctx context.Context, name string) (*entity.User, error)
}

type authService struct {
	users userRepo
}

func NewAuthService(users userRepo) AuthService {
	return &authService{
		users: users,
	}
}

func (that *authService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := that.users.Find(ctx, username)

	if errors.Is(err, apperror.ErrUserNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if hashErr != nil {
			return false, fmt.Errorf("failed to hash password: %w", hashErr)
		}

		user = &entity.User{
			Name:         username,
			PasswordHash: string(hash),
		}
		if err = that.users.Save(ctx, user); err != nil {
			return false, fmt.Errorf("failed to save user: %w", err)
		}

		return true, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return false, apperror.ErrWrongPassword
	}

	return false, nil
}
