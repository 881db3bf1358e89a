package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	Find(ctx context.Context, name string) (*entity.User, error)
}

type dbUser struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) UserRepository {
	return &dbUser{
		client: client,
	}
}

func (that *dbUser) Save(ctx context.Context, user *entity.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	userKey := "user:" + user.Name
	if err = that.client.Set(ctx, userKey, userJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set user: %w", err)
	}

	return nil
}

func (that *dbUser) Find(ctx context.Context, name string) (*entity.User, error) {
	userKey := "user:" + name

	response, err := that.client.Get(ctx, userKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}

	var existingUser entity.User
	if err = json.Unmarshal([]byte(response), &existingUser); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &existingUser, nil
}
