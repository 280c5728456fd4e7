package repository

import (
	"context"

	"github.com/nplqhub/revise/internal/entity"
)

// UserRepository persists account records keyed by lowercased username.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Get(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Delete(ctx context.Context, username string) error
}

// TeamRepository persists team records.
type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) (*entity.Team, error)
	List(ctx context.Context) ([]entity.Team, error)
	Delete(ctx context.Context, id string) error
}
