package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nplqhub/revise/internal/adapter/docstore"
	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/repository"
)

const (
	userCollection = "users"
	teamCollection = "teams"
)

// UserRepository stores accounts under users/{username}. Progress lives in a
// subcollection of the same document path, so deleting a user leaves progress
// cleanup to the progress repository.
type UserRepository struct {
	store docstore.Store
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	user.Normalize()
	if err := user.Validate(); err != nil {
		return err
	}
	path := userCollection + "/" + user.ID
	_, exists, err := r.store.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("check user %s: %w", user.ID, err)
	}
	if exists {
		return entity.ErrUserAlreadyExists
	}
	if err := r.store.Set(ctx, path, userToDoc(user), false); err != nil {
		return fmt.Errorf("create user %s: %w", user.ID, err)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, username string) (*entity.User, error) {
	doc, ok, err := r.store.Get(ctx, userCollection+"/"+username)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	user := docToUser(username, doc)
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	entries, err := r.store.List(ctx, userCollection)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]entity.User, 0, len(entries))
	for _, entry := range entries {
		users = append(users, docToUser(entry.ID, entry.Data))
	}
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	if err := r.store.Delete(ctx, userCollection+"/"+username); err != nil {
		return fmt.Errorf("delete user %s: %w", username, err)
	}
	return nil
}

// TeamRepository stores teams under teams/{uuid}.
type TeamRepository struct {
	store docstore.Store
	newID func() string
}

var _ repository.TeamRepository = (*TeamRepository)(nil)

func NewTeamRepository(store docstore.Store) *TeamRepository {
	return &TeamRepository{store: store, newID: uuid.NewString}
}

func (r *TeamRepository) Create(ctx context.Context, team *entity.Team) (*entity.Team, error) {
	if err := team.Validate(); err != nil {
		return nil, err
	}
	created := *team
	created.ID = r.newID()
	if created.Members == nil {
		created.Members = []string{}
	}
	if err := r.store.Set(ctx, teamCollection+"/"+created.ID, teamToDoc(&created), false); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	return &created, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]entity.Team, error) {
	entries, err := r.store.List(ctx, teamCollection)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teams := make([]entity.Team, 0, len(entries))
	for _, entry := range entries {
		teams = append(teams, docToTeam(entry.ID, entry.Data))
	}
	return teams, nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, teamCollection+"/"+id); err != nil {
		return fmt.Errorf("delete team %s: %w", id, err)
	}
	return nil
}
