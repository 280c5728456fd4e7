package usecase

import (
	"context"
	"strings"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/repository"
)

// AdminUsecase is the authoring surface behind the admin panel: accounts,
// teams and the revision catalog. The study core never writes through it.
type AdminUsecase interface {
	CreateUser(ctx context.Context, user *entity.User) error
	ListUsers(ctx context.Context) ([]entity.User, error)
	DeleteUser(ctx context.Context, username string) error

	CreateTeam(ctx context.Context, name string) (*entity.Team, error)
	ListTeams(ctx context.Context) ([]entity.Team, error)
	DeleteTeam(ctx context.Context, id string) error

	SaveFlashcard(ctx context.Context, card *entity.Flashcard) error
	DeleteFlashcard(ctx context.Context, id string) error
	SaveQuizQuestion(ctx context.Context, question *entity.QuizQuestion) error
	DeleteQuizQuestion(ctx context.Context, id string) error
}

func NewAdminUsecase(users repository.UserRepository, teams repository.TeamRepository, catalog repository.CatalogRepository) AdminUsecase {
	return &adminUsecase{users: users, teams: teams, catalog: catalog}
}

type adminUsecase struct {
	users   repository.UserRepository
	teams   repository.TeamRepository
	catalog repository.CatalogRepository
}

func (u *adminUsecase) CreateUser(ctx context.Context, user *entity.User) error {
	if user == nil {
		return entity.ErrInvalidUserName
	}
	user.Normalize()
	if err := user.Validate(); err != nil {
		return err
	}
	return u.users.Create(ctx, user)
}

func (u *adminUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}
	// Account listings never carry passwords out of the usecase layer.
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (u *adminUsecase) DeleteUser(ctx context.Context, username string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return entity.ErrInvalidUserName
	}
	return u.users.Delete(ctx, username)
}

func (u *adminUsecase) CreateTeam(ctx context.Context, name string) (*entity.Team, error) {
	team := &entity.Team{Name: strings.TrimSpace(name), Members: []string{}}
	return u.teams.Create(ctx, team)
}

func (u *adminUsecase) ListTeams(ctx context.Context) ([]entity.Team, error) {
	return u.teams.List(ctx)
}

func (u *adminUsecase) DeleteTeam(ctx context.Context, id string) error {
	if id == "" {
		return entity.ErrTeamNotFound
	}
	return u.teams.Delete(ctx, id)
}

func (u *adminUsecase) SaveFlashcard(ctx context.Context, card *entity.Flashcard) error {
	if card == nil {
		return entity.ErrInvalidFlashcard
	}
	return u.catalog.SaveFlashcard(ctx, card)
}

func (u *adminUsecase) DeleteFlashcard(ctx context.Context, id string) error {
	if id == "" {
		return entity.ErrInvalidFlashcard
	}
	return u.catalog.DeleteFlashcard(ctx, id)
}

func (u *adminUsecase) SaveQuizQuestion(ctx context.Context, question *entity.QuizQuestion) error {
	if question == nil {
		return entity.ErrInvalidQuestion
	}
	return u.catalog.SaveQuizQuestion(ctx, question)
}

func (u *adminUsecase) DeleteQuizQuestion(ctx context.Context, id string) error {
	if id == "" {
		return entity.ErrInvalidQuestion
	}
	return u.catalog.DeleteQuizQuestion(ctx, id)
}
