package repository

import (
	"context"

	"github.com/nplqhub/revise/internal/entity"
)

// ContentRepository abstracts read access to the revision catalog. The study
// core only reads; authoring goes through CatalogRepository.
type ContentRepository interface {
	ListFlashcards(ctx context.Context) ([]entity.Flashcard, error)
	ListQuizQuestions(ctx context.Context) ([]entity.QuizQuestion, error)
}

// CatalogRepository is the admin-side authoring surface for the catalog.
type CatalogRepository interface {
	SaveFlashcard(ctx context.Context, card *entity.Flashcard) error
	DeleteFlashcard(ctx context.Context, id string) error
	SaveQuizQuestion(ctx context.Context, question *entity.QuizQuestion) error
	DeleteQuizQuestion(ctx context.Context, id string) error
}
