package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nplqhub/revise/internal/adapter/docstore"
	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/repository"
)

const (
	flashcardCollection = "flashcards"
	quizCollection      = "quizzes"
)

// ContentRepository reads and authors the revision catalog in the document
// store. Questions that fail to decode are logged and dropped so a single
// authoring defect cannot take a study session down.
type ContentRepository struct {
	store  docstore.Store
	logger *logrus.Logger
}

var (
	_ repository.ContentRepository = (*ContentRepository)(nil)
	_ repository.CatalogRepository = (*ContentRepository)(nil)
)

func NewContentRepository(store docstore.Store, logger *logrus.Logger) *ContentRepository {
	return &ContentRepository{store: store, logger: logger}
}

func (r *ContentRepository) ListFlashcards(ctx context.Context) ([]entity.Flashcard, error) {
	entries, err := r.store.List(ctx, flashcardCollection)
	if err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}
	cards := make([]entity.Flashcard, 0, len(entries))
	for _, entry := range entries {
		card := docToFlashcard(entry.ID, entry.Data)
		if err := card.Validate(); err != nil {
			r.logger.WithField("flashcard", entry.ID).Warn("skipping malformed flashcard")
			continue
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (r *ContentRepository) ListQuizQuestions(ctx context.Context) ([]entity.QuizQuestion, error) {
	entries, err := r.store.List(ctx, quizCollection)
	if err != nil {
		return nil, fmt.Errorf("list quiz questions: %w", err)
	}
	questions := make([]entity.QuizQuestion, 0, len(entries))
	for _, entry := range entries {
		question, err := docToQuiz(entry.ID, entry.Data)
		if err != nil {
			r.logger.WithField("question", entry.ID).WithError(err).Warn("skipping malformed quiz question")
			continue
		}
		questions = append(questions, question)
	}
	return questions, nil
}

func (r *ContentRepository) SaveFlashcard(ctx context.Context, card *entity.Flashcard) error {
	card.Normalize()
	if err := card.Validate(); err != nil {
		return err
	}
	path := flashcardCollection + "/" + card.ID
	if err := r.store.Set(ctx, path, flashcardToDoc(card), false); err != nil {
		return fmt.Errorf("save flashcard %s: %w", card.ID, err)
	}
	return nil
}

func (r *ContentRepository) DeleteFlashcard(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, flashcardCollection+"/"+id); err != nil {
		return fmt.Errorf("delete flashcard %s: %w", id, err)
	}
	return nil
}

func (r *ContentRepository) SaveQuizQuestion(ctx context.Context, question *entity.QuizQuestion) error {
	question.Normalize()
	if err := question.Validate(); err != nil {
		return err
	}
	doc, err := quizToDoc(question)
	if err != nil {
		return err
	}
	path := quizCollection + "/" + question.ID
	if err := r.store.Set(ctx, path, doc, false); err != nil {
		return fmt.Errorf("save quiz question %s: %w", question.ID, err)
	}
	return nil
}

func (r *ContentRepository) DeleteQuizQuestion(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, quizCollection+"/"+id); err != nil {
		return fmt.Errorf("delete quiz question %s: %w", id, err)
	}
	return nil
}
