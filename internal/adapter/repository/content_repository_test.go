package repository

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/nplqhub/revise/internal/adapter/docstore"
	"github.com/nplqhub/revise/internal/entity"
)

func newContentRepo() (*ContentRepository, docstore.Store) {
	store := docstore.NewMemoryStore()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewContentRepository(store, logger), store
}

func TestQuizCodecRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newContentRepo()

	questions := []entity.QuizQuestion{
		{ID: "q1", Section: "Section 1", Kind: entity.KindMultipleChoice, Prompt: "Pick one.", Options: []string{"a", "b", "c"}, AnswerIndex: 2},
		{ID: "q2", Section: "Section 1", Kind: entity.KindFillInBlank, Prompt: "Say ____.", AnswerText: "hello"},
		{ID: "dnd1", Section: "Section 2", Kind: entity.KindDragAndDrop, Prompt: "Order these.", Options: []string{"x", "y", "z"}, AnswerOrder: []int32{2, 0, 1}},
		{ID: "match1", Section: "Section 3", Kind: entity.KindMatching, Prompt: "Match these.", Pairs: []entity.MatchPair{{Left: "l1", Right: "r1"}, {Left: "l2", Right: "r2"}}},
	}
	for i := range questions {
		if err := repo.SaveQuizQuestion(ctx, &questions[i]); err != nil {
			t.Fatalf("save %s: %v", questions[i].ID, err)
		}
	}

	loaded, err := repo.ListQuizQuestions(ctx)
	if err != nil {
		t.Fatalf("ListQuizQuestions: %v", err)
	}
	if len(loaded) != len(questions) {
		t.Fatalf("loaded %d questions, want %d", len(loaded), len(questions))
	}
	byID := make(map[string]entity.QuizQuestion, len(loaded))
	for _, q := range loaded {
		byID[q.ID] = q
	}
	if q := byID["q1"]; q.AnswerIndex != 2 || len(q.Options) != 3 {
		t.Fatalf("multiple-choice round trip: %+v", q)
	}
	if q := byID["q2"]; q.AnswerText != "hello" {
		t.Fatalf("fill-in-the-blank round trip: %+v", q)
	}
	if q := byID["dnd1"]; len(q.AnswerOrder) != 3 || q.AnswerOrder[0] != 2 {
		t.Fatalf("drag-and-drop round trip: %+v", q)
	}
	if q := byID["match1"]; len(q.Pairs) != 2 || q.Pairs[1].Right != "r2" {
		t.Fatalf("matching round trip: %+v", q)
	}
}

func TestListSkipsMalformedDocuments(t *testing.T) {
	ctx := context.Background()
	repo, store := newContentRepo()

	good := entity.QuizQuestion{ID: "q1", Section: "S", Kind: entity.KindFillInBlank, Prompt: "?", AnswerText: "x"}
	if err := repo.SaveQuizQuestion(ctx, &good); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Planted directly, bypassing validation: unknown type.
	if err := store.Set(ctx, "quizzes/broken", docstore.Document{"type": "crossword", "question": "?"}, false); err != nil {
		t.Fatalf("plant malformed doc: %v", err)
	}

	loaded, err := repo.ListQuizQuestions(ctx)
	if err != nil {
		t.Fatalf("ListQuizQuestions: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "q1" {
		t.Fatalf("malformed doc not skipped: %+v", loaded)
	}
}

func TestSaveRejectsInvalidFlashcard(t *testing.T) {
	repo, _ := newContentRepo()
	card := entity.Flashcard{ID: "fc1", Section: "S", Question: ""}
	if err := repo.SaveFlashcard(context.Background(), &card); err == nil {
		t.Fatal("expected validation error for empty question")
	}
}

func TestDeleteFlashcard(t *testing.T) {
	ctx := context.Background()
	repo, _ := newContentRepo()

	card := entity.Flashcard{ID: "fc1", Section: "S", Question: "q", Answer: "a"}
	if err := repo.SaveFlashcard(ctx, &card); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.DeleteFlashcard(ctx, "fc1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	cards, err := repo.ListFlashcards(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("flashcard survived delete: %+v", cards)
	}
}
