package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/pkg/shuffle"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testCatalog() *fakeContentRepo {
	return &fakeContentRepo{
		cards: []entity.Flashcard{
			{ID: "fc1", Section: "Section 1", Question: "What does NPLQ stand for?", Answer: "National Pool Lifeguard Qualification"},
			{ID: "fc2", Section: "Section 1", Question: "What is the recovery position used for?", Answer: "To maintain an open airway."},
			{ID: "fc3", Section: "Section 2", Question: "How long should you check for breathing?", Answer: "No more than 10 seconds."},
		},
		questions: []entity.QuizQuestion{
			{ID: "q1", Section: "Section 1", Kind: entity.KindMultipleChoice, Prompt: "Pick one", Options: []string{"a", "b"}, AnswerIndex: 1},
			{ID: "q2", Section: "Section 2", Kind: entity.KindFillInBlank, Prompt: "Fill", AnswerText: "neck"},
			{ID: "dnd1", Section: "Section 2", Kind: entity.KindDragAndDrop, Prompt: "Order", Options: []string{"A", "B", "C"}, AnswerOrder: []int32{0, 1, 2}},
		},
	}
}

func newFlashcardSession(t *testing.T) (*SessionController, *fakeProgressRepo) {
	t.Helper()
	repo := newFakeProgressRepo()
	s, err := NewSessionController(context.Background(), ModeFlashcards, "alice", testCatalog(), NewProgressUsecase(repo), shuffle.Identity, quietLogger())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s, repo
}

func newQuizSession(t *testing.T, fn shuffle.Func) *SessionController {
	t.Helper()
	s, err := NewSessionController(context.Background(), ModeQuizzes, "alice", testCatalog(), NewProgressUsecase(newFakeProgressRepo()), fn, quietLogger())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestSessionRequiresLogin(t *testing.T) {
	_, err := NewSessionController(context.Background(), ModeFlashcards, "", testCatalog(), NewProgressUsecase(newFakeProgressRepo()), shuffle.Identity, quietLogger())
	if !errors.Is(err, entity.ErrNotLoggedIn) {
		t.Errorf("got %v, want ErrNotLoggedIn", err)
	}
}

func TestWraparound(t *testing.T) {
	s, _ := newFlashcardSession(t)

	view := s.Current()
	if view.Total != 3 || view.Position != 1 {
		t.Fatalf("initial view: %+v", view)
	}

	s.Previous()
	if view := s.Current(); view.Position != 3 {
		t.Errorf("previous from first: position=%d, want 3", view.Position)
	}
	s.Next()
	if view := s.Current(); view.Position != 1 {
		t.Errorf("next from last: position=%d, want 1", view.Position)
	}
}

func TestEmptyListGuards(t *testing.T) {
	s, _ := newFlashcardSession(t)
	if err := s.SetSectionFilter(context.Background(), []string{}); err != nil {
		t.Fatalf("filter: %v", err)
	}
	view := s.Current()
	if view.Total != 0 || view.Item != nil || view.Position != 0 {
		t.Fatalf("empty filter view: %+v", view)
	}
	// guarded no-ops
	s.Next()
	s.Previous()
	_ = s.Reveal()
	if err := s.Complete(context.Background()); err != nil {
		t.Errorf("complete on empty list: %v", err)
	}
}

func TestFilterChangeResetsIndexAndReveal(t *testing.T) {
	s, _ := newFlashcardSession(t)
	ctx := context.Background()

	s.Next()
	_ = s.Reveal()
	if view := s.Current(); view.Position != 2 || !view.Revealed {
		t.Fatalf("precondition: %+v", view)
	}

	if err := s.SetSectionFilter(ctx, []string{"Section 2"}); err != nil {
		t.Fatalf("filter: %v", err)
	}
	view := s.Current()
	if view.Position != 1 || view.Revealed || view.Feedback != "" {
		t.Errorf("filter did not reset state: %+v", view)
	}
	if view.Total != 1 || view.Item.Flashcard.ID != "fc3" {
		t.Errorf("filtered list wrong: %+v", view)
	}
}

func TestRevealTogglesAndClearsOnNext(t *testing.T) {
	s, _ := newFlashcardSession(t)
	_ = s.Reveal()
	if !s.Current().Revealed {
		t.Fatal("reveal did not show answer")
	}
	_ = s.Reveal()
	if s.Current().Revealed {
		t.Fatal("second reveal did not hide answer")
	}
	_ = s.Reveal()
	s.Next()
	if s.Current().Revealed {
		t.Error("next kept card revealed")
	}
}

func TestCompleteIsIdempotentPerCard(t *testing.T) {
	s, repo := newFlashcardSession(t)
	ctx := context.Background()

	if err := s.Complete(ctx); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := s.Complete(ctx); err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if repo.saves != 1 {
		t.Errorf("already-completed card persisted again: %d saves", repo.saves)
	}
	if got := s.Current().CompletedCount; got != 1 {
		t.Errorf("completed count = %d", got)
	}
}

func TestSubmitSetsFeedbackAndStreak(t *testing.T) {
	s := newQuizSession(t, shuffle.Identity)
	ctx := context.Background()

	correct, err := s.Submit(ctx, entity.Answer{Selected: 1})
	if err != nil || !correct {
		t.Fatalf("submit: correct=%v err=%v", correct, err)
	}
	view := s.Current()
	if view.Feedback != FeedbackCorrect || view.Streak != 1 {
		t.Errorf("view after correct: %+v", view)
	}

	s.Next()
	if s.Current().Feedback != "" {
		t.Error("next did not clear feedback")
	}

	correct, err = s.Submit(ctx, entity.Answer{Text: "wrong"})
	if err != nil || correct {
		t.Fatalf("incorrect submit: correct=%v err=%v", correct, err)
	}
	view = s.Current()
	if view.Feedback != FeedbackIncorrect || view.Streak != 0 {
		t.Errorf("view after incorrect: %+v", view)
	}
}

func TestArrangedOrderUsesInjectedShuffle(t *testing.T) {
	s := newQuizSession(t, shuffle.Reverse)
	ctx := context.Background()

	if err := s.SetSectionFilter(ctx, []string{"Section 2"}); err != nil {
		t.Fatalf("filter: %v", err)
	}
	s.Next() // fill-in-the-blank -> drag-and-drop
	view := s.Current()
	if view.Item == nil || view.Item.Question.ID != "dnd1" {
		t.Fatalf("current item: %+v", view.Item)
	}
	want := []string{"C", "B", "A"}
	if len(view.Arranged) != 3 {
		t.Fatalf("arranged = %v", view.Arranged)
	}
	for i := range want {
		if view.Arranged[i] != want[i] {
			t.Fatalf("arranged = %v, want %v", view.Arranged, want)
		}
	}
}

func TestArrangedClearedForNonArrangedKinds(t *testing.T) {
	s := newQuizSession(t, shuffle.Identity)
	if view := s.Current(); len(view.Arranged) != 0 {
		t.Errorf("multiple-choice question has arranged order: %v", view.Arranged)
	}
}

func TestStoreFailureDegradesToEmptyCatalog(t *testing.T) {
	content := testCatalog()
	content.failAll = true
	s, err := NewSessionController(context.Background(), ModeFlashcards, "alice", content, NewProgressUsecase(newFakeProgressRepo()), shuffle.Identity, quietLogger())
	if !errors.Is(err, entity.ErrStoreUnavailable) {
		t.Fatalf("got %v, want ErrStoreUnavailable", err)
	}
	if s == nil {
		t.Fatal("session must stay usable on store failure")
	}
	if view := s.Current(); view.Total != 0 {
		t.Errorf("degraded view: %+v", view)
	}
}

func TestSectionProgressCoversFullCatalog(t *testing.T) {
	s, _ := newFlashcardSession(t)
	ctx := context.Background()

	_ = s.Complete(ctx) // fc1
	if err := s.SetSectionFilter(ctx, []string{"Section 2"}); err != nil {
		t.Fatalf("filter: %v", err)
	}

	progress := s.SectionProgress()
	if len(progress) != 2 {
		t.Fatalf("sections = %+v", progress)
	}
	if progress[0].Section != "Section 1" || progress[0].Completed != 1 || progress[0].Total != 2 {
		t.Errorf("section 1 progress = %+v", progress[0])
	}
	if progress[1].Section != "Section 2" || progress[1].Completed != 0 || progress[1].Total != 1 {
		t.Errorf("section 2 progress = %+v", progress[1])
	}
}

func TestModeGuards(t *testing.T) {
	flash, _ := newFlashcardSession(t)
	quiz := newQuizSession(t, shuffle.Identity)
	ctx := context.Background()

	if _, err := flash.Submit(ctx, entity.Answer{}); !errors.Is(err, ErrWrongSessionMode) {
		t.Errorf("submit on flashcards: %v", err)
	}
	if err := quiz.Reveal(); !errors.Is(err, ErrWrongSessionMode) {
		t.Errorf("reveal on quizzes: %v", err)
	}
	if err := quiz.Complete(ctx); !errors.Is(err, ErrWrongSessionMode) {
		t.Errorf("complete on quizzes: %v", err)
	}
}
