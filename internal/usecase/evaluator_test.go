package usecase

import (
	"errors"
	"testing"

	"github.com/nplqhub/revise/internal/entity"
)

func TestEvaluateMultipleChoice(t *testing.T) {
	q := entity.QuizQuestion{
		ID:          "q1",
		Section:     "Section 1",
		Kind:        entity.KindMultipleChoice,
		Prompt:      "What is the primary responsibility of a lifeguard?",
		Options:     []string{"Rescue swimmers in trouble", "Clean the pool", "Teach lessons", "Sell tickets"},
		AnswerIndex: 0,
	}
	if ok, err := Evaluate(q, entity.Answer{Selected: 0}); err != nil || !ok {
		t.Errorf("correct choice: ok=%v err=%v", ok, err)
	}
	if ok, _ := Evaluate(q, entity.Answer{Selected: 2}); ok {
		t.Error("wrong choice accepted")
	}
}

func TestEvaluateFillInBlankIgnoresCaseAndWhitespace(t *testing.T) {
	q := entity.QuizQuestion{
		ID:         "q2",
		Section:    "Section 1",
		Kind:       entity.KindFillInBlank,
		Prompt:     "The recovery position is used for an unconscious _____ casualty.",
		AnswerText: "breathing",
	}
	cases := []struct {
		text string
		want bool
	}{
		{"breathing", true},
		{"  Breathing ", true},
		{"BREATHING", true},
		{"bleeding", false},
		{"", false},
	}
	for _, c := range cases {
		got, err := Evaluate(q, entity.Answer{Text: c.text})
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", c.text, err)
		}
		if got != c.want {
			t.Errorf("Evaluate(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestEvaluateDragAndDrop(t *testing.T) {
	q := entity.QuizQuestion{
		ID:          "dnd1",
		Section:     "Section 1",
		Kind:        entity.KindDragAndDrop,
		Prompt:      "Arrange in order:",
		Options:     []string{"A", "B", "C"},
		AnswerOrder: []int32{2, 0, 1},
	}
	if ok, err := Evaluate(q, entity.Answer{Ordering: []string{"C", "A", "B"}}); err != nil || !ok {
		t.Errorf("correct order: ok=%v err=%v", ok, err)
	}
	if ok, _ := Evaluate(q, entity.Answer{Ordering: []string{"A", "B", "C"}}); ok {
		t.Error("authored order accepted for a rearranged answer")
	}
	if ok, _ := Evaluate(q, entity.Answer{Ordering: []string{"C", "A"}}); ok {
		t.Error("short ordering accepted")
	}
	if ok, _ := Evaluate(q, entity.Answer{Ordering: []string{"C", "A", "X"}}); ok {
		t.Error("unknown option text accepted")
	}
}

func TestEvaluateMatching(t *testing.T) {
	q := entity.QuizQuestion{
		ID:      "match1",
		Section: "Section 3",
		Kind:    entity.KindMatching,
		Prompt:  "Match the NPLQ term to its definition:",
		Pairs: []entity.MatchPair{
			{Left: "ABC", Right: "Airway, Breathing, Circulation"},
			{Left: "CPR", Right: "Cardiopulmonary Resuscitation"},
		},
	}
	right := entity.Answer{Ordering: []string{"Airway, Breathing, Circulation", "Cardiopulmonary Resuscitation"}}
	if ok, err := Evaluate(q, right); err != nil || !ok {
		t.Errorf("correct matching: ok=%v err=%v", ok, err)
	}
	reversed := entity.Answer{Ordering: []string{"Cardiopulmonary Resuscitation", "Airway, Breathing, Circulation"}}
	if ok, _ := Evaluate(q, reversed); ok {
		t.Error("reversed matching accepted")
	}
}

func TestEvaluateUnknownKind(t *testing.T) {
	q := entity.QuizQuestion{ID: "x", Section: "s", Kind: "essay", Prompt: "?"}
	_, err := Evaluate(q, entity.Answer{})
	if !errors.Is(err, entity.ErrInvalidQuestion) {
		t.Errorf("got %v, want ErrInvalidQuestion", err)
	}
}
