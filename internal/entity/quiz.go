package entity

import "strings"

// QuestionKind discriminates the quiz question variants.
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multiple-choice"
	KindFillInBlank    QuestionKind = "fill-in-the-blank"
	KindDragAndDrop    QuestionKind = "drag-and-drop"
	KindMatching       QuestionKind = "matching"
)

// MatchPair couples a fixed left-hand term with the right-hand text the
// learner has to line up against it.
type MatchPair struct {
	Left  string
	Right string
}

// QuizQuestion is a tagged union over the four question kinds. Only the
// fields of the active kind are populated; Validate enforces that.
type QuizQuestion struct {
	ID      string
	Section string
	Kind    QuestionKind
	Prompt  string

	// multiple-choice and drag-and-drop
	Options []string
	// multiple-choice: index into Options
	AnswerIndex int32
	// fill-in-the-blank: expected text, compared case-insensitively
	AnswerText string
	// drag-and-drop: indices into Options in the correct order
	AnswerOrder []int32
	// matching
	Pairs []MatchPair
}

// Answer is a candidate submission for a quiz question. Ordering carries the
// arranged option texts for drag-and-drop, or the arranged right-hand texts
// for matching.
type Answer struct {
	Selected int32
	Text     string
	Ordering []string
}

// Normalize trims authored text before persistence.
func (q *QuizQuestion) Normalize() {
	q.ID = strings.TrimSpace(q.ID)
	q.Section = strings.TrimSpace(q.Section)
	q.Prompt = strings.TrimSpace(q.Prompt)
}

// Validate checks the kind-specific shape invariants. A question failing
// validation is an authoring defect: callers log it and skip the question
// rather than crash a session.
func (q *QuizQuestion) Validate() error {
	if q.ID == "" || q.Section == "" || q.Prompt == "" {
		return ErrInvalidQuestion
	}
	switch q.Kind {
	case KindMultipleChoice:
		if len(q.Options) == 0 {
			return ErrInvalidQuestion
		}
		if q.AnswerIndex < 0 || int(q.AnswerIndex) >= len(q.Options) {
			return ErrInvalidQuestion
		}
	case KindFillInBlank:
		if strings.TrimSpace(q.AnswerText) == "" {
			return ErrInvalidQuestion
		}
	case KindDragAndDrop:
		if len(q.Options) == 0 || len(q.Options) != len(q.AnswerOrder) {
			return ErrInvalidQuestion
		}
		for _, idx := range q.AnswerOrder {
			if idx < 0 || int(idx) >= len(q.Options) {
				return ErrInvalidQuestion
			}
		}
	case KindMatching:
		if len(q.Pairs) == 0 {
			return ErrInvalidQuestion
		}
		for _, p := range q.Pairs {
			if p.Left == "" || p.Right == "" {
				return ErrInvalidQuestion
			}
		}
	default:
		return ErrInvalidQuestion
	}
	return nil
}
