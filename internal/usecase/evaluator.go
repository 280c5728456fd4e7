package usecase

import (
	"strings"

	"github.com/samber/lo"

	"github.com/nplqhub/revise/internal/entity"
)

// Evaluate decides whether a candidate answers a quiz question, under the
// comparison rules of the question's kind. It is a pure function; an unknown
// kind is an authoring defect reported as entity.ErrInvalidQuestion.
func Evaluate(q entity.QuizQuestion, candidate entity.Answer) (bool, error) {
	switch q.Kind {
	case entity.KindMultipleChoice:
		return candidate.Selected == q.AnswerIndex, nil

	case entity.KindFillInBlank:
		submitted := strings.TrimSpace(candidate.Text)
		return strings.EqualFold(submitted, q.AnswerText), nil

	case entity.KindDragAndDrop:
		// The candidate arrives as option texts in the arranged order; map
		// each back to its authored index and require an exact match.
		if len(candidate.Ordering) != len(q.AnswerOrder) {
			return false, nil
		}
		for i, text := range candidate.Ordering {
			_, idx, found := lo.FindIndexOf(q.Options, func(opt string) bool { return opt == text })
			if !found || int32(idx) != q.AnswerOrder[i] {
				return false, nil
			}
		}
		return true, nil

	case entity.KindMatching:
		if len(candidate.Ordering) != len(q.Pairs) {
			return false, nil
		}
		for i, text := range candidate.Ordering {
			if text != q.Pairs[i].Right {
				return false, nil
			}
		}
		return true, nil
	}
	return false, entity.ErrInvalidQuestion
}
