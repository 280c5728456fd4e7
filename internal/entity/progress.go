package entity

import "github.com/samber/lo"

// Domain names a per-user progress sub-record.
type Domain string

const (
	DomainFlashcards Domain = "flashcards"
	DomainQuizzes    Domain = "quizzes"
	DomainTotals     Domain = "totals"
)

// ProgressRecord is the per-user, per-domain progress state. A zero value is
// the canonical "no progress yet" record; loading an absent record returns
// one rather than an error.
type ProgressRecord struct {
	Domain       Domain
	Completed    []string
	Streak       int32
	SecondsSpent int64
}

// IsCompleted reports membership in the completed set.
func (r *ProgressRecord) IsCompleted(itemID string) bool {
	return lo.Contains(r.Completed, itemID)
}

// MarkCompleted adds itemID to the completed set. Returns false when the id
// was already present; the record is unchanged in that case.
func (r *ProgressRecord) MarkCompleted(itemID string) bool {
	if r.IsCompleted(itemID) {
		return false
	}
	r.Completed = append(r.Completed, itemID)
	return true
}

// ProgressSummary aggregates the three domains for the dashboard.
type ProgressSummary struct {
	FlashcardsCompleted int
	QuizzesCompleted    int
	Streak              int32
	SecondsSpent        int64
	TimeSpent           string
}
