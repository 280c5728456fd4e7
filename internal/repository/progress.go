package repository

import (
	"context"

	"github.com/nplqhub/revise/internal/entity"
)

// ProgressRepository persists per-user progress records. Loads of absent
// records return the zero record, never a not-found error. All saves are
// merge writes touching only the named fields, so concurrent writers to
// different fields cannot clobber each other.
type ProgressRepository interface {
	Load(ctx context.Context, userID string, domain entity.Domain) (entity.ProgressRecord, error)
	// SaveCompleted merge-writes the completed set for a domain.
	SaveCompleted(ctx context.Context, userID string, domain entity.Domain, completed []string) error
	// SaveQuizResult merge-writes the quiz completed set and streak together,
	// as one logical write.
	SaveQuizResult(ctx context.Context, userID string, completed []string, streak int32) error
	// SaveSeconds merge-writes the accumulated seconds on the totals record.
	SaveSeconds(ctx context.Context, userID string, seconds int64) error
	Delete(ctx context.Context, userID string, domain entity.Domain) error
}
