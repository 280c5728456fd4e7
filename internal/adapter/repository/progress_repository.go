package repository

import (
	"context"
	"fmt"

	"github.com/nplqhub/revise/internal/adapter/docstore"
	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/repository"
)

// ProgressRepository persists progress under users/{uid}/progress/{domain},
// the same document layout the web clients wrote. Every save is a merge
// write so the store's field-level last-write-wins is the only concurrency
// primitive in play.
type ProgressRepository struct {
	store docstore.Store
}

var _ repository.ProgressRepository = (*ProgressRepository)(nil)

func NewProgressRepository(store docstore.Store) *ProgressRepository {
	return &ProgressRepository{store: store}
}

func progressPath(userID string, domain entity.Domain) string {
	return fmt.Sprintf("users/%s/progress/%s", userID, domain)
}

func (r *ProgressRepository) Load(ctx context.Context, userID string, domain entity.Domain) (entity.ProgressRecord, error) {
	record := entity.ProgressRecord{Domain: domain}
	doc, ok, err := r.store.Get(ctx, progressPath(userID, domain))
	if err != nil {
		return record, fmt.Errorf("load %s progress: %w", domain, err)
	}
	if !ok {
		return record, nil
	}
	record.Completed = asStringSlice(doc["completed"])
	if streak, ok := asInt32(doc["streak"]); ok {
		record.Streak = streak
	}
	if seconds, ok := asInt64(doc["secondsSpent"]); ok {
		record.SecondsSpent = seconds
	}
	return record, nil
}

func (r *ProgressRepository) SaveCompleted(ctx context.Context, userID string, domain entity.Domain, completed []string) error {
	if completed == nil {
		completed = []string{}
	}
	doc := docstore.Document{"completed": completed}
	if err := r.store.Set(ctx, progressPath(userID, domain), doc, true); err != nil {
		return fmt.Errorf("save %s completed: %w", domain, err)
	}
	return nil
}

func (r *ProgressRepository) SaveQuizResult(ctx context.Context, userID string, completed []string, streak int32) error {
	if completed == nil {
		completed = []string{}
	}
	doc := docstore.Document{"completed": completed, "streak": streak}
	if err := r.store.Set(ctx, progressPath(userID, entity.DomainQuizzes), doc, true); err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}
	return nil
}

func (r *ProgressRepository) SaveSeconds(ctx context.Context, userID string, seconds int64) error {
	doc := docstore.Document{"secondsSpent": seconds}
	if err := r.store.Set(ctx, progressPath(userID, entity.DomainTotals), doc, true); err != nil {
		return fmt.Errorf("save seconds spent: %w", err)
	}
	return nil
}

func (r *ProgressRepository) Delete(ctx context.Context, userID string, domain entity.Domain) error {
	if err := r.store.Delete(ctx, progressPath(userID, domain)); err != nil {
		return fmt.Errorf("delete %s progress: %w", domain, err)
	}
	return nil
}
