package usecase

import (
	"context"
	"fmt"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/repository"
	"github.com/nplqhub/revise/pkg/timefmt"
)

// ProgressUsecase tracks per-user completion, streak and time spent. It is
// the only writer of progress records; every operation requires an explicit
// user id and refuses to run without one.
type ProgressUsecase interface {
	Load(ctx context.Context, userID string, domain entity.Domain) (entity.ProgressRecord, error)
	MarkCompleted(ctx context.Context, userID string, domain entity.Domain, itemID string) (entity.ProgressRecord, error)
	SubmitResult(ctx context.Context, userID, itemID string, correct bool) (entity.ProgressRecord, error)
	AccrueTime(ctx context.Context, userID string, deltaSeconds int64) (int64, error)
	ResetAll(ctx context.Context, userID string) error
	Summary(ctx context.Context, userID string) (entity.ProgressSummary, error)
}

func NewProgressUsecase(repo repository.ProgressRepository) ProgressUsecase {
	return &progressUsecase{repo: repo}
}

type progressUsecase struct {
	repo repository.ProgressRepository
}

func (u *progressUsecase) Load(ctx context.Context, userID string, domain entity.Domain) (entity.ProgressRecord, error) {
	if userID == "" {
		return entity.ProgressRecord{Domain: domain}, entity.ErrNotLoggedIn
	}
	return u.repo.Load(ctx, userID, domain)
}

// MarkCompleted adds itemID to the domain's completed set. Re-completing an
// item leaves the set unchanged but still issues the merge write, keeping
// the remote record authoritative.
func (u *progressUsecase) MarkCompleted(ctx context.Context, userID string, domain entity.Domain, itemID string) (entity.ProgressRecord, error) {
	if userID == "" {
		return entity.ProgressRecord{Domain: domain}, entity.ErrNotLoggedIn
	}
	record, err := u.repo.Load(ctx, userID, domain)
	if err != nil {
		return record, err
	}
	record.MarkCompleted(itemID)
	if err := u.repo.SaveCompleted(ctx, userID, domain, record.Completed); err != nil {
		return record, err
	}
	return record, nil
}

// SubmitResult records a quiz answer: completion plus the streak update, in
// one merge write. A correct answer extends the streak, an incorrect one
// resets it to zero.
func (u *progressUsecase) SubmitResult(ctx context.Context, userID, itemID string, correct bool) (entity.ProgressRecord, error) {
	if userID == "" {
		return entity.ProgressRecord{Domain: entity.DomainQuizzes}, entity.ErrNotLoggedIn
	}
	record, err := u.repo.Load(ctx, userID, entity.DomainQuizzes)
	if err != nil {
		return record, err
	}
	record.MarkCompleted(itemID)
	if correct {
		record.Streak++
	} else {
		record.Streak = 0
	}
	if err := u.repo.SaveQuizResult(ctx, userID, record.Completed, record.Streak); err != nil {
		return record, err
	}
	return record, nil
}

// AccrueTime is a read-modify-write on the totals record. It is not atomic
// across concurrent accruers; at most one ticker per active session is
// assumed.
func (u *progressUsecase) AccrueTime(ctx context.Context, userID string, deltaSeconds int64) (int64, error) {
	if userID == "" {
		return 0, entity.ErrNotLoggedIn
	}
	record, err := u.repo.Load(ctx, userID, entity.DomainTotals)
	if err != nil {
		return 0, err
	}
	total := record.SecondsSpent + deltaSeconds
	if err := u.repo.SaveSeconds(ctx, userID, total); err != nil {
		return record.SecondsSpent, err
	}
	return total, nil
}

// ResetAll deletes the three progress sub-records. The first failure aborts
// with ErrResetFailed; already-deleted records stay deleted, no compensation
// is attempted. The caller surfaces this as a retryable alert.
func (u *progressUsecase) ResetAll(ctx context.Context, userID string) error {
	if userID == "" {
		return entity.ErrNotLoggedIn
	}
	for _, domain := range []entity.Domain{entity.DomainFlashcards, entity.DomainQuizzes, entity.DomainTotals} {
		if err := u.repo.Delete(ctx, userID, domain); err != nil {
			return fmt.Errorf("%w: %v", entity.ErrResetFailed, err)
		}
	}
	return nil
}

func (u *progressUsecase) Summary(ctx context.Context, userID string) (entity.ProgressSummary, error) {
	var summary entity.ProgressSummary
	if userID == "" {
		return summary, entity.ErrNotLoggedIn
	}
	flash, err := u.repo.Load(ctx, userID, entity.DomainFlashcards)
	if err != nil {
		return summary, err
	}
	quiz, err := u.repo.Load(ctx, userID, entity.DomainQuizzes)
	if err != nil {
		return summary, err
	}
	totals, err := u.repo.Load(ctx, userID, entity.DomainTotals)
	if err != nil {
		return summary, err
	}
	summary = entity.ProgressSummary{
		FlashcardsCompleted: len(flash.Completed),
		QuizzesCompleted:    len(quiz.Completed),
		Streak:              quiz.Streak,
		SecondsSpent:        totals.SecondsSpent,
		TimeSpent:           timefmt.Clock(totals.SecondsSpent),
	}
	return summary, nil
}
