package usecase

import (
	"context"
	"sync"

	"github.com/nplqhub/revise/internal/entity"
)

// fakeProgressRepo mirrors the merge-write semantics of the document-backed
// repository: each save touches only its own fields.
type fakeProgressRepo struct {
	mu      sync.RWMutex
	records map[string]*entity.ProgressRecord // key: userID + "/" + domain
	failAll bool
	// failDomains makes Delete fail for the named domains.
	failDomains map[entity.Domain]bool
	saves       int
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: make(map[string]*entity.ProgressRecord)}
}

func progressKey(userID string, domain entity.Domain) string {
	return userID + "/" + string(domain)
}

func (r *fakeProgressRepo) get(userID string, domain entity.Domain) *entity.ProgressRecord {
	key := progressKey(userID, domain)
	record, ok := r.records[key]
	if !ok {
		record = &entity.ProgressRecord{Domain: domain}
		r.records[key] = record
	}
	return record
}

func (r *fakeProgressRepo) Load(ctx context.Context, userID string, domain entity.Domain) (entity.ProgressRecord, error) {
	if r.failAll {
		return entity.ProgressRecord{Domain: domain}, entity.ErrStoreUnavailable
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[progressKey(userID, domain)]
	if !ok {
		return entity.ProgressRecord{Domain: domain}, nil
	}
	return cloneRecord(record), nil
}

func (r *fakeProgressRepo) SaveCompleted(ctx context.Context, userID string, domain entity.Domain, completed []string) error {
	if r.failAll {
		return entity.ErrStoreUnavailable
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.get(userID, domain).Completed = append([]string(nil), completed...)
	return nil
}

func (r *fakeProgressRepo) SaveQuizResult(ctx context.Context, userID string, completed []string, streak int32) error {
	if r.failAll {
		return entity.ErrStoreUnavailable
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	record := r.get(userID, entity.DomainQuizzes)
	record.Completed = append([]string(nil), completed...)
	record.Streak = streak
	return nil
}

func (r *fakeProgressRepo) SaveSeconds(ctx context.Context, userID string, seconds int64) error {
	if r.failAll {
		return entity.ErrStoreUnavailable
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.get(userID, entity.DomainTotals).SecondsSpent = seconds
	return nil
}

func (r *fakeProgressRepo) Delete(ctx context.Context, userID string, domain entity.Domain) error {
	if r.failAll || r.failDomains[domain] {
		return entity.ErrStoreUnavailable
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, progressKey(userID, domain))
	return nil
}

func cloneRecord(record *entity.ProgressRecord) entity.ProgressRecord {
	out := *record
	out.Completed = append([]string(nil), record.Completed...)
	return out
}

// fakeContentRepo serves a fixed catalog, optionally failing every call.
type fakeContentRepo struct {
	cards     []entity.Flashcard
	questions []entity.QuizQuestion
	failAll   bool
}

func (r *fakeContentRepo) ListFlashcards(ctx context.Context) ([]entity.Flashcard, error) {
	if r.failAll {
		return nil, entity.ErrStoreUnavailable
	}
	return append([]entity.Flashcard(nil), r.cards...), nil
}

func (r *fakeContentRepo) ListQuizQuestions(ctx context.Context) ([]entity.QuizQuestion, error) {
	if r.failAll {
		return nil, entity.ErrStoreUnavailable
	}
	return append([]entity.QuizQuestion(nil), r.questions...), nil
}
