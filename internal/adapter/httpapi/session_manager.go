package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/repository"
	"github.com/nplqhub/revise/internal/usecase"
)

type managedSession struct {
	controller *usecase.SessionController
	userID     string
	mode       usecase.SessionMode
	lastSeen   time.Time
}

// SessionManager owns the live study sessions behind the HTTP surface. Each
// session is bound to the user that opened it and accrues study time through
// the ticker until it is closed or evicted for idleness.
type SessionManager struct {
	content  repository.ContentRepository
	progress usecase.ProgressUsecase
	ticker   *usecase.AccrualTicker
	logger   *logrus.Logger

	idleTimeout time.Duration
	newID       func() string
	now         func() time.Time
	scheduler   *gocron.Scheduler

	mu       sync.Mutex
	sessions map[string]*managedSession
}

func NewSessionManager(content repository.ContentRepository, progress usecase.ProgressUsecase, ticker *usecase.AccrualTicker, logger *logrus.Logger, idleTimeout time.Duration) *SessionManager {
	m := &SessionManager{
		content:     content,
		progress:    progress,
		ticker:      ticker,
		logger:      logger,
		idleTimeout: idleTimeout,
		newID:       uuid.NewString,
		now:         time.Now,
		sessions:    make(map[string]*managedSession),
	}
	if idleTimeout > 0 {
		m.scheduler = gocron.NewScheduler(time.UTC)
		if _, err := m.scheduler.Every(idleTimeout / 2).Do(m.evictIdle); err != nil {
			logger.WithError(err).Error("schedule session eviction")
		}
		m.scheduler.StartAsync()
	}
	return m
}

// Open creates a session for the user and starts time accrual on it. The
// session stays open even when the initial catalog load fails; the error is
// returned alongside so callers can surface it.
func (m *SessionManager) Open(ctx context.Context, userID string, mode usecase.SessionMode) (string, *usecase.SessionController, error) {
	controller, err := usecase.NewSessionController(ctx, mode, userID, m.content, m.progress, nil, m.logger)
	if controller == nil {
		return "", nil, err
	}

	id := m.newID()
	m.mu.Lock()
	m.sessions[id] = &managedSession{
		controller: controller,
		userID:     userID,
		mode:       mode,
		lastSeen:   m.now(),
	}
	m.mu.Unlock()

	if trackErr := m.ticker.Track(id, userID); trackErr != nil {
		m.logger.WithError(trackErr).WithField("session_id", id).Error("start time accrual")
	}
	return id, controller, err
}

// Get returns the session when it exists and belongs to the user, refreshing
// its idle clock.
func (m *SessionManager) Get(id, userID string) (*usecase.SessionController, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok || session.userID != userID {
		return nil, entity.ErrSessionNotFound
	}
	session.lastSeen = m.now()
	return session.controller, nil
}

// Close removes the session and stops its time accrual.
func (m *SessionManager) Close(id, userID string) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	if ok && session.userID == userID {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok || session.userID != userID {
		return entity.ErrSessionNotFound
	}
	m.ticker.Release(id)
	return nil
}

// Stop tears down every session and the eviction scheduler.
func (m *SessionManager) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.sessions = make(map[string]*managedSession)
	m.mu.Unlock()
	for _, id := range ids {
		m.ticker.Release(id)
	}
}

func (m *SessionManager) evictIdle() {
	cutoff := m.now().Add(-m.idleTimeout)
	m.mu.Lock()
	var expired []string
	for id, session := range m.sessions {
		if session.lastSeen.Before(cutoff) {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
	for _, id := range expired {
		m.ticker.Release(id)
		m.logger.WithField("session_id", id).Info("evicted idle session")
	}
}
