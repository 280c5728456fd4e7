package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/repository"
	"github.com/nplqhub/revise/pkg/shuffle"
)

// SessionMode selects which half of the catalog a session walks.
type SessionMode string

const (
	ModeFlashcards SessionMode = "flashcards"
	ModeQuizzes    SessionMode = "quizzes"
)

// ErrWrongSessionMode is returned when a flashcard operation is invoked on a
// quiz session or vice versa.
var ErrWrongSessionMode = errors.New("operation not supported in this session mode")

// Feedback strings shown after a quiz submission, cleared on Next and on
// filter changes.
const (
	FeedbackCorrect   = "Correct!"
	FeedbackIncorrect = "Incorrect."
)

// SessionItem is one entry of the filtered study list. Exactly one of the
// two pointers is set, according to the session mode.
type SessionItem struct {
	Flashcard *entity.Flashcard
	Question  *entity.QuizQuestion
}

func (it SessionItem) ID() string {
	if it.Flashcard != nil {
		return it.Flashcard.ID
	}
	return it.Question.ID
}

func (it SessionItem) Section() string {
	if it.Flashcard != nil {
		return it.Flashcard.Section
	}
	return it.Question.Section
}

// SectionProgress is the per-section completion count driving the progress
// bars on the flashcards screen.
type SectionProgress struct {
	Section   string
	Completed int
	Total     int
}

// SessionView is a read-only snapshot of the session for rendering.
type SessionView struct {
	Mode           SessionMode
	Sections       []string
	Selected       []string
	Position       int // 1-based, 0 when the filtered list is empty
	Total          int
	Item           *SessionItem
	Revealed       bool
	Feedback       string
	Arranged       []string
	Streak         int32
	CompletedCount int
}

// SessionController holds the ephemeral state of one study screen: the
// section filter, the current index, reveal/feedback state and a local
// mirror of the completed set. It is never persisted; persistence is
// delegated to the progress usecase. Safe for use from concurrent requests
// of the same client.
type SessionController struct {
	mode     SessionMode
	userID   string
	content  repository.ContentRepository
	progress ProgressUsecase
	shuffle  shuffle.Func
	logger   *logrus.Logger

	mu          sync.Mutex
	gen         uint64
	selected    []string // nil selects every section
	allSections []string
	cards       []entity.Flashcard
	questions   []entity.QuizQuestion
	items       []SessionItem
	index       int
	revealed    bool
	feedback    string
	streak      int32
	completed   map[string]bool
	arranged    []string
}

// NewSessionController creates a session for a logged-in user and performs
// the initial load with every section selected. A store failure leaves the
// session usable over an empty catalog and is returned for surfacing.
func NewSessionController(ctx context.Context, mode SessionMode, userID string, content repository.ContentRepository, progress ProgressUsecase, shuffleFn shuffle.Func, logger *logrus.Logger) (*SessionController, error) {
	if userID == "" {
		return nil, entity.ErrNotLoggedIn
	}
	if mode != ModeFlashcards && mode != ModeQuizzes {
		return nil, ErrWrongSessionMode
	}
	if shuffleFn == nil {
		shuffleFn = shuffle.Random
	}
	s := &SessionController{
		mode:      mode,
		userID:    userID,
		content:   content,
		progress:  progress,
		shuffle:   shuffleFn,
		logger:    logger,
		completed: make(map[string]bool),
	}
	err := s.reload(ctx, s.snapshotGen())
	return s, err
}

func (s *SessionController) snapshotGen() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// reload fetches the catalog and progress for the filter generation active
// when the call started. A response arriving after the filter has moved on
// is discarded rather than applied to the newer filter.
func (s *SessionController) reload(ctx context.Context, gen uint64) error {
	var (
		cards     []entity.Flashcard
		questions []entity.QuizQuestion
		loadErr   error
	)
	switch s.mode {
	case ModeFlashcards:
		cards, loadErr = s.content.ListFlashcards(ctx)
	case ModeQuizzes:
		questions, loadErr = s.content.ListQuizQuestions(ctx)
	}
	if loadErr != nil {
		// Degrade to an empty catalog; the session stays alive.
		s.logger.WithError(loadErr).Warn("catalog fetch failed, treating as empty")
		cards, questions = nil, nil
	}

	record, progressErr := s.progress.Load(ctx, s.userID, entity.Domain(s.mode))
	if progressErr != nil {
		s.logger.WithError(progressErr).Warn("progress fetch failed, starting from zero")
		record = entity.ProgressRecord{Domain: entity.Domain(s.mode)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// A newer filter superseded this load.
		return nil
	}
	s.cards = cards
	s.questions = questions
	s.allSections = collectSections(cards, questions)
	s.completed = make(map[string]bool, len(record.Completed))
	for _, id := range record.Completed {
		s.completed[id] = true
	}
	s.streak = record.Streak
	s.rebuildLocked()
	s.rearmLocked()
	if loadErr != nil {
		return loadErr
	}
	return progressErr
}

// SetSectionFilter replaces the selected sections, resets the index, reveal
// and feedback state, and reloads the filtered list. An empty slice selects
// nothing; nil selects everything.
func (s *SessionController) SetSectionFilter(ctx context.Context, sections []string) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if sections == nil {
		s.selected = nil
	} else {
		s.selected = append([]string(nil), sections...)
	}
	s.index = 0
	s.revealed = false
	s.feedback = ""
	s.arranged = nil
	s.mu.Unlock()

	return s.reload(ctx, gen)
}

// Next advances with wraparound and clears transient state. No-op on an
// empty list.
func (s *SessionController) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return
	}
	s.index = (s.index + 1) % len(s.items)
	s.revealed = false
	s.feedback = ""
	s.rearmLocked()
}

// Previous retreats with wraparound and clears transient state. No-op on an
// empty list.
func (s *SessionController) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return
	}
	s.index = (s.index - 1 + len(s.items)) % len(s.items)
	s.revealed = false
	s.feedback = ""
	s.rearmLocked()
}

// Reveal toggles the answer on a flashcard session.
func (s *SessionController) Reveal() error {
	if s.mode != ModeFlashcards {
		return ErrWrongSessionMode
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return nil
	}
	s.revealed = !s.revealed
	return nil
}

// Complete marks the current flashcard as completed. Already-completed cards
// are left alone, matching the disabled button on the original screen.
func (s *SessionController) Complete(ctx context.Context) error {
	if s.mode != ModeFlashcards {
		return ErrWrongSessionMode
	}
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return nil
	}
	itemID := s.items[s.index].ID()
	if s.completed[itemID] {
		s.mu.Unlock()
		return nil
	}
	s.completed[itemID] = true
	s.mu.Unlock()

	_, err := s.progress.MarkCompleted(ctx, s.userID, entity.DomainFlashcards, itemID)
	return err
}

// Submit evaluates a candidate answer for the current quiz question, records
// the result and sets transient feedback. The feedback is cleared by Next
// and by filter changes.
func (s *SessionController) Submit(ctx context.Context, candidate entity.Answer) (bool, error) {
	if s.mode != ModeQuizzes {
		return false, ErrWrongSessionMode
	}
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return false, nil
	}
	question := *s.items[s.index].Question
	s.mu.Unlock()

	correct, err := Evaluate(question, candidate)
	if err != nil {
		// Authoring defect: log and skip the question instead of failing the
		// whole session.
		s.logger.WithField("question", question.ID).WithError(err).Warn("unevaluable question, skipping")
		s.Next()
		return false, err
	}

	record, saveErr := s.progress.SubmitResult(ctx, s.userID, question.ID, correct)

	s.mu.Lock()
	if correct {
		s.feedback = FeedbackCorrect
	} else {
		s.feedback = FeedbackIncorrect
	}
	if saveErr == nil {
		s.streak = record.Streak
		s.completed[question.ID] = true
	} else if correct {
		s.streak++
	} else {
		s.streak = 0
	}
	s.mu.Unlock()

	return correct, saveErr
}

// Current returns a snapshot for rendering.
func (s *SessionController) Current() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := SessionView{
		Mode:           s.mode,
		Sections:       append([]string(nil), s.allSections...),
		Selected:       s.selectedLocked(),
		Total:          len(s.items),
		Revealed:       s.revealed,
		Feedback:       s.feedback,
		Streak:         s.streak,
		CompletedCount: len(s.completed),
		Arranged:       append([]string(nil), s.arranged...),
	}
	if len(s.items) > 0 {
		item := s.items[s.index]
		view.Item = &item
		view.Position = s.index + 1
	}
	return view
}

// SectionProgress reports per-section completion over the full catalog,
// regardless of the active filter.
func (s *SessionController) SectionProgress() []SectionProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SectionProgress, 0, len(s.allSections))
	for _, section := range s.allSections {
		progress := SectionProgress{Section: section}
		for _, item := range s.allItemsLocked() {
			if item.Section() != section {
				continue
			}
			progress.Total++
			if s.completed[item.ID()] {
				progress.Completed++
			}
		}
		out = append(out, progress)
	}
	return out
}

func (s *SessionController) selectedLocked() []string {
	if s.selected == nil {
		return append([]string(nil), s.allSections...)
	}
	return append([]string(nil), s.selected...)
}

func (s *SessionController) allItemsLocked() []SessionItem {
	items := make([]SessionItem, 0, len(s.cards)+len(s.questions))
	for i := range s.cards {
		items = append(items, SessionItem{Flashcard: &s.cards[i]})
	}
	for i := range s.questions {
		items = append(items, SessionItem{Question: &s.questions[i]})
	}
	return items
}

// rebuildLocked recomputes the filtered item list from the catalog and the
// selected sections, preserving catalog order.
func (s *SessionController) rebuildLocked() {
	wanted := func(section string) bool {
		if s.selected == nil {
			return true
		}
		return lo.Contains(s.selected, section)
	}
	s.items = s.items[:0]
	for _, item := range s.allItemsLocked() {
		if wanted(item.Section()) {
			s.items = append(s.items, item)
		}
	}
	if s.index >= len(s.items) {
		s.index = 0
	}
}

// rearmLocked re-rolls the presentation order when the current question is
// drag-and-drop or matching. The shuffle is intentionally re-rolled on every
// visit so learners memorise content, not screen positions.
func (s *SessionController) rearmLocked() {
	s.arranged = nil
	if s.mode != ModeQuizzes || len(s.items) == 0 {
		return
	}
	question := s.items[s.index].Question
	switch question.Kind {
	case entity.KindDragAndDrop:
		s.arranged = shuffle.Apply(s.shuffle, question.Options)
	case entity.KindMatching:
		rights := lo.Map(question.Pairs, func(p entity.MatchPair, _ int) string { return p.Right })
		s.arranged = shuffle.Apply(s.shuffle, rights)
	}
}

func collectSections(cards []entity.Flashcard, questions []entity.QuizQuestion) []string {
	var sections []string
	seen := make(map[string]bool)
	for _, card := range cards {
		if !seen[card.Section] {
			seen[card.Section] = true
			sections = append(sections, card.Section)
		}
	}
	for _, question := range questions {
		if !seen[question.Section] {
			seen[question.Section] = true
			sections = append(sections, question.Section)
		}
	}
	return sections
}
