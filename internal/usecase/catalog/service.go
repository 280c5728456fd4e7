// Package catalog moves the revision catalog in and out of the document
// store as a single JSON snapshot, for seeding and backups.
package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/repository"
)

const formatVersion = 1

var errBadSnapshot = errors.New("catalog: unsupported snapshot format")

// Snapshot is the on-disk shape. Quiz answers keep the per-type field
// layout of the persisted documents.
type Snapshot struct {
	Version    int             `json:"version"`
	Flashcards []FlashcardDump `json:"flashcards"`
	Quizzes    []QuizDump      `json:"quizzes"`
}

type FlashcardDump struct {
	ID       string `json:"id"`
	Section  string `json:"section"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QuizDump struct {
	ID          string     `json:"id"`
	Section     string     `json:"section"`
	Type        string     `json:"type"`
	Question    string     `json:"question"`
	Options     []string   `json:"options,omitempty"`
	AnswerIndex *int32     `json:"answerIndex,omitempty"`
	AnswerText  string     `json:"answerText,omitempty"`
	AnswerOrder []int32    `json:"answerOrder,omitempty"`
	Pairs       []PairDump `json:"pairs,omitempty"`
}

type PairDump struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

type Service struct {
	content repository.ContentRepository
	catalog repository.CatalogRepository
}

func NewService(content repository.ContentRepository, catalog repository.CatalogRepository) *Service {
	return &Service{content: content, catalog: catalog}
}

type options struct {
	gzipped bool
}

type Option func(*options)

// WithGzip wraps the stream in gzip compression.
func WithGzip() Option {
	return func(o *options) { o.gzipped = true }
}

// Export writes the whole catalog as one snapshot.
func (s *Service) Export(ctx context.Context, w io.Writer, opts ...Option) error {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}
	cards, err := s.content.ListFlashcards(ctx)
	if err != nil {
		return fmt.Errorf("export flashcards: %w", err)
	}
	questions, err := s.content.ListQuizQuestions(ctx)
	if err != nil {
		return fmt.Errorf("export quiz questions: %w", err)
	}

	snapshot := Snapshot{
		Version:    formatVersion,
		Flashcards: lo.Map(cards, func(c entity.Flashcard, _ int) FlashcardDump { return dumpFlashcard(c) }),
		Quizzes:    lo.Map(questions, func(q entity.QuizQuestion, _ int) QuizDump { return dumpQuiz(q) }),
	}

	out := w
	if cfg.gzipped {
		gz := gzip.NewWriter(w)
		defer gz.Close()
		out = gz
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Import reads a snapshot and writes every entry through the authoring
// repository. Existing entries with the same ids are replaced; entries that
// fail validation abort the import.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...Option) error {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}
	in := r
	if cfg.gzipped {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("open gzip stream: %w", err)
		}
		defer gz.Close()
		in = gz
	}

	var snapshot Snapshot
	if err := json.NewDecoder(in).Decode(&snapshot); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if snapshot.Version != formatVersion {
		return fmt.Errorf("%w: version %d", errBadSnapshot, snapshot.Version)
	}

	for _, dump := range snapshot.Flashcards {
		card := entity.Flashcard{ID: dump.ID, Section: dump.Section, Question: dump.Question, Answer: dump.Answer}
		if err := s.catalog.SaveFlashcard(ctx, &card); err != nil {
			return fmt.Errorf("import flashcard %s: %w", dump.ID, err)
		}
	}
	for _, dump := range snapshot.Quizzes {
		question, err := restoreQuiz(dump)
		if err != nil {
			return err
		}
		if err := s.catalog.SaveQuizQuestion(ctx, &question); err != nil {
			return fmt.Errorf("import quiz question %s: %w", dump.ID, err)
		}
	}
	return nil
}

func dumpFlashcard(card entity.Flashcard) FlashcardDump {
	return FlashcardDump{ID: card.ID, Section: card.Section, Question: card.Question, Answer: card.Answer}
}

func dumpQuiz(q entity.QuizQuestion) QuizDump {
	dump := QuizDump{
		ID:       q.ID,
		Section:  q.Section,
		Type:     string(q.Kind),
		Question: q.Prompt,
	}
	switch q.Kind {
	case entity.KindMultipleChoice:
		dump.Options = q.Options
		idx := q.AnswerIndex
		dump.AnswerIndex = &idx
	case entity.KindFillInBlank:
		dump.AnswerText = q.AnswerText
	case entity.KindDragAndDrop:
		dump.Options = q.Options
		dump.AnswerOrder = q.AnswerOrder
	case entity.KindMatching:
		dump.Pairs = lo.Map(q.Pairs, func(p entity.MatchPair, _ int) PairDump {
			return PairDump{Left: p.Left, Right: p.Right}
		})
	}
	return dump
}

func restoreQuiz(dump QuizDump) (entity.QuizQuestion, error) {
	q := entity.QuizQuestion{
		ID:      dump.ID,
		Section: dump.Section,
		Kind:    entity.QuestionKind(dump.Type),
		Prompt:  dump.Question,
		Options: dump.Options,
	}
	switch q.Kind {
	case entity.KindMultipleChoice:
		if dump.AnswerIndex == nil {
			return q, fmt.Errorf("quiz question %s: missing answer index: %w", dump.ID, entity.ErrInvalidQuestion)
		}
		q.AnswerIndex = *dump.AnswerIndex
	case entity.KindFillInBlank:
		q.AnswerText = dump.AnswerText
	case entity.KindDragAndDrop:
		q.AnswerOrder = dump.AnswerOrder
	case entity.KindMatching:
		q.Pairs = lo.Map(dump.Pairs, func(p PairDump, _ int) entity.MatchPair {
			return entity.MatchPair{Left: p.Left, Right: p.Right}
		})
	default:
		return q, fmt.Errorf("quiz question %s: unknown type %q: %w", dump.ID, dump.Type, entity.ErrInvalidQuestion)
	}
	return q, nil
}
