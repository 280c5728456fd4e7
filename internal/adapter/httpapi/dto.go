package httpapi

import (
	"github.com/samber/lo"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/usecase"
)

type userDTO struct {
	Username string `json:"username"`
	TeamID   string `json:"teamId,omitempty"`
	Role     string `json:"role"`
}

func toUserDTO(u entity.User) userDTO {
	return userDTO{Username: u.Username, TeamID: u.TeamID, Role: string(u.Role)}
}

type teamDTO struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

func toTeamDTO(t entity.Team) teamDTO {
	return teamDTO{ID: t.ID, Name: t.Name, Members: t.Members}
}

type flashcardDTO struct {
	ID       string `json:"id"`
	Section  string `json:"section"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func toFlashcardDTO(card entity.Flashcard) flashcardDTO {
	return flashcardDTO{ID: card.ID, Section: card.Section, Question: card.Question, Answer: card.Answer}
}

func (d flashcardDTO) toEntity() entity.Flashcard {
	return entity.Flashcard{ID: d.ID, Section: d.Section, Question: d.Question, Answer: d.Answer}
}

type pairDTO struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

type quizDTO struct {
	ID          string    `json:"id"`
	Section     string    `json:"section"`
	Type        string    `json:"type"`
	Question    string    `json:"question"`
	Options     []string  `json:"options,omitempty"`
	AnswerIndex *int32    `json:"answerIndex,omitempty"`
	AnswerText  string    `json:"answerText,omitempty"`
	AnswerOrder []int32   `json:"answerOrder,omitempty"`
	Pairs       []pairDTO `json:"pairs,omitempty"`
}

func toQuizDTO(q entity.QuizQuestion) quizDTO {
	dto := quizDTO{
		ID:       q.ID,
		Section:  q.Section,
		Type:     string(q.Kind),
		Question: q.Prompt,
		Options:  q.Options,
	}
	switch q.Kind {
	case entity.KindMultipleChoice:
		idx := q.AnswerIndex
		dto.AnswerIndex = &idx
	case entity.KindFillInBlank:
		dto.AnswerText = q.AnswerText
	case entity.KindDragAndDrop:
		dto.AnswerOrder = q.AnswerOrder
	case entity.KindMatching:
		dto.Pairs = lo.Map(q.Pairs, func(p entity.MatchPair, _ int) pairDTO {
			return pairDTO{Left: p.Left, Right: p.Right}
		})
	}
	return dto
}

func (d quizDTO) toEntity() entity.QuizQuestion {
	q := entity.QuizQuestion{
		ID:      d.ID,
		Section: d.Section,
		Kind:    entity.QuestionKind(d.Type),
		Prompt:  d.Question,
		Options: d.Options,
	}
	if d.AnswerIndex != nil {
		q.AnswerIndex = *d.AnswerIndex
	}
	q.AnswerText = d.AnswerText
	q.AnswerOrder = d.AnswerOrder
	q.Pairs = lo.Map(d.Pairs, func(p pairDTO, _ int) entity.MatchPair {
		return entity.MatchPair{Left: p.Left, Right: p.Right}
	})
	return q
}

// sessionItemDTO is what a session exposes about the current item. Quiz
// answers never leave the server; flashcard answers only after a reveal.
type sessionItemDTO struct {
	ID       string   `json:"id"`
	Section  string   `json:"section"`
	Type     string   `json:"type,omitempty"`
	Question string   `json:"question"`
	Answer   string   `json:"answer,omitempty"`
	Options  []string `json:"options,omitempty"`
	Arranged []string `json:"arranged,omitempty"`
	Lefts    []string `json:"lefts,omitempty"`
}

type sessionViewDTO struct {
	Mode           string          `json:"mode"`
	Sections       []string        `json:"sections"`
	Selected       []string        `json:"selected"`
	Position       int             `json:"position"`
	Total          int             `json:"total"`
	Item           *sessionItemDTO `json:"item,omitempty"`
	Revealed       bool            `json:"revealed"`
	Feedback       string          `json:"feedback,omitempty"`
	Streak         int32           `json:"streak"`
	CompletedCount int             `json:"completedCount"`
}

func toSessionViewDTO(view usecase.SessionView) sessionViewDTO {
	dto := sessionViewDTO{
		Mode:           string(view.Mode),
		Sections:       view.Sections,
		Selected:       view.Selected,
		Position:       view.Position,
		Total:          view.Total,
		Revealed:       view.Revealed,
		Feedback:       view.Feedback,
		Streak:         view.Streak,
		CompletedCount: view.CompletedCount,
	}
	if view.Item == nil {
		return dto
	}
	item := sessionItemDTO{ID: view.Item.ID(), Section: view.Item.Section()}
	switch {
	case view.Item.Flashcard != nil:
		item.Question = view.Item.Flashcard.Question
		if view.Revealed {
			item.Answer = view.Item.Flashcard.Answer
		}
	case view.Item.Question != nil:
		q := view.Item.Question
		item.Type = string(q.Kind)
		item.Question = q.Prompt
		switch q.Kind {
		case entity.KindMultipleChoice:
			item.Options = q.Options
		case entity.KindDragAndDrop:
			item.Arranged = view.Arranged
		case entity.KindMatching:
			item.Lefts = lo.Map(q.Pairs, func(p entity.MatchPair, _ int) string { return p.Left })
			item.Arranged = view.Arranged
		}
	}
	dto.Item = &item
	return dto
}

type sectionProgressDTO struct {
	Section   string `json:"section"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

func toSectionProgressDTOs(rows []usecase.SectionProgress) []sectionProgressDTO {
	return lo.Map(rows, func(row usecase.SectionProgress, _ int) sectionProgressDTO {
		return sectionProgressDTO{Section: row.Section, Completed: row.Completed, Total: row.Total}
	})
}
