package repository

import (
	"fmt"

	"github.com/nplqhub/revise/internal/adapter/docstore"
	"github.com/nplqhub/revise/internal/entity"
)

// Persisted field names follow the shapes the web clients already wrote:
// progress documents carry "completed", "streak" and "secondsSpent"; quiz
// documents overload "answer" per question type. Decoders therefore have to
// cope with JSON's view of those values (float64 numbers, []any slices).

func asInt32(v any) (int32, bool) {
	switch n := v.(type) {
	case float64:
		return int32(n), true
	case int:
		return int32(n), true
	case int32:
		return n, true
	case int64:
		return int32(n), true
	}
	return 0, false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringSlice(v any) []string {
	switch vs := v.(type) {
	case []string:
		return append([]string(nil), vs...)
	case []any:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			out = append(out, asString(item))
		}
		return out
	}
	return nil
}

func asInt32Slice(v any) ([]int32, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]int32, 0, len(items))
	for _, item := range items {
		n, ok := asInt32(item)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func flashcardToDoc(card *entity.Flashcard) docstore.Document {
	return docstore.Document{
		"section":  card.Section,
		"question": card.Question,
		"answer":   card.Answer,
	}
}

func docToFlashcard(id string, doc docstore.Document) entity.Flashcard {
	return entity.Flashcard{
		ID:       id,
		Section:  asString(doc["section"]),
		Question: asString(doc["question"]),
		Answer:   asString(doc["answer"]),
	}
}

func quizToDoc(q *entity.QuizQuestion) (docstore.Document, error) {
	doc := docstore.Document{
		"section":  q.Section,
		"type":     string(q.Kind),
		"question": q.Prompt,
	}
	switch q.Kind {
	case entity.KindMultipleChoice:
		doc["options"] = q.Options
		doc["answer"] = q.AnswerIndex
	case entity.KindFillInBlank:
		doc["answer"] = q.AnswerText
	case entity.KindDragAndDrop:
		doc["options"] = q.Options
		doc["answer"] = q.AnswerOrder
	case entity.KindMatching:
		pairs := make([]map[string]any, 0, len(q.Pairs))
		for _, p := range q.Pairs {
			pairs = append(pairs, map[string]any{"left": p.Left, "right": p.Right})
		}
		doc["pairs"] = pairs
	default:
		return nil, fmt.Errorf("encode question %s: %w", q.ID, entity.ErrInvalidQuestion)
	}
	return doc, nil
}

func docToQuiz(id string, doc docstore.Document) (entity.QuizQuestion, error) {
	q := entity.QuizQuestion{
		ID:      id,
		Section: asString(doc["section"]),
		Kind:    entity.QuestionKind(asString(doc["type"])),
		Prompt:  asString(doc["question"]),
	}
	switch q.Kind {
	case entity.KindMultipleChoice:
		q.Options = asStringSlice(doc["options"])
		idx, ok := asInt32(doc["answer"])
		if !ok {
			return q, fmt.Errorf("decode question %s: %w", id, entity.ErrInvalidQuestion)
		}
		q.AnswerIndex = idx
	case entity.KindFillInBlank:
		q.AnswerText = asString(doc["answer"])
	case entity.KindDragAndDrop:
		q.Options = asStringSlice(doc["options"])
		order, ok := asInt32Slice(doc["answer"])
		if !ok {
			return q, fmt.Errorf("decode question %s: %w", id, entity.ErrInvalidQuestion)
		}
		q.AnswerOrder = order
	case entity.KindMatching:
		rawPairs, ok := doc["pairs"].([]any)
		if !ok {
			return q, fmt.Errorf("decode question %s: %w", id, entity.ErrInvalidQuestion)
		}
		for _, rawPair := range rawPairs {
			pair, ok := rawPair.(map[string]any)
			if !ok {
				return q, fmt.Errorf("decode question %s: %w", id, entity.ErrInvalidQuestion)
			}
			q.Pairs = append(q.Pairs, entity.MatchPair{
				Left:  asString(pair["left"]),
				Right: asString(pair["right"]),
			})
		}
	default:
		return q, fmt.Errorf("decode question %s: unknown type %q: %w", id, doc["type"], entity.ErrInvalidQuestion)
	}
	if err := q.Validate(); err != nil {
		return q, fmt.Errorf("decode question %s: %w", id, err)
	}
	return q, nil
}

func userToDoc(user *entity.User) docstore.Document {
	return docstore.Document{
		"username": user.Username,
		"password": user.Password,
		"teamId":   user.TeamID,
		"role":     string(user.Role),
	}
}

func docToUser(id string, doc docstore.Document) entity.User {
	return entity.User{
		ID:       id,
		Username: asString(doc["username"]),
		Password: asString(doc["password"]),
		TeamID:   asString(doc["teamId"]),
		Role:     entity.Role(asString(doc["role"])),
	}
}

func teamToDoc(team *entity.Team) docstore.Document {
	members := team.Members
	if members == nil {
		members = []string{}
	}
	return docstore.Document{
		"name":    team.Name,
		"members": members,
	}
}

func docToTeam(id string, doc docstore.Document) entity.Team {
	return entity.Team{
		ID:      id,
		Name:    asString(doc["name"]),
		Members: asStringSlice(doc["members"]),
	}
}
