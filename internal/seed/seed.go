// Package seed ships the built-in NPLQ revision catalog and the bootstrap
// admin account used on a fresh database.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/repository"
)

// Flashcards returns the built-in revision cards. Ids follow the
// "<section>-<index>" scheme so stored completion records keep matching
// across reseeds.
func Flashcards() []entity.Flashcard {
	return []entity.Flashcard{
		{ID: "Section 1-0", Section: "Section 1", Question: "What does NPLQ stand for?", Answer: "National Pool Lifeguard Qualification"},
		{ID: "Section 1-1", Section: "Section 1", Question: "What is the recovery position used for?", Answer: "To maintain an open airway in an unconscious breathing casualty."},
		{ID: "Section 2-0", Section: "Section 2", Question: "How long should you check for breathing?", Answer: "No more than 10 seconds."},
		{ID: "Section 2-1", Section: "Section 2", Question: "What are the signs of a spinal injury?", Answer: "Pain in neck/back, loss of movement, numbness, or tingling."},
		{ID: "Section 3-0", Section: "Section 3", Question: "What does ABC stand for in first aid?", Answer: "Airway, Breathing, Circulation"},
		{ID: "Section 3-1", Section: "Section 3", Question: "What is the first thing you should do at an emergency?", Answer: "Assess for danger to yourself and others."},
	}
}

// QuizQuestions returns the built-in quiz bank.
func QuizQuestions() []entity.QuizQuestion {
	return []entity.QuizQuestion{
		{
			ID: "q1", Section: "Section 1", Kind: entity.KindMultipleChoice,
			Prompt:      "What is the primary responsibility of a lifeguard?",
			Options:     []string{"Rescue swimmers in trouble", "Clean the pool", "Teach lessons", "Sell tickets"},
			AnswerIndex: 0,
		},
		{
			ID: "q2", Section: "Section 1", Kind: entity.KindFillInBlank,
			Prompt:     "The recovery position is used for an unconscious _____ casualty.",
			AnswerText: "breathing",
		},
		{
			ID: "dnd1", Section: "Section 1", Kind: entity.KindDragAndDrop,
			Prompt:      "Arrange the steps of adult CPR in the correct order:",
			Options:     []string{"Check for response", "Open airway", "Check breathing", "Call emergency services", "Start chest compressions", "Give rescue breaths"},
			AnswerOrder: []int32{0, 1, 2, 3, 4, 5},
		},
		{
			ID: "q3", Section: "Section 2", Kind: entity.KindMultipleChoice,
			Prompt:      "How many seconds should you check for breathing?",
			Options:     []string{"3", "5", "10", "20"},
			AnswerIndex: 2,
		},
		{
			ID: "q4", Section: "Section 2", Kind: entity.KindFillInBlank,
			Prompt:     "Signs of a spinal injury include pain in the ____ or back.",
			AnswerText: "neck",
		},
		{
			ID: "dnd2", Section: "Section 2", Kind: entity.KindDragAndDrop,
			Prompt:      "Order the pool rescue sequence from first to last:",
			Options:     []string{"Shout and signal", "Reach", "Throw", "Wade", "Swim", "Tow"},
			AnswerOrder: []int32{0, 1, 2, 3, 4, 5},
		},
		{
			ID: "dnd3", Section: "Section 2", Kind: entity.KindDragAndDrop,
			Prompt:      "Drag the casualties into the order in which you should treat them:",
			Options:     []string{"Unconscious and not breathing", "Unconscious and breathing", "Bleeding heavily", "Minor burns"},
			AnswerOrder: []int32{0, 1, 2, 3},
		},
		{
			ID: "match1", Section: "Section 3", Kind: entity.KindMatching,
			Prompt: "Match the NPLQ term to its definition:",
			Pairs: []entity.MatchPair{
				{Left: "ABC", Right: "Airway, Breathing, Circulation"},
				{Left: "CPR", Right: "Cardiopulmonary Resuscitation"},
				{Left: "Shock", Right: "A life-threatening condition caused by insufficient blood flow"},
			},
		},
		{
			ID: "match2", Section: "Section 3", Kind: entity.KindMatching,
			Prompt: "Match the emergency signal to its meaning:",
			Pairs: []entity.MatchPair{
				{Left: "One long whistle", Right: "Lifeguard needs assistance"},
				{Left: "Three short whistles", Right: "Everyone clear the pool"},
				{Left: "One short whistle", Right: "Attract attention"},
			},
		},
	}
}

// Catalog writes the built-in catalog through the authoring repository,
// replacing existing entries with the same ids.
func Catalog(ctx context.Context, catalog repository.CatalogRepository) error {
	for _, card := range Flashcards() {
		card := card
		if err := catalog.SaveFlashcard(ctx, &card); err != nil {
			return fmt.Errorf("seed flashcard %s: %w", card.ID, err)
		}
	}
	for _, question := range QuizQuestions() {
		question := question
		if err := catalog.SaveQuizQuestion(ctx, &question); err != nil {
			return fmt.Errorf("seed quiz question %s: %w", question.ID, err)
		}
	}
	return nil
}

// Admin creates the bootstrap admin account when no account with that
// username exists yet.
func Admin(ctx context.Context, users repository.UserRepository, username, password string) error {
	admin := entity.User{Username: username, Password: password, Role: entity.RoleAdmin}
	admin.Normalize()
	if err := admin.Validate(); err != nil {
		return err
	}
	err := users.Create(ctx, &admin)
	if err == nil || errors.Is(err, entity.ErrUserAlreadyExists) {
		return nil
	}
	return fmt.Errorf("seed admin account: %w", err)
}
