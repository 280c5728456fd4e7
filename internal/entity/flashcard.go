package entity

import "strings"

// Flashcard is a single question/answer revision card. Cards are immutable
// once authored; only the admin surface mutates them.
type Flashcard struct {
	ID       string
	Section  string
	Question string
	Answer   string
}

// Normalize trims authored text before persistence.
func (f *Flashcard) Normalize() {
	f.ID = strings.TrimSpace(f.ID)
	f.Section = strings.TrimSpace(f.Section)
	f.Question = strings.TrimSpace(f.Question)
	f.Answer = strings.TrimSpace(f.Answer)
}

// Validate ensures the card can be shown and evaluated.
func (f *Flashcard) Validate() error {
	if f.ID == "" || f.Section == "" || f.Question == "" || f.Answer == "" {
		return ErrInvalidFlashcard
	}
	return nil
}
