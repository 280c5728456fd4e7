package entity

import "errors"

// Domain errors for catalog, progress and account aggregates.
var (
	ErrStoreUnavailable  = errors.New("document store unavailable")
	ErrResetFailed       = errors.New("progress reset failed")
	ErrInvalidQuestion   = errors.New("invalid quiz question")
	ErrInvalidFlashcard  = errors.New("invalid flashcard")
	ErrNotLoggedIn       = errors.New("not logged in")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrWrongLoginChannel = errors.New("wrong login channel for role")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidUserName   = errors.New("invalid user name")
	ErrTeamNotFound      = errors.New("team not found")
	ErrInvalidTeamName   = errors.New("invalid team name")
	ErrSessionNotFound   = errors.New("session not found")
)
