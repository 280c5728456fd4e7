package entity

import "strings"

// Role separates the two login channels.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is an account record. The username doubles as the document id, so it
// is lowercased on the way in.
type User struct {
	ID       string
	Username string
	Password string
	TeamID   string
	Role     Role
}

// Normalize lowercases the username and defaults the role.
func (u *User) Normalize() {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	u.ID = u.Username
	if u.Role == "" {
		u.Role = RoleStudent
	}
}

// Validate checks the account can be created.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrInvalidUserName
	}
	if u.Role != RoleStudent && u.Role != RoleAdmin {
		return ErrInvalidUserName
	}
	return nil
}

// Team groups users for the admin surface.
type Team struct {
	ID      string
	Name    string
	Members []string
}

// Validate checks the team can be created.
func (t *Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalidTeamName
	}
	return nil
}
