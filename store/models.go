// Package store defines the persistence boundary of the application: the
// entities, the store interfaces the services consume, and the PostgreSQL
// implementation backing them. Services never touch SQL directly; they talk
// to these interfaces, which also makes them testable against in-memory
// fakes.
package store

import "time"

// User represents a registered user.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash, never serialized
	Notes    string `json:"notes,omitempty"`
	// IsConflict is a legacy column: it is written at registration (always
	// false) and read by nothing. Kept so the schema and entity stay honest
	// about what is stored.
	IsConflict  bool      `json:"-"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

// Recipe represents a recipe authored by a user.
//
// Categories and SaverIDs are integer-array columns, not join tables. SaverIDs
// carries set semantics: a user id appears at most once.
type Recipe struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Recipe      string    `json:"recipe"` // The free-text preparation steps
	Image       string    `json:"image,omitempty"`
	Categories  []int64   `json:"categories"`
	CreatorID   int64     `json:"creator_id"`
	Popularity  int64     `json:"popularity"`
	SaverIDs    []int64   `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category is a recipe category. Read-only from the application's
// perspective; rows are seeded administratively.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
