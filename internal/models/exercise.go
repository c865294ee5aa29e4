package models

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// DefaultCategory is assigned to exercises created without a category.
const DefaultCategory = "Strength"

// Character limits of the string columns. SQLite does not enforce VARCHAR
// lengths, so CheckLengths and the CLI apply them.
const (
	MaxUsernameLength = 80
	MaxNameLength     = 100
	MaxCategoryLength = 50
	MaxNotesLength    = 500
)

// ErrFieldTooLong is returned when a string field exceeds its column limit.
var ErrFieldTooLong = errors.New("field too long")

// Exercise represents a single logged workout entry.
type Exercise struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Sets            int       `json:"sets"`
	Reps            *int      `json:"reps,omitempty"`
	Weight          *float64  `json:"weight,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UserID          int64     `json:"user_id"`
}

// TotalVolume returns sets * reps * weight, or 0 when any of them is missing or zero.
func (e Exercise) TotalVolume() float64 {
	if e.Reps == nil || e.Weight == nil {
		return 0
	}
	if e.Sets == 0 || *e.Reps == 0 || *e.Weight == 0 {
		return 0
	}
	return float64(e.Sets) * float64(*e.Reps) * *e.Weight
}

// CheckLengths returns an ErrFieldTooLong error naming the first string field over its limit.
func (e Exercise) CheckLengths() error {
	if err := checkLength("name", e.Name, MaxNameLength); err != nil {
		return err
	}
	if err := checkLength("category", e.Category, MaxCategoryLength); err != nil {
		return err
	}
	if e.Notes != nil {
		return checkLength("notes", *e.Notes, MaxNotesLength)
	}
	return nil
}

func checkLength(field, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return fmt.Errorf("%w: %s must be at most %d characters, got %d", ErrFieldTooLong, field, limit, n)
	}
	return nil
}

// ExerciseChanges lists the fields of an Exercise a caller may overwrite.
// A nil field is left untouched. ID, owner and creation time are not settable.
type ExerciseChanges struct {
	Name            *string
	Category        *string
	Sets            *int
	Reps            *int
	Weight          *float64
	DurationMinutes *int
	Notes           *string
}

// Empty reports whether no field is set.
func (c ExerciseChanges) Empty() bool {
	return c.Name == nil && c.Category == nil && c.Sets == nil && c.Reps == nil &&
		c.Weight == nil && c.DurationMinutes == nil && c.Notes == nil
}

// User represents a user account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
