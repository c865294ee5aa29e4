// Package workout implements the per-user workout log operations.
//
// A Manager is bound to one user id when it is constructed and every query it
// issues is filtered on that owner; it is the only access-control boundary for
// exercise records.
package workout

import (
	"errors"
	"fmt"
	"time"

	"workout-tracker/internal/models"
	"workout-tracker/internal/observability"
	"workout-tracker/internal/storage"
)

var (
	// ErrForbidden is returned by Update when the entry is not owned by the bound user
	// or does not exist.
	ErrForbidden = errors.New("workout entry not owned by user")
	// ErrNotFound is returned by Get and Delete when no owned entry matches the id.
	ErrNotFound = errors.New("workout entry not found")
)

// Store is the persistence the Manager needs. Every call carries the owning user id.
type Store interface {
	ListExercises(userID int64) ([]models.Exercise, error)
	ListExercisesBetween(userID int64, from, to time.Time) ([]models.Exercise, error)
	GetExercise(userID, id int64) (*models.Exercise, error)
	CreateExercise(e *models.Exercise) error
	UpdateExercise(e *models.Exercise) error
	DeleteExercise(userID, id int64) (int64, error)
}

// Manager mediates all exercise access for a single user.
type Manager struct {
	store  Store
	userID int64
}

// NewManager returns a Manager scoped to userID.
func NewManager(store Store, userID int64) *Manager {
	return &Manager{store: store, userID: userID}
}

// List returns the user's exercises, most recent first.
func (m *Manager) List() ([]models.Exercise, error) {
	exercises, err := m.store.ListExercises(m.userID)
	record("list", err)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

// Get returns a single owned exercise.
func (m *Manager) Get(id int64) (*models.Exercise, error) {
	e, err := m.store.GetExercise(m.userID, id)
	if errors.Is(err, storage.ErrNotFound) {
		err = ErrNotFound
	}
	record("get", err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return e, nil
}

// CreateInput carries the values accepted by Create.
type CreateInput struct {
	Name     string
	Sets     int
	Reps     int
	Weight   float64
	Category string
}

// Create stores a new exercise owned by the bound user. An empty category
// falls back to models.DefaultCategory. Values are not range checked.
func (m *Manager) Create(in CreateInput) (*models.Exercise, error) {
	category := in.Category
	if category == "" {
		category = models.DefaultCategory
	}
	reps, weight := in.Reps, in.Weight

	e := &models.Exercise{
		Name:     in.Name,
		Category: category,
		Sets:     in.Sets,
		Reps:     &reps,
		Weight:   &weight,
		UserID:   m.userID,
	}
	if err := e.CheckLengths(); err != nil {
		record("create", err)
		return nil, err
	}
	err := m.store.CreateExercise(e)
	record("create", err)
	if err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return e, nil
}

// Update applies changes to an owned exercise and returns the result.
// ErrForbidden is returned when the bound user does not own id. Empty changes
// only check ownership and write nothing.
func (m *Manager) Update(id int64, changes models.ExerciseChanges) (*models.Exercise, error) {
	e, err := m.update(id, changes)
	record("update", err)
	return e, err
}

func (m *Manager) update(id int64, changes models.ExerciseChanges) (*models.Exercise, error) {
	e, err := m.store.GetExercise(m.userID, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("load exercise %d: %w", id, err)
	}

	if changes.Empty() {
		return e, nil
	}

	applyChanges(e, changes)
	if err := e.CheckLengths(); err != nil {
		return nil, err
	}

	if err := m.store.UpdateExercise(e); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("update exercise %d: %w", id, err)
	}
	return e, nil
}

func applyChanges(e *models.Exercise, c models.ExerciseChanges) {
	if c.Name != nil {
		e.Name = *c.Name
	}
	if c.Category != nil {
		e.Category = *c.Category
	}
	if c.Sets != nil {
		e.Sets = *c.Sets
	}
	if c.Reps != nil {
		v := *c.Reps
		e.Reps = &v
	}
	if c.Weight != nil {
		v := *c.Weight
		e.Weight = &v
	}
	if c.DurationMinutes != nil {
		v := *c.DurationMinutes
		e.DurationMinutes = &v
	}
	if c.Notes != nil {
		v := *c.Notes
		e.Notes = &v
	}
}

// Delete removes an owned exercise. ErrNotFound is returned when nothing was removed.
func (m *Manager) Delete(id int64) error {
	n, err := m.store.DeleteExercise(m.userID, id)
	if err == nil && n == 0 {
		err = ErrNotFound
	}
	record("delete", err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete exercise %d: %w", id, err)
	}
	return nil
}

func record(operation string, err error) {
	result := observability.ResultOK
	switch {
	case err == nil:
	case errors.Is(err, ErrForbidden):
		result = observability.ResultForbidden
	case errors.Is(err, ErrNotFound):
		result = observability.ResultNotFound
	case errors.Is(err, models.ErrFieldTooLong):
		result = observability.ResultInvalid
	default:
		result = observability.ResultError
	}
	observability.RecordWorkoutOperation(operation, result)
}
