package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"workout-tracker/internal/models"
)

const exerciseColumns = "id, name, category, sets, reps, weight, duration_minutes, notes, created_at, user_id"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExercise(row rowScanner) (*models.Exercise, error) {
	var (
		e        models.Exercise
		reps     sql.NullInt64
		weight   sql.NullFloat64
		duration sql.NullInt64
		notes    sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Category, &e.Sets, &reps, &weight, &duration, &notes, &e.CreatedAt, &e.UserID); err != nil {
		return nil, err
	}
	e.Reps = nullIntToPtr(reps)
	e.Weight = nullFloatToPtr(weight)
	e.DurationMinutes = nullIntToPtr(duration)
	e.Notes = nullStringToPtr(notes)
	return &e, nil
}

// CreateExercise inserts e and fills in its ID. A zero CreatedAt is set to the current UTC time.
func (db *DB) CreateExercise(e *models.Exercise) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	result, err := db.conn.Exec(`
		INSERT INTO exercise_logs (name, category, sets, reps, weight, duration_minutes, notes, created_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.Name, e.Category, e.Sets, intArg(e.Reps), floatArg(e.Weight), intArg(e.DurationMinutes), stringArg(e.Notes), e.CreatedAt, e.UserID)
	if err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get exercise id: %w", err)
	}
	e.ID = id
	return nil
}

// GetExercise retrieves a single exercise owned by userID.
func (db *DB) GetExercise(userID, id int64) (*models.Exercise, error) {
	row := db.conn.QueryRow(
		"SELECT "+exerciseColumns+" FROM exercise_logs WHERE id = ? AND user_id = ?",
		id, userID,
	)
	e, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	return e, nil
}

// ListExercises retrieves every exercise owned by userID, most recent first.
func (db *DB) ListExercises(userID int64) ([]models.Exercise, error) {
	return db.queryExercises(
		"SELECT "+exerciseColumns+" FROM exercise_logs WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
}

// ListExercisesBetween retrieves exercises owned by userID created in [from, to), most recent first.
func (db *DB) ListExercisesBetween(userID int64, from, to time.Time) ([]models.Exercise, error) {
	return db.queryExercises(
		"SELECT "+exerciseColumns+" FROM exercise_logs WHERE user_id = ? AND created_at >= ? AND created_at < ? ORDER BY created_at DESC, id DESC",
		userID, from.UTC(), to.UTC(),
	)
}

func (db *DB) queryExercises(query string, args ...any) ([]models.Exercise, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		exercises = append(exercises, *e)
	}

	return exercises, rows.Err()
}

// UpdateExercise writes the editable columns of e. The row must belong to e.UserID;
// the owner and creation time columns are never written.
func (db *DB) UpdateExercise(e *models.Exercise) error {
	result, err := db.conn.Exec(`
		UPDATE exercise_logs
		SET name = ?, category = ?, sets = ?, reps = ?, weight = ?, duration_minutes = ?, notes = ?
		WHERE id = ? AND user_id = ?
	`, e.Name, e.Category, e.Sets, intArg(e.Reps), floatArg(e.Weight), intArg(e.DurationMinutes), stringArg(e.Notes), e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("failed to update exercise: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update exercise: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExercise removes the exercise with the given id if userID owns it and
// returns the number of rows removed.
func (db *DB) DeleteExercise(userID, id int64) (int64, error) {
	result, err := db.conn.Exec("DELETE FROM exercise_logs WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete exercise: %w", err)
	}
	return result.RowsAffected()
}
