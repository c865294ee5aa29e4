package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"workout-tracker/internal/models"
	"workout-tracker/internal/workout"

	"github.com/rs/zerolog/log"
)

// CategoryDef defines the properties of a category offered in forms.
// Categories are free-form; these are suggestions with a visual style.
type CategoryDef struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

var categories = []CategoryDef{
	{"Strength", "Strength", "🏋️", "#60a5fa"},
	{"Hypertrophy", "Hypertrophy", "💪", "#a78bfa"},
	{"Cardio", "Cardio", "🏃", "#f472b6"},
	{"Mobility", "Mobility", "🧘", "#34d399"},
	{"Other", "Other", "📦", "#94a3b8"},
}

// CategoryStyle defines the visual style for a category.
type CategoryStyle struct {
	Icon  string
	Color string
}

func getCategoryStyle(category string) CategoryStyle {
	for _, c := range categories {
		if strings.EqualFold(c.ID, category) {
			return CategoryStyle{Icon: c.Icon, Color: c.Color}
		}
	}
	return CategoryStyle{Icon: "📦", Color: "#94a3b8"}
}

// WorkoutItem represents an exercise in the list view.
type WorkoutItem struct {
	models.Exercise
	Time          string
	Volume        float64
	CategoryStyle CategoryStyle
}

// WorkoutGroup groups exercises by day.
type WorkoutGroup struct {
	Title  string
	Date   string
	Volume float64
	Items  []WorkoutItem
}

// DashboardViewModel is the data passed to the dashboard template.
type DashboardViewModel struct {
	Username   string
	Volume     float64
	Count      int
	Groups     []WorkoutGroup
	Categories []CategoryDef
}

// FormViewModel is the data passed to the edit form template.
type FormViewModel struct {
	Exercise   *models.Exercise
	Categories []CategoryDef
}

// Dashboard renders the user's workout log grouped by day.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	p, _ := currentPrincipal(r)
	exercises, err := workout.NewManager(h.db, p.UserID).List()
	if err != nil {
		log.Error().Err(err).Int64("user_id", p.UserID).Msg("Failed to list workouts")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	groupsMap := make(map[string]*WorkoutGroup)
	var totalVolume float64

	for _, e := range exercises {
		dateStr := e.CreatedAt.Format("2006-01-02")
		if _, ok := groupsMap[dateStr]; !ok {
			groupsMap[dateStr] = &WorkoutGroup{Date: dateStr, Title: formatGroupTitle(e.CreatedAt)}
		}
		group := groupsMap[dateStr]
		volume := e.TotalVolume()
		group.Volume += volume
		totalVolume += volume

		group.Items = append(group.Items, WorkoutItem{
			Exercise:      e,
			Time:          e.CreatedAt.Format("15:04"),
			Volume:        volume,
			CategoryStyle: getCategoryStyle(e.Category),
		})
	}

	groups := make([]WorkoutGroup, 0, len(groupsMap))
	for _, g := range groupsMap {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date > groups[j].Date })

	h.render(w, r, "dashboard.html", DashboardViewModel{
		Username:   p.Username,
		Volume:     totalVolume,
		Count:      len(exercises),
		Groups:     groups,
		Categories: categories,
	})
}

// CreateWorkout handles the creation of a new exercise entry.
func (h *Handlers) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	p, _ := currentPrincipal(r)
	in, err := parseCreateForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := workout.NewManager(h.db, p.UserID).Create(in)
	if err != nil {
		h.workoutError(w, r, "create", err)
		return
	}
	log.Debug().Int64("user_id", p.UserID).Int64("log_id", e.ID).Msg("Workout created")
	redirectToDashboard(w, r)
}

// EditWorkoutForm renders the form to edit an existing exercise.
func (h *Handlers) EditWorkoutForm(w http.ResponseWriter, r *http.Request) {
	id, ok := logID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	p, _ := currentPrincipal(r)

	e, err := workout.NewManager(h.db, p.UserID).Get(id)
	if err != nil {
		h.workoutError(w, r, "get", err)
		return
	}
	h.render(w, r, "edit.html", FormViewModel{Exercise: e, Categories: categories})
}

// EditWorkout updates name, reps and weight of an owned exercise.
func (h *Handlers) EditWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := logID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	p, _ := currentPrincipal(r)

	changes, err := parseEditForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := workout.NewManager(h.db, p.UserID).Update(id, changes); err != nil {
		h.workoutError(w, r, "update", err)
		return
	}
	redirectToDashboard(w, r)
}

// DeleteWorkout removes an owned exercise.
func (h *Handlers) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := logID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	p, _ := currentPrincipal(r)

	if err := workout.NewManager(h.db, p.UserID).Delete(id); err != nil {
		h.workoutError(w, r, "delete", err)
		return
	}
	redirectToDashboard(w, r)
}

// workoutError maps manager errors to HTTP responses.
func (h *Handlers) workoutError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, workout.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, workout.ErrNotFound):
		http.Error(w, "Workout not found", http.StatusNotFound)
	case errors.Is(err, models.ErrFieldTooLong):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error().Err(err).Str("op", op).Str("path", r.URL.Path).Msg("Workout operation failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func parseCreateForm(r *http.Request) (workout.CreateInput, error) {
	if err := r.ParseForm(); err != nil {
		return workout.CreateInput{}, err
	}
	in := workout.CreateInput{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Category: strings.TrimSpace(r.FormValue("category")),
		Sets:     1,
	}
	if in.Name == "" {
		return workout.CreateInput{}, errors.New("name is required")
	}

	var err error
	if v := strings.TrimSpace(r.FormValue("sets")); v != "" {
		if in.Sets, err = strconv.Atoi(v); err != nil {
			return workout.CreateInput{}, fmt.Errorf("sets must be a whole number: %q", v)
		}
	}
	if in.Reps, err = parseReps(r.FormValue("reps")); err != nil {
		return workout.CreateInput{}, err
	}
	if in.Weight, err = parseWeight(r.FormValue("weight")); err != nil {
		return workout.CreateInput{}, err
	}
	return in, nil
}

// parseEditForm reads the fields the edit form may change: name, reps and weight.
func parseEditForm(r *http.Request) (models.ExerciseChanges, error) {
	if err := r.ParseForm(); err != nil {
		return models.ExerciseChanges{}, err
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		return models.ExerciseChanges{}, errors.New("name is required")
	}
	reps, err := parseReps(r.FormValue("reps"))
	if err != nil {
		return models.ExerciseChanges{}, err
	}
	weight, err := parseWeight(r.FormValue("weight"))
	if err != nil {
		return models.ExerciseChanges{}, err
	}
	return models.ExerciseChanges{Name: &name, Reps: &reps, Weight: &weight}, nil
}

func parseReps(raw string) (int, error) {
	v := strings.TrimSpace(raw)
	reps, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("reps must be a whole number: %q", v)
	}
	return reps, nil
}

func parseWeight(raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	weight, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return 0, fmt.Errorf("weight must be a number: %q", v)
	}
	return weight, nil
}
