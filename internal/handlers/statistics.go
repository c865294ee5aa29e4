package handlers

import (
	"net/http"
	"strconv"
	"time"

	"workout-tracker/internal/workout"

	"github.com/rs/zerolog/log"
)

// StatsCategoryItem represents a category with its volume statistics.
type StatsCategoryItem struct {
	workout.CategorySummary
	CategoryStyle CategoryStyle
}

// StatsViewModel is the data passed to the statistics view template.
type StatsViewModel struct {
	Year           int
	Month          int
	MonthName      string
	Volume         float64
	Count          int
	Categories     []StatsCategoryItem
	Workouts       []WorkoutItem
	PrevYear       int
	PrevMonth      int
	NextYear       int
	NextMonth      int
	IsCurrentMonth bool
}

// Statistics renders the monthly volume breakdown.
func (h *Handlers) Statistics(w http.ResponseWriter, r *http.Request) {
	// Get year and month from query params, default to current month
	now := time.Now().UTC()
	year := now.Year()
	month := int(now.Month())

	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
		year = y
	}
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}

	p, _ := currentPrincipal(r)
	summary, err := workout.NewManager(h.db, p.UserID).MonthlySummary(year, time.Month(month))
	if err != nil {
		log.Error().Err(err).Int64("user_id", p.UserID).Msg("Failed to build monthly summary")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	categoryItems := make([]StatsCategoryItem, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		categoryItems = append(categoryItems, StatsCategoryItem{
			CategorySummary: c,
			CategoryStyle:   getCategoryStyle(c.Category),
		})
	}

	workoutItems := make([]WorkoutItem, 0, len(summary.Exercises))
	for _, e := range summary.Exercises {
		workoutItems = append(workoutItems, WorkoutItem{
			Exercise:      e,
			Time:          e.CreatedAt.Format("Jan 02, 15:04"),
			Volume:        e.TotalVolume(),
			CategoryStyle: getCategoryStyle(e.Category),
		})
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	prevDate := first.AddDate(0, -1, 0)
	nextDate := first.AddDate(0, 1, 0)

	h.render(w, r, "stats.html", StatsViewModel{
		Year:           year,
		Month:          month,
		MonthName:      time.Month(month).String(),
		Volume:         summary.Volume,
		Count:          summary.Count,
		Categories:     categoryItems,
		Workouts:       workoutItems,
		PrevYear:       prevDate.Year(),
		PrevMonth:      int(prevDate.Month()),
		NextYear:       nextDate.Year(),
		NextMonth:      int(nextDate.Month()),
		IsCurrentMonth: year == now.Year() && month == int(now.Month()),
	})
}
