package workout

import (
	"fmt"
	"sort"
	"time"

	"workout-tracker/internal/models"
)

// CategorySummary aggregates one category within a month.
type CategorySummary struct {
	Category   string
	Count      int
	Volume     float64
	Percentage float64
}

// MonthlySummary aggregates the user's exercises created in one UTC calendar month.
type MonthlySummary struct {
	Year       int
	Month      time.Month
	Count      int
	Volume     float64
	Categories []CategorySummary
	Exercises  []models.Exercise
}

// MonthlySummary returns per-category counts and total volume for the given month.
// Categories are ordered by volume, largest first.
func (m *Manager) MonthlySummary(year int, month time.Month) (*MonthlySummary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	exercises, err := m.store.ListExercisesBetween(m.userID, from, to)
	record("summary", err)
	if err != nil {
		return nil, fmt.Errorf("list exercises for %s: %w", from.Format("2006-01"), err)
	}

	summary := &MonthlySummary{
		Year:      from.Year(),
		Month:     from.Month(),
		Count:     len(exercises),
		Exercises: exercises,
	}

	byCategory := make(map[string]*CategorySummary)
	for _, e := range exercises {
		c, ok := byCategory[e.Category]
		if !ok {
			c = &CategorySummary{Category: e.Category}
			byCategory[e.Category] = c
		}
		volume := e.TotalVolume()
		c.Count++
		c.Volume += volume
		summary.Volume += volume
	}

	summary.Categories = make([]CategorySummary, 0, len(byCategory))
	for _, c := range byCategory {
		if summary.Volume > 0 {
			c.Percentage = (c.Volume / summary.Volume) * 100
		}
		summary.Categories = append(summary.Categories, *c)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		a, b := summary.Categories[i], summary.Categories[j]
		if a.Volume != b.Volume {
			return a.Volume > b.Volume
		}
		return a.Category < b.Category
	})

	return summary, nil
}
