package domain

import (
	"math"
	"sort"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ValidationError collects field-level messages. The zero value is ready to use.
type ValidationError struct {
	Fields map[string][]string
}

// Add records msg against field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Merge copies every message of other into e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		for _, m := range msgs {
			e.Add(field, m)
		}
	}
}

// Empty reports whether no message was recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Err returns e as an error, or nil when nothing was recorded.
func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Date truncates t to a calendar date in loc, returned as midnight UTC so
// dates compare and persist independently of the server zone.
func Date(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the Monday of the ISO week containing day.
func StartOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// RoundDecimal rounds v to two decimal places, the precision stored for
// calories and distance.
func RoundDecimal(v float64) float64 {
	return math.Round(v*100) / 100
}

// Validate checks the object-level rules of a workout against today's date.
// All violations are reported together.
func (w *Workout) Validate(today time.Time) error {
	verr := &ValidationError{}

	if w.WorkoutDate.After(today) {
		verr.Add("workout_date", "Workout date cannot be in the future.")
	}
	if w.Status == StatusCompleted && (w.Duration == nil || *w.Duration == 0) {
		verr.Add("duration", "Duration is required for completed workouts.")
	}
	if w.Distance != nil && *w.Distance <= 0 {
		verr.Add("distance", "Distance must be greater than 0.")
	}
	if w.CaloriesBurned != nil && *w.CaloriesBurned <= 0 {
		verr.Add("calories_burned", "Calories burned must be greater than 0.")
	}

	return verr.Err()
}
