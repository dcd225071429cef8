package domain

import (
	"errors"
	"fmt"
	"time"
)

// WorkoutType is the kind of activity a workout records.
type WorkoutType string

const (
	TypeRunning  WorkoutType = "running"
	TypeCycling  WorkoutType = "cycling"
	TypeSwimming WorkoutType = "swimming"
	TypeWalking  WorkoutType = "walking"
	TypeGym      WorkoutType = "gym"
	TypeYoga     WorkoutType = "yoga"
	TypePilates  WorkoutType = "pilates"
	TypeHIIT     WorkoutType = "hiit"
	TypeCardio   WorkoutType = "cardio"
	TypeStrength WorkoutType = "strength"
	TypeSports   WorkoutType = "sports"
	TypeOther    WorkoutType = "other"
)

var workoutTypes = map[WorkoutType]struct{}{
	TypeRunning: {}, TypeCycling: {}, TypeSwimming: {}, TypeWalking: {},
	TypeGym: {}, TypeYoga: {}, TypePilates: {}, TypeHIIT: {},
	TypeCardio: {}, TypeStrength: {}, TypeSports: {}, TypeOther: {},
}

// Valid reports whether t is one of the known workout types.
func (t WorkoutType) Valid() bool {
	_, ok := workoutTypes[t]
	return ok
}

// Intensity is the perceived effort of a workout.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Valid reports whether i is a known intensity.
func (i Intensity) Valid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	}
	return false
}

// WorkoutStatus represents the lifecycle state of a workout.
type WorkoutStatus string

const (
	StatusPlanned    WorkoutStatus = "planned"
	StatusInProgress WorkoutStatus = "in_progress"
	StatusCompleted  WorkoutStatus = "completed"
	StatusSkipped    WorkoutStatus = "skipped"
)

// Valid reports whether s is a known status.
func (s WorkoutStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrWorkoutNotFound = errors.New("workout not found")

// TransitionError is returned when a lifecycle action is not allowed from the
// workout's current status. It unwraps to ErrInvalidTransition.
type TransitionError struct {
	Action string
	From   WorkoutStatus
	msg    string
}

func (e *TransitionError) Error() string { return e.msg }

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Workout is the core aggregate root. OwnerID never changes after creation.
type Workout struct {
	ID             string
	OwnerID        string
	Type           WorkoutType
	Title          string
	Description    *string
	Duration       *int
	CaloriesBurned *float64
	Distance       *float64
	Intensity      Intensity
	Status         WorkoutStatus
	Notes          *string
	WorkoutDate    time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplyDefaults fills the enum fields left empty by the client.
func (w *Workout) ApplyDefaults() {
	if w.Type == "" {
		w.Type = TypeOther
	}
	if w.Intensity == "" {
		w.Intensity = IntensityMedium
	}
	if w.Status == "" {
		w.Status = StatusPlanned
	}
}

// DurationDisplay renders the duration as "1h 5m", "45m" or "N/A".
func (w *Workout) DurationDisplay() string {
	if w.Duration == nil || *w.Duration == 0 {
		return "N/A"
	}
	hours := *w.Duration / 60
	minutes := *w.Duration % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// Start moves the workout to in_progress. started_at is only set the first time.
func (w *Workout) Start(now time.Time) error {
	if w.Status == StatusCompleted {
		return &TransitionError{Action: "start", From: w.Status, msg: "Cannot start a completed workout"}
	}
	w.Status = StatusInProgress
	if w.StartedAt == nil {
		w.StartedAt = &now
	}
	return nil
}

// CompletionInput carries the optional metrics reported when completing a workout.
type CompletionInput struct {
	Duration       *int
	CaloriesBurned *float64
	Distance       *float64
}

// Complete moves the workout to completed. Metrics in the input overwrite the
// stored values only when non-zero after rounding; zero keeps what was stored.
func (w *Workout) Complete(now time.Time, in CompletionInput) error {
	if w.Status == StatusCompleted {
		return &TransitionError{Action: "complete", From: w.Status, msg: "Workout is already completed"}
	}
	w.Status = StatusCompleted
	if w.CompletedAt == nil {
		w.CompletedAt = &now
	}
	if in.Duration != nil && *in.Duration != 0 {
		d := *in.Duration
		w.Duration = &d
	}
	if c, ok := completionDecimal(in.CaloriesBurned); ok {
		w.CaloriesBurned = &c
	}
	if d, ok := completionDecimal(in.Distance); ok {
		w.Distance = &d
	}
	return nil
}

// completionDecimal rounds v to the stored precision. A value that rounds to
// zero counts as absent.
func completionDecimal(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	r := RoundDecimal(*v)
	return r, r != 0
}

// Skip marks the workout as skipped.
func (w *Workout) Skip() error {
	if w.Status == StatusCompleted {
		return &TransitionError{Action: "skip", From: w.Status, msg: "Cannot skip a completed workout"}
	}
	w.Status = StatusSkipped
	return nil
}

// BackfillTimestamps sets started_at / completed_at the first time a plain
// update moves the workout into in_progress / completed.
func (w *Workout) BackfillTimestamps(now time.Time) {
	if w.Status == StatusInProgress && w.StartedAt == nil {
		w.StartedAt = &now
	}
	if w.Status == StatusCompleted && w.CompletedAt == nil {
		w.CompletedAt = &now
	}
}
