package ports

import (
	"context"
	"time"

	"github.com/fitlog/workout-api/internal/core/domain"
)

// WorkoutFilter carries all query parameters for listing workouts.
// OwnerID is always set by the service layer; repositories must never ignore it.
type WorkoutFilter struct {
	OwnerID   string
	StartDate time.Time            // optional: workout_date >= StartDate
	EndDate   time.Time            // optional: workout_date <= EndDate
	Type      domain.WorkoutType   // optional
	Status    domain.WorkoutStatus // optional
	Search    string               // optional: substring of title, description or notes
	Ordering  string               // optional: field name, "-" prefix for descending
}

// WorkoutRepository defines persistence operations for workouts.
type WorkoutRepository interface {
	Create(ctx context.Context, w *domain.Workout) error
	// Get returns domain.ErrWorkoutNotFound when the workout does not exist or
	// belongs to another owner.
	Get(ctx context.Context, ownerID, id string) (*domain.Workout, error)
	List(ctx context.Context, filter WorkoutFilter) ([]*domain.Workout, error)
	// Update writes every mutable column of w in a single statement.
	Update(ctx context.Context, w *domain.Workout) error
	Delete(ctx context.Context, ownerID, id string) error
	// Summarize aggregates the workouts matching filter. Search and Ordering are ignored.
	Summarize(ctx context.Context, filter WorkoutFilter) (*domain.Summary, error)
}
