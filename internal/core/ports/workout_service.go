package ports

import (
	"context"
	"time"

	"github.com/fitlog/workout-api/internal/core/domain"
)

// CreateWorkoutInput carries the client-supplied fields of a new workout.
// The owner always comes from the caller.
type CreateWorkoutInput struct {
	Type           domain.WorkoutType
	Title          string
	Description    *string
	Duration       *int
	CaloriesBurned *float64
	Distance       *float64
	Intensity      domain.Intensity
	Status         domain.WorkoutStatus
	Notes          *string
	WorkoutDate    time.Time
}

// UpdateWorkoutInput carries a direct field update. Nil fields are left unchanged.
type UpdateWorkoutInput struct {
	Type           *domain.WorkoutType
	Title          *string
	Description    *string
	Duration       *int
	CaloriesBurned *float64
	Distance       *float64
	Intensity      *domain.Intensity
	Status         *domain.WorkoutStatus
	Notes          *string
	WorkoutDate    *time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
}

// ListWorkoutsInput carries the list endpoint query parameters.
type ListWorkoutsInput struct {
	StartDate time.Time
	EndDate   time.Time
	Type      domain.WorkoutType
	Status    domain.WorkoutStatus
	Search    string
	Ordering  string
}

// WorkoutService defines use-case operations for workouts.
type WorkoutService interface {
	Create(ctx context.Context, caller domain.Caller, input CreateWorkoutInput) (*domain.Workout, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*domain.Workout, error)
	List(ctx context.Context, caller domain.Caller, input ListWorkoutsInput) ([]*domain.Workout, error)
	Today(ctx context.Context, caller domain.Caller, input ListWorkoutsInput) ([]*domain.Workout, error)
	ThisWeek(ctx context.Context, caller domain.Caller, input ListWorkoutsInput) ([]*domain.Workout, error)
	Update(ctx context.Context, caller domain.Caller, id string, input UpdateWorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
	Start(ctx context.Context, caller domain.Caller, id string) (*domain.Workout, error)
	Complete(ctx context.Context, caller domain.Caller, id string, input domain.CompletionInput) (*domain.Workout, error)
	Skip(ctx context.Context, caller domain.Caller, id string) (*domain.Workout, error)
	Summary(ctx context.Context, caller domain.Caller, input ListWorkoutsInput) (*domain.Summary, error)
}
