package ports

import (
	"context"

	"github.com/fitlog/workout-api/internal/core/domain"
)

// EventRepository persists the workout audit trail.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.WorkoutEvent) error
	// ListByWorkout returns the events of one workout, oldest first.
	ListByWorkout(ctx context.Context, ownerID, workoutID string) ([]domain.WorkoutEvent, error)
}

// EventPublisher forwards workout events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.WorkoutEvent) error
}
