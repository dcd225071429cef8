package ports

import (
	"context"

	"github.com/fitlog/workout-api/internal/core/domain"
)

// EventRecorder accepts workout events for asynchronous processing.
type EventRecorder interface {
	Enqueue(event domain.WorkoutEvent)
}

// EventService processes workout events and serves the audit trail.
type EventService interface {
	Process(ctx context.Context, event domain.WorkoutEvent) error
	History(ctx context.Context, caller domain.Caller, workoutID string) ([]domain.WorkoutEvent, error)
}
