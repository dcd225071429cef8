package domain

import "time"

// EventType names the mutation a WorkoutEvent records.
type EventType string

const (
	EventCreated   EventType = "created"
	EventUpdated   EventType = "updated"
	EventStarted   EventType = "started"
	EventCompleted EventType = "completed"
	EventSkipped   EventType = "skipped"
	EventDeleted   EventType = "deleted"
)

// WorkoutEvent is an append-only audit record of a workout mutation.
type WorkoutEvent struct {
	WorkoutID  string        `json:"workout_id"`
	OwnerID    string        `json:"owner_id"`
	Type       EventType     `json:"type"`
	Status     WorkoutStatus `json:"status"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewWorkoutEvent snapshots w for the given event type.
func NewWorkoutEvent(w *Workout, typ EventType, at time.Time) WorkoutEvent {
	return WorkoutEvent{
		WorkoutID:  w.ID,
		OwnerID:    w.OwnerID,
		Type:       typ,
		Status:     w.Status,
		OccurredAt: at.UTC(),
	}
}
