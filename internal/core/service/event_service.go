package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fitlog/workout-api/internal/core/domain"
	"github.com/fitlog/workout-api/internal/core/ports"
)

type eventService struct {
	workoutRepo ports.WorkoutRepository
	eventRepo   ports.EventRepository
	publisher   ports.EventPublisher
	log         zerolog.Logger
}

// NewEventService returns an EventService implementation. publisher may be nil.
func NewEventService(
	workoutRepo ports.WorkoutRepository,
	eventRepo ports.EventRepository,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{
		workoutRepo: workoutRepo,
		eventRepo:   eventRepo,
		publisher:   publisher,
		log:         log,
	}
}

// Process persists a single workout event to the audit trail and forwards it
// to the publisher when one is configured.
func (s *eventService) Process(ctx context.Context, ev domain.WorkoutEvent) error {
	if err := s.eventRepo.InsertEvent(ctx, &ev); err != nil {
		return fmt.Errorf("process event: insert: %w", err)
	}

	// Publishing is best effort; the audit trail is the source of truth.
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.log.Warn().Err(err).Str("workout_id", ev.WorkoutID).Msg("failed to publish event")
		}
	}

	s.log.Debug().
		Str("workout_id", ev.WorkoutID).
		Str("type", string(ev.Type)).
		Str("status", string(ev.Status)).
		Msg("event processed")

	return nil
}

// History returns the audit trail of a workout owned by caller. Deleted
// workouts have no history to show.
func (s *eventService) History(ctx context.Context, caller domain.Caller, workoutID string) ([]domain.WorkoutEvent, error) {
	if _, err := s.workoutRepo.Get(ctx, caller.UserID, workoutID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByWorkout(ctx, caller.UserID, workoutID)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	if events == nil {
		events = []domain.WorkoutEvent{}
	}
	return events, nil
}
