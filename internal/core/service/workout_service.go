package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fitlog/workout-api/internal/core/domain"
	"github.com/fitlog/workout-api/internal/core/ports"
)

type WorkoutService struct {
	repo     ports.WorkoutRepository
	recorder ports.EventRecorder
	logger   zerolog.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewWorkoutService returns a WorkoutService. loc decides what "today" means;
// nil means UTC.
func NewWorkoutService(repo ports.WorkoutRepository, recorder ports.EventRecorder, loc *time.Location, logger zerolog.Logger) *WorkoutService {
	if loc == nil {
		loc = time.UTC
	}
	return &WorkoutService{repo: repo, recorder: recorder, logger: logger, loc: loc, now: time.Now}
}

func (s *WorkoutService) today() time.Time {
	return domain.Date(s.now(), s.loc)
}

// Create stores a new workout owned by the caller.
func (s *WorkoutService) Create(ctx context.Context, caller domain.Caller, in ports.CreateWorkoutInput) (*domain.Workout, error) {
	now := s.now().UTC()
	w := &domain.Workout{
		ID:             uuid.NewString(),
		OwnerID:        caller.UserID,
		Type:           in.Type,
		Title:          in.Title,
		Description:    in.Description,
		Duration:       in.Duration,
		CaloriesBurned: roundPtr(in.CaloriesBurned),
		Distance:       roundPtr(in.Distance),
		Intensity:      in.Intensity,
		Status:         in.Status,
		Notes:          in.Notes,
		WorkoutDate:    domain.Date(in.WorkoutDate, time.UTC),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	w.ApplyDefaults()
	if err := w.Validate(s.today()); err != nil {
		return nil, err
	}
	w.BackfillTimestamps(now)

	if err := s.repo.Create(ctx, w); err != nil {
		s.logger.Error().Err(err).Str("owner_id", caller.UserID).Msg("failed to create workout")
		return nil, err
	}

	s.logger.Info().Str("workout_id", w.ID).Str("owner_id", caller.UserID).Msg("workout created")
	s.record(w, domain.EventCreated, now)
	return w, nil
}

func (s *WorkoutService) Get(ctx context.Context, caller domain.Caller, id string) (*domain.Workout, error) {
	return s.repo.Get(ctx, caller.UserID, id)
}

// List returns the caller's workouts matching every supplied filter.
func (s *WorkoutService) List(ctx context.Context, caller domain.Caller, in ports.ListWorkoutsInput) ([]*domain.Workout, error) {
	return s.repo.List(ctx, s.filter(caller, in))
}

// Today narrows List to workouts dated today.
func (s *WorkoutService) Today(ctx context.Context, caller domain.Caller, in ports.ListWorkoutsInput) ([]*domain.Workout, error) {
	today := s.today()
	f := s.filter(caller, in)
	f.StartDate = later(f.StartDate, today)
	f.EndDate = earlier(f.EndDate, today)
	return s.repo.List(ctx, f)
}

// ThisWeek narrows List to workouts from Monday of the current week up to today.
func (s *WorkoutService) ThisWeek(ctx context.Context, caller domain.Caller, in ports.ListWorkoutsInput) ([]*domain.Workout, error) {
	today := s.today()
	f := s.filter(caller, in)
	f.StartDate = later(f.StartDate, domain.StartOfWeek(today))
	f.EndDate = earlier(f.EndDate, today)
	return s.repo.List(ctx, f)
}

// Update applies a direct field update. Unlike the lifecycle actions it never
// rejects a completed workout, but the result must pass validation.
func (s *WorkoutService) Update(ctx context.Context, caller domain.Caller, id string, in ports.UpdateWorkoutInput) (*domain.Workout, error) {
	w, err := s.repo.Get(ctx, caller.UserID, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(w, in)
	if err := w.Validate(s.today()); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	w.BackfillTimestamps(now)
	w.UpdatedAt = now
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}

	s.record(w, domain.EventUpdated, now)
	return w, nil
}

func (s *WorkoutService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	w, err := s.repo.Get(ctx, caller.UserID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, caller.UserID, id); err != nil {
		return err
	}
	s.logger.Info().Str("workout_id", id).Str("owner_id", caller.UserID).Msg("workout deleted")
	s.record(w, domain.EventDeleted, s.now())
	return nil
}

func (s *WorkoutService) Start(ctx context.Context, caller domain.Caller, id string) (*domain.Workout, error) {
	return s.transition(ctx, caller, id, domain.EventStarted, func(w *domain.Workout, now time.Time) error {
		return w.Start(now)
	})
}

func (s *WorkoutService) Complete(ctx context.Context, caller domain.Caller, id string, in domain.CompletionInput) (*domain.Workout, error) {
	return s.transition(ctx, caller, id, domain.EventCompleted, func(w *domain.Workout, now time.Time) error {
		return w.Complete(now, in)
	})
}

func (s *WorkoutService) Skip(ctx context.Context, caller domain.Caller, id string) (*domain.Workout, error) {
	return s.transition(ctx, caller, id, domain.EventSkipped, func(w *domain.Workout, _ time.Time) error {
		return w.Skip()
	})
}

// Summary aggregates the caller's workouts matching the list filters.
// Search and ordering do not affect the totals.
func (s *WorkoutService) Summary(ctx context.Context, caller domain.Caller, in ports.ListWorkoutsInput) (*domain.Summary, error) {
	f := s.filter(caller, in)
	f.Search, f.Ordering = "", ""
	return s.repo.Summarize(ctx, f)
}

func (s *WorkoutService) transition(ctx context.Context, caller domain.Caller, id string, typ domain.EventType, apply func(*domain.Workout, time.Time) error) (*domain.Workout, error) {
	w, err := s.repo.Get(ctx, caller.UserID, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := apply(w, now); err != nil {
		s.logger.Debug().Str("workout_id", id).Str("status", string(w.Status)).Str("event", string(typ)).Msg("transition rejected")
		return nil, err
	}
	w.UpdatedAt = now

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}

	s.logger.Info().Str("workout_id", id).Str("status", string(w.Status)).Msg("workout transitioned")
	s.record(w, typ, now)
	return w, nil
}

func (s *WorkoutService) record(w *domain.Workout, typ domain.EventType, at time.Time) {
	if s.recorder == nil {
		return
	}
	s.recorder.Enqueue(domain.NewWorkoutEvent(w, typ, at))
}

func (s *WorkoutService) filter(caller domain.Caller, in ports.ListWorkoutsInput) ports.WorkoutFilter {
	return ports.WorkoutFilter{
		OwnerID:   caller.UserID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Type:      in.Type,
		Status:    in.Status,
		Search:    in.Search,
		Ordering:  in.Ordering,
	}
}

func applyUpdate(w *domain.Workout, in ports.UpdateWorkoutInput) {
	if in.Type != nil {
		w.Type = *in.Type
	}
	if in.Title != nil {
		w.Title = *in.Title
	}
	if in.Description != nil {
		w.Description = in.Description
	}
	if in.Duration != nil {
		w.Duration = in.Duration
	}
	if in.CaloriesBurned != nil {
		w.CaloriesBurned = roundPtr(in.CaloriesBurned)
	}
	if in.Distance != nil {
		w.Distance = roundPtr(in.Distance)
	}
	if in.Intensity != nil {
		w.Intensity = *in.Intensity
	}
	if in.Status != nil {
		w.Status = *in.Status
	}
	if in.Notes != nil {
		w.Notes = in.Notes
	}
	if in.WorkoutDate != nil {
		w.WorkoutDate = domain.Date(*in.WorkoutDate, time.UTC)
	}
	if in.StartedAt != nil {
		t := in.StartedAt.UTC()
		w.StartedAt = &t
	}
	if in.CompletedAt != nil {
		t := in.CompletedAt.UTC()
		w.CompletedAt = &t
	}
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := domain.RoundDecimal(*v)
	return &r
}

// later returns the later of a and b, treating the zero time as unset.
func later(a, b time.Time) time.Time {
	if a.IsZero() || b.After(a) {
		return b
	}
	return a
}

// earlier returns the earlier of a and b, treating the zero time as unset.
func earlier(a, b time.Time) time.Time {
	if a.IsZero() || b.Before(a) {
		return b
	}
	return a
}
