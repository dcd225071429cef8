package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitlog/workout-api/internal/core/domain"
	"github.com/fitlog/workout-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubEventRepo struct {
	insertErr error
	inserted  []domain.WorkoutEvent
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.WorkoutEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *e)
	return nil
}

func (r *stubEventRepo) ListByWorkout(_ context.Context, ownerID, workoutID string) ([]domain.WorkoutEvent, error) {
	var out []domain.WorkoutEvent
	for _, e := range r.inserted {
		if e.OwnerID == ownerID && e.WorkoutID == workoutID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubPublisher struct {
	err       error
	published []domain.WorkoutEvent
}

func (p *stubPublisher) Publish(_ context.Context, e domain.WorkoutEvent) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, e)
	return nil
}

func newEventSvc(workouts *stubWorkoutRepo, events *stubEventRepo, pub ports.EventPublisher) ports.EventService {
	return NewEventService(workouts, events, pub, zerolog.Nop())
}

func sampleEvent(workoutID string, typ domain.EventType) domain.WorkoutEvent {
	return domain.WorkoutEvent{
		WorkoutID:  workoutID,
		OwnerID:    alice.UserID,
		Type:       typ,
		Status:     domain.StatusPlanned,
		OccurredAt: time.Now().UTC(),
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestEventService_Process_HappyPath(t *testing.T) {
	evRepo := &stubEventRepo{}
	pub := &stubPublisher{}
	svc := newEventSvc(newStubWorkoutRepo(), evRepo, pub)

	if err := svc.Process(context.Background(), sampleEvent("w-1", domain.EventCreated)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(evRepo.inserted) != 1 {
		t.Errorf("expected audit event inserted")
	}
	if len(pub.published) != 1 {
		t.Errorf("expected event published")
	}
}

func TestEventService_Process_NoPublisher(t *testing.T) {
	evRepo := &stubEventRepo{}
	svc := newEventSvc(newStubWorkoutRepo(), evRepo, nil)

	if err := svc.Process(context.Background(), sampleEvent("w-1", domain.EventStarted)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(evRepo.inserted) != 1 {
		t.Errorf("expected audit event inserted")
	}
}

func TestEventService_Process_InsertError(t *testing.T) {
	evRepo := &stubEventRepo{insertErr: errors.New("mongo down")}
	pub := &stubPublisher{}
	svc := newEventSvc(newStubWorkoutRepo(), evRepo, pub)

	if err := svc.Process(context.Background(), sampleEvent("w-1", domain.EventCreated)); err == nil {
		t.Fatalf("expected error")
	}
	if len(pub.published) != 0 {
		t.Errorf("expected nothing published when the audit insert fails")
	}
}

func TestEventService_Process_PublishErrorIsNonFatal(t *testing.T) {
	evRepo := &stubEventRepo{}
	svc := newEventSvc(newStubWorkoutRepo(), evRepo, &stubPublisher{err: errors.New("broker down")})

	if err := svc.Process(context.Background(), sampleEvent("w-1", domain.EventSkipped)); err != nil {
		t.Fatalf("expected publish failure to be swallowed, got: %v", err)
	}
	if len(evRepo.inserted) != 1 {
		t.Errorf("expected audit event inserted")
	}
}

func TestEventService_History(t *testing.T) {
	workouts := newStubWorkoutRepo()
	workouts.byID["w-1"] = &domain.Workout{ID: "w-1", OwnerID: alice.UserID}
	evRepo := &stubEventRepo{}
	svc := newEventSvc(workouts, evRepo, nil)

	for _, typ := range []domain.EventType{domain.EventCreated, domain.EventStarted} {
		if err := svc.Process(context.Background(), sampleEvent("w-1", typ)); err != nil {
			t.Fatalf("process failed: %v", err)
		}
	}

	got, err := svc.History(context.Background(), alice, "w-1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(got) != 2 || got[0].Type != domain.EventCreated || got[1].Type != domain.EventStarted {
		t.Errorf("unexpected history: %+v", got)
	}
}

func TestEventService_History_Empty(t *testing.T) {
	workouts := newStubWorkoutRepo()
	workouts.byID["w-1"] = &domain.Workout{ID: "w-1", OwnerID: alice.UserID}
	svc := newEventSvc(workouts, &stubEventRepo{}, nil)

	got, err := svc.History(context.Background(), alice, "w-1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestEventService_History_OtherOwner(t *testing.T) {
	workouts := newStubWorkoutRepo()
	workouts.byID["w-1"] = &domain.Workout{ID: "w-1", OwnerID: alice.UserID}
	svc := newEventSvc(workouts, &stubEventRepo{}, nil)

	if _, err := svc.History(context.Background(), bob, "w-1"); !errors.Is(err, domain.ErrWorkoutNotFound) {
		t.Fatalf("expected ErrWorkoutNotFound, got %v", err)
	}
}
