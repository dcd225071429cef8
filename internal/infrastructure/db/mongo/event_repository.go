package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitlog/workout-api/internal/core/domain"
)

const collectionWorkoutEvents = "workout_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionWorkoutEvents)}
}

type eventDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	WorkoutID   string             `bson:"workout_id"`
	OwnerID     string             `bson:"owner_id"`
	Type        string             `bson:"type"`
	Status      string             `bson:"status"`
	OccurredAt  time.Time          `bson:"occurred_at"`
	ProcessedAt time.Time          `bson:"processed_at"`
}

// InsertEvent appends a workout event to the audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.WorkoutEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := eventDocument{
		WorkoutID:   event.WorkoutID,
		OwnerID:     event.OwnerID,
		Type:        string(event.Type),
		Status:      string(event.Status),
		OccurredAt:  event.OccurredAt.UTC(),
		ProcessedAt: time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert workout event: %w", err)
	}
	return nil
}

// ListByWorkout returns the events of one workout ordered by occurrence.
func (r *EventRepository) ListByWorkout(ctx context.Context, ownerID, workoutID string) ([]domain.WorkoutEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner_id": ownerID, "workout_id": workoutID}
	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find workout events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode workout events: %w", err)
	}

	events := make([]domain.WorkoutEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.WorkoutEvent{
			WorkoutID:  d.WorkoutID,
			OwnerID:    d.OwnerID,
			Type:       domain.EventType(d.Type),
			Status:     domain.WorkoutStatus(d.Status),
			OccurredAt: d.OccurredAt.UTC(),
		})
	}
	return events, nil
}

// EnsureIndexes creates the indexes used by ListByWorkout.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "workout_id", Value: 1}, {Key: "occurred_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
