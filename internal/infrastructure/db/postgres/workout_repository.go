package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitlog/workout-api/internal/core/domain"
	"github.com/fitlog/workout-api/internal/core/ports"
)

const workoutColumns = `id::text, user_id::text, workout_type, title, description, duration,
	calories_burned::float8, distance::float8, intensity, status, notes, workout_date,
	started_at, completed_at, created_at, updated_at`

const defaultOrdering = "workout_date DESC, created_at DESC"

// orderingColumns whitelists the columns a client may sort by.
var orderingColumns = map[string]string{
	"workout_date":    "workout_date",
	"created_at":      "created_at",
	"duration":        "duration",
	"calories_burned": "calories_burned",
}

// WorkoutRepository implements ports.WorkoutRepository on Postgres.
type WorkoutRepository struct {
	pool *pgxpool.Pool
}

func NewWorkoutRepository(pool *pgxpool.Pool) *WorkoutRepository {
	return &WorkoutRepository{pool: pool}
}

func (r *WorkoutRepository) Create(ctx context.Context, w *domain.Workout) error {
	const stmt = `INSERT INTO workouts (id, user_id, workout_type, title, description, duration,
		calories_burned, distance, intensity, status, notes, workout_date, started_at, completed_at,
		created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`

	_, err := r.pool.Exec(ctx, stmt,
		w.ID,
		w.OwnerID,
		string(w.Type),
		w.Title,
		w.Description,
		w.Duration,
		w.CaloriesBurned,
		w.Distance,
		string(w.Intensity),
		string(w.Status),
		w.Notes,
		w.WorkoutDate,
		w.StartedAt,
		w.CompletedAt,
		w.CreatedAt,
		w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	return nil
}

func (r *WorkoutRepository) Get(ctx context.Context, ownerID, id string) (*domain.Workout, error) {
	if !validID(id) || !validID(ownerID) {
		return nil, domain.ErrWorkoutNotFound
	}

	row := r.pool.QueryRow(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id=$1 AND user_id=$2`, id, ownerID)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return w, nil
}

// List returns the owner's workouts matching every set field of f.
func (r *WorkoutRepository) List(ctx context.Context, f ports.WorkoutFilter) ([]*domain.Workout, error) {
	where, args := buildWhere(f, true)
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE ` + where + ` ORDER BY ` + orderBy(f.Ordering)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	workouts := make([]*domain.Workout, 0)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return workouts, nil
}

// Update writes every mutable column. The owner and creation time never change.
func (r *WorkoutRepository) Update(ctx context.Context, w *domain.Workout) error {
	const stmt = `UPDATE workouts SET workout_type=$3, title=$4, description=$5, duration=$6,
		calories_burned=$7, distance=$8, intensity=$9, status=$10, notes=$11, workout_date=$12,
		started_at=$13, completed_at=$14, updated_at=$15
		WHERE id=$1 AND user_id=$2`

	tag, err := r.pool.Exec(ctx, stmt,
		w.ID,
		w.OwnerID,
		string(w.Type),
		w.Title,
		w.Description,
		w.Duration,
		w.CaloriesBurned,
		w.Distance,
		string(w.Intensity),
		string(w.Status),
		w.Notes,
		w.WorkoutDate,
		w.StartedAt,
		w.CompletedAt,
		w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkoutNotFound
	}
	return nil
}

func (r *WorkoutRepository) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) || !validID(ownerID) {
		return domain.ErrWorkoutNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM workouts WHERE id=$1 AND user_id=$2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkoutNotFound
	}
	return nil
}

// Summarize computes the totals and the per-type breakdown in two queries
// over the same predicate. Missing sums collapse to zero.
func (r *WorkoutRepository) Summarize(ctx context.Context, f ports.WorkoutFilter) (*domain.Summary, error) {
	where, args := buildWhere(f, false)

	summary := &domain.Summary{WorkoutTypes: make(map[domain.WorkoutType]int64)}
	totals := `SELECT
			COUNT(*),
			COALESCE(SUM(duration), 0),
			COALESCE(SUM(calories_burned), 0)::float8,
			COALESCE(SUM(distance), 0)::float8,
			COUNT(*) FILTER (WHERE status = 'completed')
		FROM workouts WHERE ` + where

	err := r.pool.QueryRow(ctx, totals, args...).Scan(
		&summary.TotalWorkouts,
		&summary.TotalDuration,
		&summary.TotalCalories,
		&summary.TotalDistance,
		&summary.CompletedWorkouts,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize workouts: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT workout_type, COUNT(*) FROM workouts WHERE `+where+` GROUP BY workout_type`, args...)
	if err != nil {
		return nil, fmt.Errorf("summarize workout types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			typ   string
			count int64
		)
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, fmt.Errorf("scan workout type: %w", err)
		}
		summary.WorkoutTypes[domain.WorkoutType(typ)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summarize workout types: %w", err)
	}
	return summary, nil
}

// buildWhere renders the predicate for f. The owner clause is always present.
func buildWhere(f ports.WorkoutFilter, withSearch bool) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{f.OwnerID}

	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if !f.StartDate.IsZero() {
		add("workout_date >= $%d", f.StartDate)
	}
	if !f.EndDate.IsZero() {
		add("workout_date <= $%d", f.EndDate)
	}
	if f.Type != "" {
		add("workout_type = $%d", string(f.Type))
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if withSearch && strings.TrimSpace(f.Search) != "" {
		args = append(args, "%"+escapeLike(strings.TrimSpace(f.Search))+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR notes ILIKE $%d)", n, n, n))
	}

	return strings.Join(clauses, " AND "), args
}

// orderBy maps a client ordering such as "-duration" to an ORDER BY clause,
// falling back to the default for unknown fields.
func orderBy(ordering string) string {
	field := strings.TrimSpace(ordering)
	dir := "ASC"
	if strings.HasPrefix(field, "-") {
		dir = "DESC"
		field = field[1:]
	}
	col, ok := orderingColumns[field]
	if !ok {
		return defaultOrdering
	}
	return fmt.Sprintf("%s %s NULLS LAST, %s", col, dir, defaultOrdering)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanWorkout(row pgx.Row) (*domain.Workout, error) {
	var w domain.Workout
	var typ, intensity, status string
	err := row.Scan(
		&w.ID,
		&w.OwnerID,
		&typ,
		&w.Title,
		&w.Description,
		&w.Duration,
		&w.CaloriesBurned,
		&w.Distance,
		&intensity,
		&status,
		&w.Notes,
		&w.WorkoutDate,
		&w.StartedAt,
		&w.CompletedAt,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.Type = domain.WorkoutType(typ)
	w.Intensity = domain.Intensity(intensity)
	w.Status = domain.WorkoutStatus(status)
	w.WorkoutDate = w.WorkoutDate.UTC()
	return &w, nil
}
