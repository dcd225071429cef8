package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitlog/workout-api/internal/core/domain"
	"github.com/fitlog/workout-api/internal/core/ports"
)

const dateFormatMessage = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."

// --- Request → Service input ---

func toCreateInput(req createWorkoutRequest) (ports.CreateWorkoutInput, error) {
	date, err := time.Parse(domain.DateLayout, req.WorkoutDate)
	if err != nil {
		return ports.CreateWorkoutInput{}, dateError("workout_date")
	}
	return ports.CreateWorkoutInput{
		Type:           domain.WorkoutType(req.WorkoutType),
		Title:          req.Title,
		Description:    req.Description,
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		Distance:       req.Distance,
		Intensity:      domain.Intensity(req.Intensity),
		Status:         domain.WorkoutStatus(req.Status),
		Notes:          req.Notes,
		WorkoutDate:    date,
	}, nil
}

func toUpdateInput(req updateWorkoutRequest) (ports.UpdateWorkoutInput, error) {
	in := ports.UpdateWorkoutInput{
		Title:          req.Title,
		Description:    req.Description,
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		Distance:       req.Distance,
		Notes:          req.Notes,
		StartedAt:      req.StartedAt,
		CompletedAt:    req.CompletedAt,
	}
	if req.WorkoutType != nil {
		t := domain.WorkoutType(*req.WorkoutType)
		in.Type = &t
	}
	if req.Intensity != nil {
		i := domain.Intensity(*req.Intensity)
		in.Intensity = &i
	}
	if req.Status != nil {
		s := domain.WorkoutStatus(*req.Status)
		in.Status = &s
	}
	if req.WorkoutDate != nil {
		date, err := time.Parse(domain.DateLayout, *req.WorkoutDate)
		if err != nil {
			return ports.UpdateWorkoutInput{}, dateError("workout_date")
		}
		in.WorkoutDate = &date
	}
	return in, nil
}

// listInputFromQuery reads the list filters. Empty parameters impose no constraint.
func listInputFromQuery(c echo.Context) (ports.ListWorkoutsInput, error) {
	verr := &domain.ValidationError{}
	in := ports.ListWorkoutsInput{
		Type:     domain.WorkoutType(strings.TrimSpace(c.QueryParam("workout_type"))),
		Status:   domain.WorkoutStatus(strings.TrimSpace(c.QueryParam("status"))),
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
	}

	if in.Type != "" && !in.Type.Valid() {
		verr.Add("workout_type", invalidChoice(string(in.Type)))
	}
	if in.Status != "" && !in.Status.Valid() {
		verr.Add("status", invalidChoice(string(in.Status)))
	}

	for name, dst := range map[string]*time.Time{"start_date": &in.StartDate, "end_date": &in.EndDate} {
		raw := strings.TrimSpace(c.QueryParam(name))
		if raw == "" {
			continue
		}
		date, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			verr.Add(name, dateFormatMessage)
			continue
		}
		*dst = date
	}

	if err := verr.Err(); err != nil {
		return ports.ListWorkoutsInput{}, err
	}
	return in, nil
}

func invalidChoice(value string) string {
	return fmt.Sprintf("\"%s\" is not a valid choice.", value)
}

func dateError(field string) error {
	verr := &domain.ValidationError{}
	verr.Add(field, dateFormatMessage)
	return verr
}

// --- Domain → Response ---

func toWorkoutResponse(w *domain.Workout, userEmail string) workoutResponse {
	return workoutResponse{
		ID:              w.ID,
		User:            userEmail,
		WorkoutType:     string(w.Type),
		Title:           w.Title,
		Description:     w.Description,
		Duration:        w.Duration,
		DurationDisplay: w.DurationDisplay(),
		CaloriesBurned:  w.CaloriesBurned,
		Distance:        w.Distance,
		Intensity:       string(w.Intensity),
		Status:          string(w.Status),
		Notes:           w.Notes,
		WorkoutDate:     w.WorkoutDate.Format(domain.DateLayout),
		StartedAt:       w.StartedAt,
		CompletedAt:     w.CompletedAt,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

func toWorkoutList(workouts []*domain.Workout, userEmail string) []workoutResponse {
	out := make([]workoutResponse, 0, len(workouts))
	for _, w := range workouts {
		out = append(out, toWorkoutResponse(w, userEmail))
	}
	return out
}

func toSummaryResponse(s *domain.Summary) summaryResponse {
	types := make(map[string]int64, len(s.WorkoutTypes))
	for t, n := range s.WorkoutTypes {
		types[string(t)] = n
	}
	return summaryResponse{
		TotalWorkouts:     s.TotalWorkouts,
		TotalDuration:     s.TotalDuration,
		TotalCalories:     s.TotalCalories,
		TotalDistance:     s.TotalDistance,
		CompletedWorkouts: s.CompletedWorkouts,
		WorkoutTypes:      types,
	}
}

func toEventList(events []domain.WorkoutEvent) []workoutEventResponse {
	out := make([]workoutEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, workoutEventResponse{
			Type:       string(e.Type),
			Status:     string(e.Status),
			OccurredAt: e.OccurredAt,
		})
	}
	return out
}
