package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitlog/workout-api/internal/api/metrics"
	"github.com/fitlog/workout-api/internal/core/domain"
	"github.com/fitlog/workout-api/internal/core/ports"
)

// WorkoutHandler handles HTTP requests for workout operations.
type WorkoutHandler struct {
	service ports.WorkoutService
}

func NewWorkoutHandler(service ports.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

// List handles GET /workouts.
//
// @Summary      List the caller's workouts
// @Tags         workouts
// @Produce      json
// @Security     BearerAuth
// @Param        start_date    query     string  false  "Inclusive lower bound (YYYY-MM-DD)"
// @Param        end_date      query     string  false  "Inclusive upper bound (YYYY-MM-DD)"
// @Param        workout_type  query     string  false  "Workout type"
// @Param        status        query     string  false  "Workout status"
// @Param        search        query     string  false  "Substring of title, description or notes"
// @Param        ordering      query     string  false  "workout_date, created_at, duration or calories_burned; prefix - for descending"
// @Success      200           {array}   workoutResponse
// @Failure      400           {object}  map[string][]string
// @Failure      401           {object}  errorResponse
// @Router       /workouts [get]
func (h *WorkoutHandler) List(c echo.Context) error {
	return h.list(c, h.service.List)
}

// Today handles GET /workouts/today.
//
// @Summary      List the caller's workouts dated today
// @Tags         workouts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   workoutResponse
// @Failure      401  {object}  errorResponse
// @Router       /workouts/today [get]
func (h *WorkoutHandler) Today(c echo.Context) error {
	return h.list(c, h.service.Today)
}

// ThisWeek handles GET /workouts/this_week.
//
// @Summary      List the caller's workouts since Monday
// @Tags         workouts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   workoutResponse
// @Failure      401  {object}  errorResponse
// @Router       /workouts/this_week [get]
func (h *WorkoutHandler) ThisWeek(c echo.Context) error {
	return h.list(c, h.service.ThisWeek)
}

type listFunc func(ctx context.Context, caller domain.Caller, in ports.ListWorkoutsInput) ([]*domain.Workout, error)

func (h *WorkoutHandler) list(c echo.Context, fetch listFunc) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	in, err := listInputFromQuery(c)
	if err != nil {
		return err
	}

	workouts, err := fetch(c.Request().Context(), caller, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkoutList(workouts, caller.Email))
}

// Summary handles GET /workouts/summary.
//
// @Summary      Aggregate statistics over the caller's workouts
// @Tags         workouts
// @Produce      json
// @Security     BearerAuth
// @Param        start_date    query     string  false  "Inclusive lower bound (YYYY-MM-DD)"
// @Param        end_date      query     string  false  "Inclusive upper bound (YYYY-MM-DD)"
// @Param        workout_type  query     string  false  "Workout type"
// @Param        status        query     string  false  "Workout status"
// @Success      200           {object}  summaryResponse
// @Failure      400           {object}  map[string][]string
// @Failure      401           {object}  errorResponse
// @Router       /workouts/summary [get]
func (h *WorkoutHandler) Summary(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	in, err := listInputFromQuery(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.Request().Context(), caller, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// Create handles POST /workouts.
//
// @Summary      Create a workout
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createWorkoutRequest  true  "Workout"
// @Success      201   {object}  workoutResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorResponse
// @Router       /workouts [post]
func (h *WorkoutHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req createWorkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	in, err := toCreateInput(req)
	if err != nil {
		return err
	}

	w, err := h.service.Create(c.Request().Context(), caller, in)
	if err != nil {
		return err
	}

	metrics.WorkoutsCreatedTotal.WithLabelValues(string(w.Type)).Inc()
	return c.JSON(http.StatusCreated, toWorkoutResponse(w, caller.Email))
}

// Get handles GET /workouts/:id.
//
// @Summary      Get a workout
// @Tags         workouts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Workout ID"
// @Success      200  {object}  workoutResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /workouts/{id} [get]
func (h *WorkoutHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	w, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkoutResponse(w, caller.Email))
}

// Replace handles PUT /workouts/:id. Title and workout_date are required.
//
// @Summary      Replace a workout
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Workout ID"
// @Param        body  body      updateWorkoutRequest  true  "Workout"
// @Success      200   {object}  workoutResponse
// @Failure      400   {object}  map[string][]string
// @Failure      404   {object}  errorResponse
// @Router       /workouts/{id} [put]
func (h *WorkoutHandler) Replace(c echo.Context) error {
	return h.update(c, true)
}

// Patch handles PATCH /workouts/:id. Absent fields are left unchanged.
//
// @Summary      Partially update a workout
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Workout ID"
// @Param        body  body      updateWorkoutRequest  true  "Fields to change"
// @Success      200   {object}  workoutResponse
// @Failure      400   {object}  map[string][]string
// @Failure      404   {object}  errorResponse
// @Router       /workouts/{id} [patch]
func (h *WorkoutHandler) Patch(c echo.Context) error {
	return h.update(c, false)
}

func (h *WorkoutHandler) update(c echo.Context, replace bool) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req updateWorkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	verr := &domain.ValidationError{}
	if replace {
		if req.Title == nil {
			verr.Add("title", "This field is required.")
		}
		if req.WorkoutDate == nil {
			verr.Add("workout_date", "This field is required.")
		}
	}
	if err := c.Validate(&req); err != nil {
		var fields *domain.ValidationError
		if !errors.As(err, &fields) {
			return err
		}
		verr.Merge(fields)
	}
	if err := verr.Err(); err != nil {
		return err
	}

	in, err := toUpdateInput(req)
	if err != nil {
		return err
	}

	w, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkoutResponse(w, caller.Email))
}

// Delete handles DELETE /workouts/:id.
//
// @Summary      Delete a workout
// @Tags         workouts
// @Security     BearerAuth
// @Param        id   path  string  true  "Workout ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /workouts/{id} [delete]
func (h *WorkoutHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Start handles POST /workouts/:id/start.
//
// @Summary      Start a workout
// @Tags         workouts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Workout ID"
// @Success      200  {object}  workoutResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /workouts/{id}/start [post]
func (h *WorkoutHandler) Start(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	w, err := h.service.Start(c.Request().Context(), caller, c.Param("id"))
	return h.transitioned(c, "start", w, caller, err)
}

// Complete handles POST /workouts/:id/complete. Zero values in the body keep
// the stored metric.
//
// @Summary      Complete a workout
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true   "Workout ID"
// @Param        body  body      completeWorkoutRequest  false  "Final metrics"
// @Success      200   {object}  workoutResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /workouts/{id}/complete [post]
func (h *WorkoutHandler) Complete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	// An empty body is allowed and completes without changing metrics.
	var req completeWorkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	w, err := h.service.Complete(c.Request().Context(), caller, c.Param("id"), domain.CompletionInput{
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		Distance:       req.Distance,
	})
	return h.transitioned(c, "complete", w, caller, err)
}

// Skip handles POST /workouts/:id/skip.
//
// @Summary      Skip a workout
// @Tags         workouts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Workout ID"
// @Success      200  {object}  workoutResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /workouts/{id}/skip [post]
func (h *WorkoutHandler) Skip(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	w, err := h.service.Skip(c.Request().Context(), caller, c.Param("id"))
	return h.transitioned(c, "skip", w, caller, err)
}

func (h *WorkoutHandler) transitioned(c echo.Context, action string, w *domain.Workout, caller domain.Caller, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			metrics.WorkoutTransitionsTotal.WithLabelValues(action, "rejected").Inc()
		}
		return err
	}
	metrics.WorkoutTransitionsTotal.WithLabelValues(action, "ok").Inc()
	return c.JSON(http.StatusOK, toWorkoutResponse(w, caller.Email))
}
