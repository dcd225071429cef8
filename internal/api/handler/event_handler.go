package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitlog/workout-api/internal/core/ports"
)

// EventHandler serves the workout audit trail.
type EventHandler struct {
	service ports.EventService
}

// NewEventHandler creates an EventHandler backed by the given service.
func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// History handles GET /workouts/:id/history: the workout events, oldest first.
// Events are recorded asynchronously, so the latest mutation may appear with a short delay.
//
// @Summary      Workout audit trail
// @Tags         workouts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Workout ID"
// @Success      200  {array}   workoutEventResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /workouts/{id}/history [get]
func (h *EventHandler) History(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	events, err := h.service.History(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventList(events))
}
