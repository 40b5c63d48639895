package handler

// Principal endpoints: the administrative purge and the full event
// history, cancelled bookings included.

import (
    "context"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/repository"
    "github.com/campuskit/hall-booking/internal/service"
)

// PrincipalHandler bundles the administrative operations.
type PrincipalHandler struct {
    Booking *service.BookingService
    Events  *repository.EventRepo
}

func NewPrincipalHandler(b *service.BookingService, e *repository.EventRepo) *PrincipalHandler {
    if b == nil || e == nil {
        panic("nil dependency passed to NewPrincipalHandler")
    }
    return &PrincipalHandler{Booking: b, Events: e}
}

// DeleteEvent physically removes an event with its registrations. Pending
// exchange requests against it are auto-rejected in the same transaction.
func (h *PrincipalHandler) DeleteEvent(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Booking.Purge(ctx, id); err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// AllEvents returns the full event history, including cancelled bookings.
func (h *PrincipalHandler) AllEvents(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    events, err := h.Events.List(ctx, repository.EventFilter{All: true})
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": eventRespList(events)})
}
