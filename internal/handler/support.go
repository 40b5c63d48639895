package handler

// Support-staff endpoints. Every support department (canteen, security,
// electrical, CS lab, general store) reads the same day schedule; the
// dashboard picks out the logistics fields it cares about. Only the
// canteen flips the refreshments delivery flag.

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/repository"
    "github.com/campuskit/hall-booking/internal/service"
)

// SupportHandler bundles the support dashboard dependencies.
type SupportHandler struct {
    Booking *service.BookingService
    Events  *repository.EventRepo
}

func NewSupportHandler(b *service.BookingService, e *repository.EventRepo) *SupportHandler {
    if b == nil || e == nil {
        panic("nil dependency passed to NewSupportHandler")
    }
    return &SupportHandler{Booking: b, Events: e}
}

// Schedule lists CONFIRMED events for today or tomorrow with their full
// logistics payload. day defaults to today.
func (h *SupportHandler) Schedule(c echo.Context) error {
    day := time.Now().UTC()
    switch c.QueryParam("day") {
    case "", "today":
    case "tomorrow":
        day = day.AddDate(0, 0, 1)
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "day must be today or tomorrow"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    events, err := h.Events.List(ctx, repository.EventFilter{
        Date:   day.Format("2006-01-02"),
        Status: model.EventStatusConfirmed,
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":  day.Format("2006-01-02"),
        "items": eventRespList(events),
    })
}

// MarkRefreshmentsDelivered flips the one-way delivery flag on an event.
// Idempotent; repeating the call changes nothing.
func (h *SupportHandler) MarkRefreshmentsDelivered(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Booking.MarkRefreshmentsDelivered(ctx, id); err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"refreshments_delivered": true})
}
