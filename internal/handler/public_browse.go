// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the public browsing API: unauthenticated
// users can browse the hall directory, the event calendar and slot
// availability. Sensitive fields (organizer contacts, logistics payloads)
// are filtered from responses.

package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/repository"
    "github.com/campuskit/hall-booking/internal/service"
)

// PublicHandler aggregates the dependencies needed for unauthenticated
// browsing. It produces sanitized responses suitable for public consumption.
type PublicHandler struct {
    Halls   *repository.HallRepo
    Events  *repository.EventRepo
    Regs    *repository.RegistrationRepo
    Booking *service.BookingService
}

// publicHall represents a hall exposed via the public API.
type publicHall struct {
    ID        uint64   `json:"id"`
    Name      string   `json:"name"`
    Capacity  uint32   `json:"capacity"`
    Location  string   `json:"location"`
    Amenities []string `json:"amenities"`
}

// publicEvent is an event in public listings. Organizer contact details
// and the logistics payload stay private.
type publicEvent struct {
    ID                   uint64 `json:"id"`
    Title                string `json:"title"`
    Department           string `json:"department"`
    Date                 string `json:"date"`
    StartTime            string `json:"start_time"`
    EndTime              string `json:"end_time"`
    HallID               uint64 `json:"hall_id"`
    OrganizerName        string `json:"organizer_name"`
    GuestName            string `json:"guest_name"`
    ExpectedParticipants uint32 `json:"expected_participants"`
    Status               string `json:"status"`
}

func newPublicEvent(e model.Event) publicEvent {
    return publicEvent{
        ID:                   e.ID,
        Title:                e.Title,
        Department:           e.Department,
        Date:                 e.Date,
        StartTime:            e.StartTime,
        EndTime:              e.EndTime,
        HallID:               e.HallID,
        OrganizerName:        e.OrganizerName,
        GuestName:            e.GuestName,
        ExpectedParticipants: e.ExpectedParticipants,
        Status:               e.Status,
    }
}

// GetHalls returns the hall directory. Response JSON contains an "items"
// array of publicHall.
func (h *PublicHandler) GetHalls(c echo.Context) error {
    ctx := c.Request().Context()
    halls, err := h.Halls.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]publicHall, 0, len(halls))
    for _, hall := range halls {
        out = append(out, publicHall{
            ID: hall.ID, Name: hall.Name, Capacity: hall.Capacity,
            Location: hall.Location, Amenities: hall.Amenities,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetHall returns a single hall by id.
func (h *PublicHandler) GetHall(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    hall, err := h.Halls.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, publicHall{
        ID: hall.ID, Name: hall.Name, Capacity: hall.Capacity,
        Location: hall.Location, Amenities: hall.Amenities,
    })
}

// GetEvents lists events filtered by the optional date, hall_id,
// organizer_id and status query parameters. Cancelled events are excluded
// unless their status is requested explicitly.
func (h *PublicHandler) GetEvents(c echo.Context) error {
    ctx := c.Request().Context()
    f := repository.EventFilter{
        Date:   c.QueryParam("date"),
        Status: c.QueryParam("status"),
    }
    if v := c.QueryParam("hall_id"); v != "" {
        id, err := parseUint(v)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall_id"})
        }
        f.HallID = id
    }
    if v := c.QueryParam("organizer_id"); v != "" {
        id, err := parseUint(v)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organizer_id"})
        }
        f.OrganizerID = id
    }
    events, err := h.Events.List(ctx, f)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]publicEvent, 0, len(events))
    for _, e := range events {
        out = append(out, newPublicEvent(e))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetEvent returns a single event with its registration count.
func (h *PublicHandler) GetEvent(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    e, err := h.Events.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    count, err := h.Regs.CountByEvent(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "event":         newPublicEvent(e),
        "registrations": count,
    })
}

// GetAvailability previews whether a slot is free without locking any
// rows. Response: {"available": bool, "conflict": publicEvent?}.
func (h *PublicHandler) GetAvailability(c echo.Context) error {
    ctx := c.Request().Context()
    hallID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    date := c.QueryParam("date")
    start := c.QueryParam("start")
    end := c.QueryParam("end")

    avail, err := h.Booking.CheckAvailability(ctx, hallID, date, start, end)
    if err != nil {
        switch {
        case errors.Is(err, model.ErrInvalidSlot):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot"})
        case errors.Is(err, repository.ErrNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    resp := echo.Map{"available": avail.Available}
    if avail.Conflict != nil {
        resp["conflict"] = newPublicEvent(*avail.Conflict)
    }
    return c.JSON(http.StatusOK, resp)
}
