package handler

// Organizer endpoints: booking, cancellation, completion and the events
// dashboard. The TEACHER role group in the router guards these routes;
// per-event ownership is enforced again in the service layer so a teacher
// can only mutate their own bookings.

import (
    "context"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/repository"
    "github.com/campuskit/hall-booking/internal/service"
)

// OrganizerHandler bundles the services and repositories behind the
// organizer dashboard.
type OrganizerHandler struct {
    Booking  *service.BookingService
    Exchange *service.ExchangeService
    Events   *repository.EventRepo
    Regs     *repository.RegistrationRepo
    Requests *repository.ExchangeRepo
    Users    *repository.UserRepo
}

func NewOrganizerHandler(b *service.BookingService, x *service.ExchangeService, e *repository.EventRepo, r *repository.RegistrationRepo, q *repository.ExchangeRepo, u *repository.UserRepo) *OrganizerHandler {
    if b == nil || x == nil || e == nil || r == nil || q == nil || u == nil {
        panic("nil dependency passed to NewOrganizerHandler")
    }
    return &OrganizerHandler{Booking: b, Exchange: x, Events: e, Regs: r, Requests: q, Users: u}
}

// CreateEvent books a hall slot. The organizer identity always comes from
// the token, never from the body. A slot conflict returns 409 together
// with the occupying event so the client can offer an exchange request.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    var draft model.EventDraft
    if err := c.Bind(&draft); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if draft.Title == "" || draft.HallID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and hall_id required"})
    }
    draft.OrganizerID = uid
    if name := getUserName(c); name != "" {
        draft.OrganizerName = name
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    event, err := h.Booking.Book(ctx, draft)
    if err != nil {
        var conflict *service.ConflictError
        switch {
        case errors.As(err, &conflict):
            return c.JSON(http.StatusConflict, echo.Map{
                "error":    "slot conflict",
                "conflict": newEventResp(conflict.Event),
            })
        case errors.Is(err, model.ErrInvalidSlot):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot"})
        case errors.Is(err, repository.ErrNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
    }
    return c.JSON(http.StatusCreated, newEventResp(event))
}

// CancelEvent soft-cancels one of the caller's events. Idempotent.
func (h *OrganizerHandler) CancelEvent(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Booking.Cancel(ctx, id, uid); err != nil {
        switch {
        case errors.Is(err, repository.ErrNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "not your event"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"status": model.EventStatusCancelled})
}

// CompleteEvent marks one of the caller's CONFIRMED events COMPLETED.
func (h *OrganizerHandler) CompleteEvent(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Booking.MarkCompleted(ctx, id, uid); err != nil {
        switch {
        case errors.Is(err, repository.ErrNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "not your event"})
        case errors.Is(err, repository.ErrEventNotOpen):
            return c.JSON(http.StatusConflict, echo.Map{"error": "event is not confirmed"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"status": model.EventStatusCompleted})
}

// MyEvents returns every event the caller organized, all statuses.
func (h *OrganizerHandler) MyEvents(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    events, err := h.Events.List(ctx, repository.EventFilter{OrganizerID: uid, All: true})
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": eventRespList(events)})
}

// Roster lists the registrations for an event. Restricted to the event's
// organizer or the principal.
func (h *OrganizerHandler) Roster(c echo.Context) error {
    regs, event, ok, err := h.loadRoster(c)
    if !ok {
        return err // response already written
    }
    out := make([]registrationResp, 0, len(regs))
    for _, r := range regs {
        out = append(out, newRegistrationResp(r))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "event": newEventResp(event),
        "items": out,
    })
}

// loadRoster resolves the event, enforces the organizer-or-principal
// rule and loads the registration list. On failure it writes the error
// response itself and reports ok=false so callers just bail.
func (h *OrganizerHandler) loadRoster(c echo.Context) ([]model.Registration, model.Event, bool, error) {
    uid, err := getUserID(c)
    if err != nil {
        return nil, model.Event{}, false, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil {
        return nil, model.Event{}, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    event, err := h.Events.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, model.Event{}, false, c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return nil, model.Event{}, false, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    role, _ := c.Get("role").(string)
    if event.OrganizerID != uid && role != model.RolePrincipal {
        return nil, model.Event{}, false, c.JSON(http.StatusForbidden, echo.Map{"error": "not your event"})
    }
    regs, err := h.Regs.ListByEvent(ctx, id)
    if err != nil {
        return nil, model.Event{}, false, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return regs, event, true, nil
}
