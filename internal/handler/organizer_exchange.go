package handler

// Slot exchange endpoints. A teacher whose preferred slot is taken files a
// request against the occupying event; the target organizer approves or
// rejects it from their dashboard.

import (
    "context"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/repository"
    "github.com/campuskit/hall-booking/internal/service"
)

type exchangeCreateReq struct {
    TargetEventID uint64           `json:"target_event_id"`
    Proposed      model.EventDraft `json:"proposed"`
}

type exchangeResolveReq struct {
    Approved bool `json:"approved"`
}

// CreateExchangeRequest files a PENDING request against the event
// occupying the proposed slot.
func (h *OrganizerHandler) CreateExchangeRequest(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    var req exchangeCreateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.TargetEventID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "target_event_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    requester, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }
    req.Proposed.OrganizerID = requester.ID
    req.Proposed.OrganizerName = requester.Name

    created, err := h.Exchange.Request(ctx, requester, req.TargetEventID, req.Proposed)
    if err != nil {
        switch {
        case errors.Is(err, model.ErrInvalidSlot):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot"})
        case errors.Is(err, repository.ErrNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "target event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create request failed"})
    }
    return c.JSON(http.StatusCreated, newExchangeResp(created))
}

// PendingExchangeRequests lists PENDING requests addressed to the caller.
func (h *OrganizerHandler) PendingExchangeRequests(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    requests, err := h.Requests.PendingForOrganizer(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]exchangeResp, 0, len(requests))
    for _, r := range requests {
        out = append(out, newExchangeResp(r))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ResolveExchangeRequest approves or rejects a pending request. Approval
// swaps the bookings in one transaction; an interim conflict aborts with
// 409 and leaves everything as it was, so the resolver can reject instead.
func (h *OrganizerHandler) ResolveExchangeRequest(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req exchangeResolveReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    res, err := h.Exchange.Resolve(ctx, id, uid, req.Approved)
    if err != nil {
        var conflict *service.ConflictError
        switch {
        case errors.As(err, &conflict):
            return c.JSON(http.StatusConflict, echo.Map{
                "error":    "proposed slot no longer available",
                "conflict": newEventResp(conflict.Event),
            })
        case errors.Is(err, repository.ErrNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "not your request to resolve"})
        case errors.Is(err, repository.ErrAlreadyResolved):
            return c.JSON(http.StatusConflict, echo.Map{"error": "request already resolved"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve failed"})
    }

    resp := echo.Map{"request": newExchangeResp(res.Request)}
    if res.NewEvent != nil {
        resp["new_event"] = newEventResp(*res.NewEvent)
        resp["cancelled_event_id"] = res.Target.ID
    }
    return c.JSON(http.StatusOK, resp)
}
