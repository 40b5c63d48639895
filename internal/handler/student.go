package handler

// Student endpoints: event registration and the student dashboard.

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/repository"
    "github.com/campuskit/hall-booking/internal/service"
)

// StudentHandler bundles the registration service and the read-side
// repositories behind the student dashboard.
type StudentHandler struct {
    Registrations *service.RegistrationService
    Events        *repository.EventRepo
    Regs          *repository.RegistrationRepo
    Users         *repository.UserRepo
}

func NewStudentHandler(s *service.RegistrationService, e *repository.EventRepo, r *repository.RegistrationRepo, u *repository.UserRepo) *StudentHandler {
    if s == nil || e == nil || r == nil || u == nil {
        panic("nil dependency passed to NewStudentHandler")
    }
    return &StudentHandler{Registrations: s, Events: e, Regs: r, Users: u}
}

type registrationReq struct {
    RollNo string `json:"roll_no"`
    Phone  string `json:"phone"`
}

// Register signs the caller up for an event. Registering twice is a
// no-op: the existing registration comes back with 200 instead of 201.
func (h *StudentHandler) Register(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    eventID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req registrationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.RollNo = strings.TrimSpace(req.RollNo)
    req.Phone = strings.TrimSpace(req.Phone)
    if req.RollNo == "" || req.Phone == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "roll_no and phone required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    student, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }

    reg, created, err := h.Registrations.Register(ctx, eventID, student, req.RollNo, req.Phone)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        case errors.Is(err, repository.ErrEventNotOpen):
            return c.JSON(http.StatusConflict, echo.Map{"error": "event is not open for registration"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
    }
    status := http.StatusOK
    if created {
        status = http.StatusCreated
    }
    return c.JSON(status, newRegistrationResp(reg))
}

// MyRegistrations returns the caller's registrations together with the
// event each one belongs to.
func (h *StudentHandler) MyRegistrations(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    regs, err := h.Regs.ListByStudent(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    type item struct {
        Registration registrationResp `json:"registration"`
        Event        *publicEvent     `json:"event,omitempty"`
    }
    out := make([]item, 0, len(regs))
    for _, r := range regs {
        it := item{Registration: newRegistrationResp(r)}
        if e, err := h.Events.GetByID(ctx, r.EventID); err == nil {
            pe := newPublicEvent(e)
            it.Event = &pe
        }
        out = append(out, it)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// UpcomingEvents lists CONFIRMED events from today onward.
func (h *StudentHandler) UpcomingEvents(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    today := time.Now().UTC().Format("2006-01-02")
    events, err := h.Events.List(ctx, repository.EventFilter{
        Status:   model.EventStatusConfirmed,
        FromDate: today,
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]publicEvent, 0, len(events))
    for _, e := range events {
        out = append(out, newPublicEvent(e))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}
