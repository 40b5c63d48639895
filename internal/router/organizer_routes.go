package router

import (
    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/handler"
    "github.com/campuskit/hall-booking/internal/middleware"
    "github.com/campuskit/hall-booking/internal/model"
)

// RegisterOrganizer wires the TEACHER-only booking and exchange routes.
// Every route requires a valid access token carrying the TEACHER role;
// per-event ownership is checked again in the service layer.
func RegisterOrganizer(e *echo.Echo, h *handler.OrganizerHandler, jwtSecret string) {
    g := e.Group("/v1")
    g.Use(middleware.JWTAuth(jwtSecret))

    teacher := g.Group("", middleware.RequireRole(model.RoleTeacher))
    teacher.POST("/events", h.CreateEvent)
    teacher.POST("/events/:id/cancel", h.CancelEvent)
    teacher.POST("/events/:id/complete", h.CompleteEvent)
    teacher.GET("/my/events", h.MyEvents)

    teacher.POST("/exchange-requests", h.CreateExchangeRequest)
    teacher.GET("/exchange-requests/pending", h.PendingExchangeRequests)
    teacher.POST("/exchange-requests/:id/resolve", h.ResolveExchangeRequest)

    // The roster is also visible to the principal; the handler checks
    // ownership for teachers.
    roster := g.Group("", middleware.RequireRole(model.RoleTeacher, model.RolePrincipal))
    roster.GET("/events/:id/registrations", h.Roster)
    roster.GET("/events/:id/registrations/export", h.ExportRoster)
}
