package router

import (
    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/handler"
    "github.com/campuskit/hall-booking/internal/middleware"
    "github.com/campuskit/hall-booking/internal/model"
)

// RegisterStudent wires the STUDENT-only routes: event registration and
// the student dashboard views.
func RegisterStudent(e *echo.Echo, h *handler.StudentHandler, jwtSecret string) {
    g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleStudent))
    g.POST("/events/:id/registrations", h.Register)
    g.GET("/my/registrations", h.MyRegistrations)
    g.GET("/events/upcoming", h.UpcomingEvents)
}
