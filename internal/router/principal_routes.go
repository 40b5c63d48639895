package router

import (
    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/handler"
    "github.com/campuskit/hall-booking/internal/middleware"
    "github.com/campuskit/hall-booking/internal/model"
)

// RegisterPrincipal wires the administrative routes: the physical purge
// and the full event history.
func RegisterPrincipal(e *echo.Echo, h *handler.PrincipalHandler, jwtSecret string) {
    g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RolePrincipal))
    g.DELETE("/events/:id", h.DeleteEvent)
    g.GET("/events/all", h.AllEvents)
}
