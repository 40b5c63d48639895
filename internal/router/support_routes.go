package router

import (
    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/handler"
    "github.com/campuskit/hall-booking/internal/middleware"
    "github.com/campuskit/hall-booking/internal/model"
)

// RegisterSupport wires the support-department dashboards. Every STAFF_*
// role reads the same day schedule; only the canteen may flip the
// refreshments delivery flag.
func RegisterSupport(e *echo.Echo, h *handler.SupportHandler, jwtSecret string) {
    g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

    sched := g.Group("", middleware.RequireRole(model.SupportRoles...))
    sched.GET("/support/schedule", h.Schedule)

    canteen := g.Group("", middleware.RequireRole(model.RoleStaffCanteen))
    canteen.POST("/events/:id/refreshments/delivered", h.MarkRefreshmentsDelivered)
}
