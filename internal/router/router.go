package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/handler"
    "github.com/campuskit/hall-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware. Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // /refresh rotates the refresh token; /refresh-access only mints a
    // new access token.
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout does not require JWT middleware: it accepts either a
    // refresh_token body or a bearer token and validates them itself.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints: the hall
// directory, the event calendar and the availability preview. The extra
// middleware is applied to these routes only; the response cache must not
// front authenticated endpoints, so it is passed here instead of e.Use.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
    g := e.Group("", mw...)
    g.GET("/v1/halls", p.GetHalls)
    g.GET("/v1/halls/:id", p.GetHall)
    g.GET("/v1/halls/:id/availability", p.GetAvailability)
    g.GET("/v1/events", p.GetEvents)
    g.GET("/v1/events/:id", p.GetEvent)
}
