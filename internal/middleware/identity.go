package middleware

// identity.go holds helpers shared across middleware files. The rate
// limiter keys buckets per user where possible; requestUserID pulls the
// identity JWTAuth stored in context, falling back to "anon" for public
// traffic.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// requestUserID extracts the authenticated user's identifier from context.
// The JWT subject claim round-trips through encoding/json, so it may
// arrive as a string or a float64 depending on how the context was
// populated.
func requestUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return fmt.Sprintf("%.0f", v)
    }
    return "anon"
}
