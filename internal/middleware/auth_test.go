package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/hall-booking/internal/model"
	"github.com/campuskit/hall-booking/internal/utils"
)

const testSecret = "middleware-test-secret"

func doRequest(t *testing.T, mw []echo.MiddlewareFunc, header string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
			"name":    c.Get("name"),
		})
	}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func bearerFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, 7, role, "Prof. Sarah Smith", 15)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func TestJWTAuth(t *testing.T) {
	auth := []echo.MiddlewareFunc{JWTAuth(testSecret)}

	t.Run("valid token reaches handler with claims in context", func(t *testing.T) {
		rec := doRequest(t, auth, bearerFor(t, model.RoleTeacher))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"TEACHER"`)
		assert.Contains(t, rec.Body.String(), `"name":"Prof. Sarah Smith"`)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(t, auth, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doRequest(t, auth, "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		tok, err := utils.NewAccessToken("another-secret", 7, model.RoleTeacher, "x", 15)
		require.NoError(t, err)
		rec := doRequest(t, auth, "Bearer "+tok.Token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	teacherOnly := []echo.MiddlewareFunc{
		JWTAuth(testSecret),
		RequireRole(model.RoleTeacher, model.RolePrincipal),
	}

	t.Run("allowed role passes", func(t *testing.T) {
		rec := doRequest(t, teacherOnly, bearerFor(t, model.RolePrincipal))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disallowed role gets 403", func(t *testing.T) {
		rec := doRequest(t, teacherOnly, bearerFor(t, model.RoleStudent))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no auth context gets 403", func(t *testing.T) {
		rec := doRequest(t, []echo.MiddlewareFunc{RequireRole(model.RoleTeacher)}, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequestUserID(t *testing.T) {
	e := echo.New()
	ctx := func() echo.Context {
		return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	}

	c := ctx()
	assert.Equal(t, "anon", requestUserID(c))

	c = ctx()
	c.Set("user_id", "7")
	assert.Equal(t, "7", requestUserID(c))

	c = ctx()
	c.Set("user_id", float64(42))
	assert.Equal(t, "42", requestUserID(c))
}
