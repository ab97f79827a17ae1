package delivery

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mailboard/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testRouter(t *testing.T) (*gin.Engine, *string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seenOwner string
	r := gin.New()
	r.Use(AuthMiddleware(usecase.NewAuthUsecase(testSecret)))
	r.GET("/probe", func(c *gin.Context) {
		seenOwner = c.GetString("ownerID")
		c.Status(http.StatusOK)
	})
	return r, &seenOwner
}

func validToken(t *testing.T, owner string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": owner,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareResolvesOwner(t *testing.T) {
	r, seenOwner := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t, "owner-1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner-1", *seenOwner)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing-header", header: ""},
		{name: "not-bearer", header: "Basic abc"},
		{name: "no-token", header: "Bearer"},
		{name: "bad-token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			r, seenOwner := testRouter(t)

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// 401 and the handler behind the middleware never ran.
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, *seenOwner)
		})
	}
}
