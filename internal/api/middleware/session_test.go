package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: "patient-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func sessionRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(secret))
	r.GET("/", func(c *gin.Context) {
		token, has := SessionFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"token":       token,
			"has_session": has,
			"user_id":     c.GetString(ContextUserID),
		})
	})
	return r
}

func TestSession(t *testing.T) {
	valid := signToken(t, testSecret, time.Hour)
	expired := signToken(t, testSecret, -time.Hour)
	foreign := signToken(t, "other-secret", time.Hour)

	tests := []struct {
		name        string
		secret      string
		header      string
		query       string
		wantSession bool
		wantUser    string
	}{
		{"no token", testSecret, "", "", false, ""},
		{"valid bearer", testSecret, "Bearer " + valid, "", true, "patient-1"},
		{"valid query token", testSecret, "", valid, true, "patient-1"},
		{"expired token", testSecret, "Bearer " + expired, "", false, ""},
		{"wrong signature", testSecret, "Bearer " + foreign, "", false, ""},
		{"non bearer scheme", testSecret, "Basic abc", "", false, ""},
		{"opaque token without secret", "", "Bearer opaque", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			sessionRouter(tt.secret).ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"has_session":`+boolString(tt.wantSession))
			assert.Contains(t, w.Body.String(), `"user_id":"`+tt.wantUser+`"`)
		})
	}
}

func TestExtractToken_HeaderWinsOverQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?token=from-query", nil)
	req.Header.Set("Authorization", "Bearer from-header")

	assert.Equal(t, "from-header", ExtractToken(req))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
