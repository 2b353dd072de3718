package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, role models.Role, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "u1",
		Mobile: "9876543210",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthEngine(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(testSecret, nil)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID, "mobile": claims.Mobile})
	})
	r.GET("/protected", handlers...)
	return r
}

func call(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthAcceptsValidToken(t *testing.T) {
	w := call(newAuthEngine(), "Bearer "+signToken(t, testSecret, models.RoleConsumer, time.Now().Add(time.Hour)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"u1","mobile":"9876543210"}`, w.Body.String())
}

func TestAuthRejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", "Unauthorized - No token provided"},
		{"wrong scheme", "Basic abc", "Unauthorized - No token provided"},
		{"empty bearer", "Bearer ", "Unauthorized - No token provided"},
		{"expired", "Bearer " + signToken(t, testSecret, models.RoleAdmin, time.Now().Add(-time.Hour)), "Token expired"},
		{"bad signature", "Bearer " + signToken(t, "other", models.RoleAdmin, time.Now().Add(time.Hour)), "Invalid token"},
		{"garbage", "Bearer not.a.jwt", "Invalid token"},
	}

	r := newAuthEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.want, errorMessage(t, w))
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := newAuthEngine(RequireRole(models.RoleSuperAdmin, models.RoleAdmin))

	admin := call(r, "Bearer "+signToken(t, testSecret, models.RoleAdmin, time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusOK, admin.Code)

	consumer := call(r, "Bearer "+signToken(t, testSecret, models.RoleConsumer, time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusForbidden, consumer.Code)
}

func TestParseTokenRejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "u1"})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseToken(signed, []byte(testSecret))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}
