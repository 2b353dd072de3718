package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/server/handlers"
	"github.com/mamadbah2/dairy/internal/server/middleware"
	"github.com/mamadbah2/dairy/internal/service/reporting"
)

const secret = "router-secret"

type stubReports struct{}

func (stubReports) DashboardSummary(context.Context, reporting.DashboardRequest) (*models.DashboardSummary, error) {
	return &models.DashboardSummary{}, nil
}

func (stubReports) BuyerPurchases(context.Context, reporting.ExportRequest) (*reporting.BuyerExport, error) {
	return &reporting.BuyerExport{Year: 2024, Month: time.March}, nil
}

func (stubReports) ProfitLoss(context.Context, string) (*models.ProfitLossReport, error) {
	return &models.ProfitLossReport{Period: "monthly"}, nil
}

type stubNotifier struct{}

func (stubNotifier) SendOutbound(context.Context, models.OutboundMessageRequest) error { return nil }
func (stubNotifier) SendDigest(context.Context, *models.DashboardSummary) error        { return nil }

func testConfig() config.Config {
	var cfg config.Config
	cfg.Auth.JWTSecret = secret
	cfg.Server.MetricsEnabled = true
	cfg.Server.AllowedOrigins = []string{"*"}
	return cfg
}

func bearer(t *testing.T, role models.Role) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		UserID: "u1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func serve(r http.Handler, method, target, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newEngine(withNotifications bool) http.Handler {
	h := Handlers{Reports: handlers.NewReportHandler(stubReports{}, nil)}
	if withNotifications {
		h.Notifications = handlers.NewNotificationHandler(stubNotifier{}, nil)
	}
	return New(testConfig(), h, nil)
}

func TestHealthAndMetrics(t *testing.T) {
	r := newEngine(false)

	health := serve(r, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.JSONEq(t, `{"status":"ok"}`, health.Body.String())
	assert.NotEmpty(t, health.Header().Get(middleware.RequestIDHeader))

	m := serve(r, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, m.Code)
}

func TestReportsRequireToken(t *testing.T) {
	r := newEngine(false)

	for _, path := range []string{
		"/reports/dashboard-summary",
		"/reports/buyer-consumption/export",
		"/reports/buyer-consumption/export.xlsx",
		"/reports/profit-loss",
	} {
		w := serve(r, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		w = serve(r, http.MethodGet, path, bearer(t, models.RoleConsumer), "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestNotificationsRoute(t *testing.T) {
	body := `{"to":"9876543210","message":"hi"}`

	disabled := serve(newEngine(false), http.MethodPost, "/notifications/outbound", bearer(t, models.RoleAdmin), body)
	assert.Equal(t, http.StatusNotFound, disabled.Code)

	r := newEngine(true)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodPost, "/notifications/outbound", bearer(t, models.RoleConsumer), body).Code)
	assert.Equal(t, http.StatusAccepted, serve(r, http.MethodPost, "/notifications/outbound", bearer(t, models.RoleSuperAdmin), body).Code)
}
