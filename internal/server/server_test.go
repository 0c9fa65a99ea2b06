package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"inquirydesk/internal/config"
	"inquirydesk/internal/notify"
	"inquirydesk/internal/services"
	"inquirydesk/internal/storage"
	"inquirydesk/internal/storage/memory"
	"inquirydesk/internal/storage/mocks"
)

// countingSender counts delivery attempts without sending anything
type countingSender struct {
	calls atomic.Int32
}

func (c *countingSender) Send(context.Context, notify.Message) error {
	c.calls.Add(1)
	return nil
}

func testConfig(t *testing.T, environ map[string]string) *config.Config {
	t.Helper()
	cfg, err := config.Parse(environ)
	require.NoError(t, err)
	return cfg
}

func newHandler(t *testing.T, cfg *config.Config, store storage.Store, n *notify.Notifier, log *zap.Logger) http.Handler {
	t.Helper()
	return New(cfg, Services{
		Contact:    services.NewContactService(store, n, log),
		Investment: services.NewInvestmentService(store, n, log),
		Health:     services.NewHealthService(store, cfg.App.Name, cfg.App.Version),
	}, log).Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

var ada = map[string]any{
	"name":    "Ada Lovelace",
	"email":   "ada@example.com",
	"phone":   "+44123",
	"message": "Interested in partnership",
}

func TestContactSubmitWithoutEmailKey(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)
	cfg := testConfig(t, map[string]string{})
	h := newHandler(t, cfg, memory.New(), notify.New(cfg.Email, log), log)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/contact/submit", ada)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["id"])
	assert.NotContains(t, body, "warning")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, 0, logs.FilterMessage("sending notification email").Len())
	assert.Equal(t, 1, logs.FilterMessage("email notification skipped: SENDGRID_API_KEY not set").Len())

	list := decodeBody(t, doJSON(t, h, http.MethodGet, "/api/v1/contact/", nil))
	assert.EqualValues(t, 1, list["count"])
	items := list["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, body["id"], items[0].(map[string]any)["id"])
	assert.Equal(t, "Ada Lovelace", items[0].(map[string]any)["name"])
}

func TestInvestorSubmitWithRejectedEmailKey(t *testing.T) {
	var attempts atomic.Int32
	sg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"The provided authorization grant is invalid, expired, or revoked","field":null,"help":null}]}`))
	}))
	t.Cleanup(sg.Close)

	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)
	cfg := testConfig(t, map[string]string{
		"SENDGRID_API_KEY":  "SG.revoked",
		"SENDGRID_BASE_URL": sg.URL,
		"EMAIL_TIMEOUT":     "2s",
	})
	h := newHandler(t, cfg, memory.New(), notify.New(cfg.Email, log), log)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/investment/", map[string]any{
		"name":              "Grace Hopper",
		"email":             "grace@example.com",
		"phone":             "+1 555 0100",
		"message":           "We would like to discuss the seed round",
		"company":           "Example Capital",
		"investment_amount": 250000,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["warning"])
	assert.Equal(t, int32(1), attempts.Load())

	failures := logs.FilterMessage("email notification failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, notify.CategoryAuthorization, failures[0].ContextMap()["category"])

	list := decodeBody(t, doJSON(t, h, http.MethodGet, "/api/v1/investment/", nil))
	items := list["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "Example Capital", item["company"])
	assert.EqualValues(t, 250000, item["investment_amount"])
}

func TestSubmitReturns500WhenNotPersisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().
		SaveGeneralInquiry(gomock.Any(), gomock.Any()).
		Return(nil, storage.PersistenceFailure("save general inquiry", errors.New("no reachable servers")))

	sender := &countingSender{}
	cfg := testConfig(t, map[string]string{})
	h := newHandler(t, cfg, store, notify.New(cfg.Email, nil, notify.WithSender(sender)), nil)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/contact/submit", ada)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, rec.Body.String(), "no reachable servers")
	assert.Equal(t, int32(0), sender.calls.Load())
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	cfg := testConfig(t, map[string]string{})
	store := memory.New()
	h := newHandler(t, cfg, store, notify.New(cfg.Email, nil), nil)

	tests := []struct {
		name    string
		body    string
		details string
	}{
		{name: "malformed json", body: `{"name":`},
		{name: "bad email", body: `{"name":"Ada","email":"nope","phone":"+44123","message":"hi"}`, details: "body.email"},
		{name: "missing message", body: `{"name":"Ada","email":"ada@example.com","phone":"+44123"}`, details: "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/contact/submit", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			if tt.details != "" {
				assert.Contains(t, body["details"], tt.details)
			}
		})
	}

	list, err := store.ListGeneralInquiries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHealth(t *testing.T) {
	cfg := testConfig(t, map[string]string{"APP_VERSION": "2.0.0"})
	h := newHandler(t, cfg, memory.New(), notify.New(cfg.Email, nil), nil)

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "2.0.0", body["version"])
	assert.Equal(t, storage.BackendMemory, body["storage"])
}

func TestHealthDegraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Backend().Return(storage.BackendSQL).AnyTimes()
	store.EXPECT().Ping(gomock.Any()).Return(context.DeadlineExceeded)

	cfg := testConfig(t, map[string]string{})
	h := newHandler(t, cfg, store, notify.New(cfg.Email, nil), nil)

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", decodeBody(t, rec)["status"])
}

func TestMiddleware(t *testing.T) {
	cfg := testConfig(t, map[string]string{"ALLOWED_HOSTS": "https://springstreet.in"})
	h := newHandler(t, cfg, memory.New(), notify.New(cfg.Email, nil), nil)

	t.Run("security headers", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/health", nil)
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	})

	t.Run("allowed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/contact/submit", nil)
		req.Header.Set("Origin", "https://springstreet.in")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://springstreet.in", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contact/submit", strings.NewReader(`{}`))
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/metrics", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "http_requests_total")
	})
}

func TestHTTPServerUsesConfiguredAddress(t *testing.T) {
	cfg := testConfig(t, map[string]string{"HOST": "127.0.0.1", "PORT": "9090"})
	srv := New(cfg, Services{}, nil).HTTPServer()
	assert.Equal(t, "127.0.0.1:9090", srv.Addr)
	assert.Equal(t, 15*time.Second, srv.ReadTimeout)
}

func TestRequestIDFromClientIsKept(t *testing.T) {
	cfg := testConfig(t, map[string]string{})
	h := newHandler(t, cfg, memory.New(), notify.New(cfg.Email, nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contact/", nil)
	req.Header.Set("X-Request-ID", "site-form-7f3a")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "site-form-7f3a", rec.Header().Get("X-Request-ID"))
}
