package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/OmerAlfiel/Shahen-website/api/middleware"
	"github.com/OmerAlfiel/Shahen-website/internal/contacts"
	"github.com/OmerAlfiel/Shahen-website/internal/quote"
	"github.com/OmerAlfiel/Shahen-website/internal/repo"
	"github.com/OmerAlfiel/Shahen-website/pkg/auth"
	"github.com/OmerAlfiel/Shahen-website/pkg/config"
	"github.com/OmerAlfiel/Shahen-website/pkg/db/models"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
	"github.com/OmerAlfiel/Shahen-website/pkg/redis"
)

type stubDatabaseState struct{}

func (stubDatabaseState) Connected() bool { return true }

type denyAllStore struct{}

func (denyAllStore) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (redis.Window, error) {
	return redis.Window{Allowed: false, Count: limit + 1, ResetIn: window}, nil
}

const testAdminSecret = "router-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Env: config.AppEnvProd, Version: "1.0.0"},
		HTTP:      config.HTTPConfig{FrontendURL: "https://shahen.sa", BodyLimitBytes: 1 << 20},
		RateLimit: config.RateLimitConfig{Window: 15 * time.Minute, Max: 100},
		Admin: config.AdminConfig{
			JWTSecret: testAdminSecret,
			JWTIssuer: "shahen-backend",
			TokenTTL:  time.Hour,
		},
	}
}

func newTestContactsService(t *testing.T) contacts.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:router_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Contact{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	svc, err := contacts.NewService(contacts.ServiceParams{
		Repository: contacts.NewRepository(repo.Static{Conn: db}),
		Logger:     logger.Nop(),
	})
	if err != nil {
		t.Fatalf("contacts service: %v", err)
	}
	return svc
}

func newTestRouter(t *testing.T, limiter middleware.RateLimitStore, registry *prometheus.Registry) http.Handler {
	t.Helper()
	return NewRouter(testConfig(), logger.Nop(), stubDatabaseState{}, limiter, quote.NewService(), newTestContactsService(t), registry)
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.MintAdminToken(testConfig().Admin, time.Now(), auth.AdminTokenPayload{Subject: "ops@shahen.sa"})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestRouterHealth(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}
	if csp := resp.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "default-src 'self'") {
		t.Fatalf("expected CSP header, got %q", csp)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "OK" || body["database"] != "connected" {
		t.Fatalf("unexpected health body %v", body)
	}
}

func TestRouterProbes(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
		if resp.Header().Get("X-Shahen-Env") != config.AppEnvProd {
			t.Fatalf("%s: expected env header", path)
		}
	}
}

func TestRouterQuoteEstimateAndMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	router := newTestRouter(t, nil, registry)

	body := `{"deliveryType":"single","pickupLocation":"Riyadh","dropLocation1":"Dammam","truckLabel":"unknown truck","quantity":1,"dateISO":"2026-10-20","timeLabel":"10:00 AM","loadType":"boxes"}`
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/quote/estimate", strings.NewReader(body)))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var env struct {
		Data quote.Estimate `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Estimate != quote.TariffDefault {
		t.Fatalf("expected default tariff, got %d", env.Data.Estimate)
	}

	metricsResp := httptest.NewRecorder()
	router.ServeHTTP(metricsResp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if metricsResp.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", metricsResp.Code)
	}
	exposition, _ := io.ReadAll(metricsResp.Body)
	if !strings.Contains(string(exposition), `quote_estimates_total{tier="standard"} 1`) {
		t.Fatalf("expected quote counter in exposition:\n%s", exposition)
	}
	if !strings.Contains(string(exposition), `route="/api/quote/estimate"`) {
		t.Fatalf("expected http duration labeled by route:\n%s", exposition)
	}
}

func TestRouterContactFlow(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	submit := httptest.NewRecorder()
	router.ServeHTTP(submit, httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"Nora","phone":"0501234567","message":"Need a flatbed next Sunday"}`)))
	if submit.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", submit.Code, submit.Body.String())
	}

	unauthorized := httptest.NewRecorder()
	router.ServeHTTP(unauthorized, httptest.NewRequest(http.MethodGet, "/api/contact", nil))
	if unauthorized.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", unauthorized.Code)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/contact?status=pending", nil)
	listReq.Header.Set("Authorization", "Bearer "+adminToken(t))
	list := httptest.NewRecorder()
	router.ServeHTTP(list, listReq)
	if list.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", list.Code, list.Body.String())
	}

	var env struct {
		Data contacts.Page `json:"data"`
	}
	if err := json.NewDecoder(list.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Total != 1 || len(env.Data.Contacts) != 1 || env.Data.Contacts[0].Name != "Nora" {
		t.Fatalf("unexpected page %+v", env.Data)
	}
}

func TestRouterRateLimitBlocks(t *testing.T) {
	router := newTestRouter(t, denyAllStore{}, nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "error" {
		t.Fatalf("expected error envelope, got %v", body)
	}
}
