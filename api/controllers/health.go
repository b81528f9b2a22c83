package controllers

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/OmerAlfiel/Shahen-website/api/responses"
	"github.com/OmerAlfiel/Shahen-website/pkg/config"
	pkgerrors "github.com/OmerAlfiel/Shahen-website/pkg/errors"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
)

// DatabaseState reports whether the lazily opened database is up.
type DatabaseState interface {
	Connected() bool
}

type healthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Database    string `json:"database"`
}

// Health always answers 200 so the process stays routable while the
// database is still coming up.
func Health(cfg *config.Config, db DatabaseState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := "disconnected"
		if db != nil && db.Connected() {
			state = "connected"
		}
		responses.WriteJSON(w, http.StatusOK, healthResponse{
			Status:      "OK",
			Message:     "Shahen Backend API is running",
			Timestamp:   time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			Environment: cfg.App.Env,
			Version:     cfg.App.Version,
			Database:    state,
		})
	}
}

// Pinger is a dependency the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shahen-Env", cfg.App.Env)
		responses.WriteSuccess(w, "live", map[string]string{"status": "live"})
	}
}

// HealthReady pings every named dependency and answers 503 listing the
// ones that failed.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks map[string]Pinger) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shahen-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		var failed []string
		for _, name := range names {
			if err := checks[name].Ping(ctx); err != nil {
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{"dependency": name, "error": err.Error()}), "health.ready.failed")
				}
				failed = append(failed, name)
			}
		}
		if len(failed) > 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "Dependencies unavailable: "+strings.Join(failed, ", ")))
			return
		}
		responses.WriteSuccess(w, "ready", map[string]string{"status": "ready"})
	}
}
