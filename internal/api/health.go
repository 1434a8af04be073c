package api

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	pgPool  *pgxpool.Pool
	redis   *redis.Client
	env     string
	version string
}

func NewHealthHandler(pgPool *pgxpool.Pool, rdb *redis.Client, env, version string) *HealthHandler {
	return &HealthHandler{
		pgPool:  pgPool,
		redis:   rdb,
		env:     env,
		version: version,
	}
}

type healthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Env          string            `json:"env,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	})
}

// Readiness probes both stores. Postgres down means not ready; Redis down
// only degrades (the cache is best effort).
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	deps := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	status := "ok"
	httpStatus := http.StatusOK

	if err := h.ping(r.Context(), func(ctx context.Context) error {
		return h.pgPool.Ping(ctx)
	}); err != nil {
		deps["postgres"] = "down"
		status = "error"
		httpStatus = http.StatusServiceUnavailable
	}

	if err := h.ping(r.Context(), func(ctx context.Context) error {
		return h.redis.Ping(ctx).Err()
	}); err != nil {
		deps["redis"] = "down"
		if status == "ok" {
			status = "degraded"
		}
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:       status,
		Version:      h.version,
		Env:          h.env,
		Dependencies: deps,
	})
}

func (h *HealthHandler) ping(ctx context.Context, probe func(context.Context) error) error {
	pingCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return probe(pingCtx)
}
