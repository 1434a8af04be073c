package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type RouterConfig struct {
	Service SchedulingService
	PgPool  *pgxpool.Pool
	Redis   *redis.Client
	Logger  zerolog.Logger
	Env     string
	Version string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Get("/clinics", listClinicsHandler(cfg.Service))
	r.Route("/clinics/{clinic}", func(r chi.Router) {
		r.Get("/specialties", listSpecialtiesHandler(cfg.Service))
		r.Get("/specialties/{specialty}/doctors", doctorAvailabilityHandler(cfg.Service))
		r.Post("/appointments", bookHandler(cfg.Service))
		r.Post("/appointments/cancel", cancelHandler(cfg.Service))
	})

	return r
}
