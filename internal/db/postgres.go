package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// The two UNIQUE constraints on appointments are load-bearing: they are the
// backstop that keeps two concurrent bookings from both passing the conflict
// checks and both inserting. Their names are matched in the repository.
const schema = `
CREATE TABLE IF NOT EXISTS clinics (
	name    text PRIMARY KEY,
	address text NOT NULL
);

CREATE TABLE IF NOT EXISTS doctors (
	nif       text PRIMARY KEY CHECK (nif ~ '^[0-9]{9}$'),
	name      text NOT NULL,
	specialty text NOT NULL
);

CREATE TABLE IF NOT EXISTS affiliations (
	doctor_nif  text NOT NULL REFERENCES doctors (nif),
	clinic_name text NOT NULL REFERENCES clinics (name),
	weekday     int  NOT NULL CHECK (weekday BETWEEN 0 AND 6),
	PRIMARY KEY (doctor_nif, clinic_name, weekday)
);

CREATE TABLE IF NOT EXISTS patients (
	ssn        text PRIMARY KEY CHECK (ssn ~ '^[0-9]{11}$'),
	name       text NOT NULL,
	doctor_nif text NOT NULL REFERENCES doctors (nif)
);

CREATE TABLE IF NOT EXISTS appointments (
	id          bigserial PRIMARY KEY,
	patient_ssn text NOT NULL REFERENCES patients (ssn),
	doctor_nif  text NOT NULL REFERENCES doctors (nif),
	clinic_name text NOT NULL REFERENCES clinics (name),
	day         date NOT NULL,
	slot        time NOT NULL,
	CONSTRAINT appointments_doctor_slot_key  UNIQUE (doctor_nif, day, slot),
	CONSTRAINT appointments_patient_slot_key UNIQUE (patient_ssn, day, slot)
);
`

// Migrate applies the schema. Idempotent, runs at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
