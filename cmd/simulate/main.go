package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/saudehub/clinic-scheduling/internal/db"
	"github.com/saudehub/clinic-scheduling/internal/schedule"
)

// simulate fires N concurrent booking requests for the same doctor and slot,
// each on behalf of a different patient. Exactly one must succeed; the rest
// must come back as conflicts. Anything else is a correctness failure.

var log = zerolog.New(os.Stdout).With().Timestamp().Str("service", "simulate").Logger()

type target struct {
	Clinic   string
	Doctor   string
	Patients []string
	Date     string
	Time     string
}

func main() {
	log.Info().Msg("simulator starting")

	baseURL := getenv("API_BASE_URL", "http://localhost:8080")
	workers := getenvInt("WORKERS", 20)

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal().Msg("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tgt, err := pickTarget(ctx, dsn, workers)
	if err != nil {
		log.Fatal().Err(err).Msg("pick target")
	}
	log.Info().
		Str("clinic", tgt.Clinic).
		Str("doctor", tgt.Doctor).
		Str("date", tgt.Date).
		Str("time", tgt.Time).
		Int("workers", workers).
		Msg("hammering one slot")

	var success, conflict, failure int64
	client := &http.Client{Timeout: 10 * time.Second}
	endpoint := fmt.Sprintf("%s/clinics/%s/appointments", baseURL, url.PathEscape(tgt.Clinic))

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(patient string) {
			defer wg.Done()

			body, _ := json.Marshal(map[string]string{
				"patient": patient,
				"doctor":  tgt.Doctor,
				"date":    tgt.Date,
				"time":    tgt.Time,
			})
			resp, err := client.Post(endpoint, "application/json", bytes.NewReader(body))
			if err != nil {
				atomic.AddInt64(&failure, 1)
				return
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusOK:
				atomic.AddInt64(&success, 1)
			case http.StatusBadRequest:
				atomic.AddInt64(&conflict, 1)
			default:
				atomic.AddInt64(&failure, 1)
			}
		}(tgt.Patients[i%len(tgt.Patients)])
	}
	wg.Wait()

	log.Info().
		Int64("success", success).
		Int64("conflict", conflict).
		Int64("failure", failure).
		Dur("elapsed", time.Since(start)).
		Msg("simulation finished")

	if success != 1 {
		log.Error().Int64("success", success).Msg("expected exactly one booking to win the slot")
		os.Exit(1)
	}
}

// pickTarget loads a doctor with at least one affiliation plus enough
// patients who are not that doctor's own, and computes the doctor's next
// working day at 09:00.
func pickTarget(ctx context.Context, dsn string, patients int) (*target, error) {
	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	var tgt target
	var weekday int
	err = pool.QueryRow(ctx, `
		SELECT a.clinic_name, a.doctor_nif, a.weekday
		FROM affiliations a
		LIMIT 1
	`).Scan(&tgt.Clinic, &tgt.Doctor, &weekday)
	if err != nil {
		return nil, fmt.Errorf("load affiliation: %w", err)
	}

	rows, err := pool.Query(ctx, `
		SELECT ssn FROM patients
		WHERE doctor_nif <> $1
		LIMIT $2
	`, tgt.Doctor, patients)
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ssn string
		if err := rows.Scan(&ssn); err != nil {
			return nil, err
		}
		tgt.Patients = append(tgt.Patients, ssn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(tgt.Patients) == 0 {
		return nil, fmt.Errorf("no patients available, run cmd/seed first")
	}

	// Next occurrence of the doctor's weekday, at least a week out so the
	// 09:00 slot is always in the future.
	day := time.Now().UTC().AddDate(0, 0, 7)
	for schedule.ISOWeekday(day) != weekday {
		day = day.AddDate(0, 0, 1)
	}
	tgt.Date = day.Format("2006-01-02")
	tgt.Time = "09:00:00"

	return &tgt, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
