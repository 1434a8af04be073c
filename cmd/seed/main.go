package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/saudehub/clinic-scheduling/internal/db"
)

var log = zerolog.New(os.Stdout).With().Timestamp().Str("service", "seed").Logger()

var specialties = []string{
	"Cardiologia",
	"Dermatologia",
	"Pediatria",
	"Ortopedia",
	"Neurologia",
	"Oftalmologia",
	"Psiquiatria",
	"Medicina Geral",
}

func main() {
	log.Info().Msg("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal().Msg("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("apply schema")
	}

	gofakeit.Seed(time.Now().UnixNano())

	clinics, err := seedClinics(context.Background(), pool, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("seed clinics")
	}
	doctors, err := seedDoctors(context.Background(), pool, 60)
	if err != nil {
		log.Fatal().Err(err).Msg("seed doctors")
	}
	if err := seedAffiliations(context.Background(), pool, doctors, clinics); err != nil {
		log.Fatal().Err(err).Msg("seed affiliations")
	}
	if err := seedPatients(context.Background(), pool, doctors, 500); err != nil {
		log.Fatal().Err(err).Msg("seed patients")
	}

	log.Info().Msg("seed complete")
}

func seedClinics(ctx context.Context, pool *pgxpool.Pool, count int) ([]string, error) {
	log.Info().Int("count", count).Msg("seeding clinics")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Clínica %c", 'A'+i)
		address := gofakeit.Street() + ", " + gofakeit.City()

		_, err := tx.Exec(ctx, `
			INSERT INTO clinics (name, address)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, name, address)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, tx.Commit(ctx)
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) ([]string, error) {
	log.Info().Int("count", count).Msg("seeding doctors")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	nifs := make([]string, 0, count)
	for i := 0; i < count; i++ {
		nif := gofakeit.Numerify("#########")
		name := "Dr. " + gofakeit.Name()
		spec := specialties[gofakeit.Number(0, len(specialties)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (nif, name, specialty)
			VALUES ($1, $2, $3)
			ON CONFLICT (nif) DO NOTHING
		`, nif, name, spec)
		if err != nil {
			return nil, err
		}
		nifs = append(nifs, nif)
	}

	return nifs, tx.Commit(ctx)
}

// Each doctor gets 2-4 working weekdays spread over the clinics.
func seedAffiliations(ctx context.Context, pool *pgxpool.Pool, doctors, clinics []string) error {
	log.Info().Msg("seeding affiliations")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, nif := range doctors {
		days := gofakeit.Number(2, 4)
		for j := 0; j < days; j++ {
			clinic := clinics[gofakeit.Number(0, len(clinics)-1)]
			weekday := gofakeit.Number(0, 6)

			_, err := tx.Exec(ctx, `
				INSERT INTO affiliations (doctor_nif, clinic_name, weekday)
				VALUES ($1, $2, $3)
				ON CONFLICT DO NOTHING
			`, nif, clinic, weekday)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, doctors []string, count int) error {
	log.Info().Int("count", count).Msg("seeding patients")

	const batchSize = 100

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			ssn := gofakeit.Numerify("###########")
			name := gofakeit.Name()
			homeDoctor := doctors[gofakeit.Number(0, len(doctors)-1)]

			_, err := tx.Exec(ctx, `
				INSERT INTO patients (ssn, name, doctor_nif)
				VALUES ($1, $2, $3)
				ON CONFLICT (ssn) DO NOTHING
			`, ssn, name, homeDoctor)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		log.Info().Int("seeded", end).Int("total", count).Msg("patients progress")
	}

	return nil
}
