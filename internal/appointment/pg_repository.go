package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every query below
// works pooled or inside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type pgStore struct {
	q querier
}

type PgRepository struct {
	pgStore
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pgStore: pgStore{q: pool}, pool: pool}
}

// InTx runs fn against a transaction-scoped store. Any error from fn rolls
// the transaction back; business sentinels pass through unwrapped so callers
// can match them with errors.Is.
func (r *PgRepository) InTx(ctx context.Context, fn func(Store) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(&pgStore{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Scan helpers

func scanClinic(row pgx.Row) (*Clinic, error) {
	var c Clinic
	if err := row.Scan(&c.Name, &c.Address); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClinicNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	if err := row.Scan(&d.NIF, &d.Name, &d.Specialty); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return &d, nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	if err := row.Scan(&p.SSN, &p.Name, &p.DoctorNIF); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Interface methods

func (s *pgStore) GetClinic(ctx context.Context, name string) (*Clinic, error) {
	row := s.q.QueryRow(ctx, `
		SELECT name, address
		FROM clinics
		WHERE name = $1
	`, name)
	return scanClinic(row)
}

func (s *pgStore) GetDoctor(ctx context.Context, nif string) (*Doctor, error) {
	row := s.q.QueryRow(ctx, `
		SELECT nif, name, specialty
		FROM doctors
		WHERE nif = $1
	`, nif)
	return scanDoctor(row)
}

func (s *pgStore) GetPatient(ctx context.Context, ssn string) (*Patient, error) {
	row := s.q.QueryRow(ctx, `
		SELECT ssn, name, doctor_nif
		FROM patients
		WHERE ssn = $1
	`, ssn)
	return scanPatient(row)
}

func (s *pgStore) ListClinics(ctx context.Context) ([]Clinic, error) {
	rows, err := s.q.Query(ctx, `
		SELECT name, address
		FROM clinics
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Clinic
	for rows.Next() {
		var c Clinic
		if err := rows.Scan(&c.Name, &c.Address); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (s *pgStore) ListSpecialties(ctx context.Context, clinic string) ([]string, error) {
	rows, err := s.q.Query(ctx, `
		SELECT DISTINCT d.specialty
		FROM doctors d
		JOIN affiliations a ON a.doctor_nif = d.nif
		WHERE a.clinic_name = $1
		ORDER BY d.specialty
	`, clinic)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var sp string
		if err := rows.Scan(&sp); err != nil {
			return nil, err
		}
		result = append(result, sp)
	}
	return result, rows.Err()
}

func (s *pgStore) ListDoctorsBySpecialty(ctx context.Context, clinic, specialty string) ([]Doctor, error) {
	rows, err := s.q.Query(ctx, `
		SELECT DISTINCT d.nif, d.name, d.specialty
		FROM doctors d
		JOIN affiliations a ON a.doctor_nif = d.nif
		WHERE a.clinic_name = $1 AND d.specialty = $2
		ORDER BY d.nif
	`, clinic, specialty)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.NIF, &d.Name, &d.Specialty); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (s *pgStore) WorkingWeekdays(ctx context.Context, nif, clinic string) ([]int, error) {
	rows, err := s.q.Query(ctx, `
		SELECT weekday
		FROM affiliations
		WHERE doctor_nif = $1 AND clinic_name = $2
	`, nif, clinic)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []int
	for rows.Next() {
		var wd int
		if err := rows.Scan(&wd); err != nil {
			return nil, err
		}
		result = append(result, wd)
	}
	return result, rows.Err()
}

func (s *pgStore) FutureAppointments(ctx context.Context, nif string, after time.Time) ([]time.Time, error) {
	rows, err := s.q.Query(ctx, `
		SELECT day + slot
		FROM appointments
		WHERE doctor_nif = $1 AND day + slot > $2
		ORDER BY day, slot
	`, nif, after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []time.Time
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, err
		}
		result = append(result, at.UTC())
	}
	return result, rows.Err()
}

func (s *pgStore) DoctorWorksOn(ctx context.Context, nif, clinic string, weekday int) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM affiliations
			WHERE doctor_nif = $1 AND clinic_name = $2 AND weekday = $3
		)
	`, nif, clinic, weekday).Scan(&exists)
	return exists, err
}

func (s *pgStore) DoctorBookedAt(ctx context.Context, nif, date, clock string) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_nif = $1 AND day = $2::date AND slot = $3::time
		)
	`, nif, date, clock).Scan(&exists)
	return exists, err
}

func (s *pgStore) PatientBookedAt(ctx context.Context, ssn, date, clock string) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE patient_ssn = $1 AND day = $2::date AND slot = $3::time
		)
	`, ssn, date, clock).Scan(&exists)
	return exists, err
}

func (s *pgStore) InsertAppointment(ctx context.Context, appt Appointment) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO appointments (patient_ssn, doctor_nif, clinic_name, day, slot)
		VALUES ($1, $2, $3, $4::date, $5::time)
	`, appt.PatientSSN, appt.DoctorNIF, appt.ClinicName, appt.Date, appt.Time)
	if err != nil {
		return mapConstraintViolation(err)
	}
	return nil
}

func (s *pgStore) DeleteAppointment(ctx context.Context, appt Appointment) (int64, error) {
	ct, err := s.q.Exec(ctx, `
		DELETE FROM appointments
		WHERE patient_ssn = $1
		  AND doctor_nif = $2
		  AND clinic_name = $3
		  AND day = $4::date
		  AND slot = $5::time
	`, appt.PatientSSN, appt.DoctorNIF, appt.ClinicName, appt.Date, appt.Time)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// mapConstraintViolation turns a unique-violation on one of the slot
// constraints into the same conflict the explicit pre-checks report. The
// constraints backstop the read-then-write race between concurrent bookings.
func mapConstraintViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "appointments_doctor_slot_key":
			return ErrDoctorBooked
		case "appointments_patient_slot_key":
			return ErrPatientBooked
		}
	}
	return fmt.Errorf("insert appointment: %w", err)
}
