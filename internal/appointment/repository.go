package appointment

import (
	"context"
	"errors"
	"time"
)

var (
	ErrClinicNotFound        = errors.New("clinic not found")
	ErrPatientNotFound       = errors.New("patient not found")
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrSpecialtyNotOffered   = errors.New("specialty not offered at this clinic")
	ErrDoctorNotScheduled    = errors.New("doctor does not see patients at this clinic on that weekday")
	ErrDoctorBooked          = errors.New("doctor already has an appointment at that time")
	ErrPatientBooked         = errors.New("patient already has an appointment at that time")
	ErrSelfAppointment       = errors.New("a doctor cannot book an appointment with themselves")
	ErrNoMatchingAppointment = errors.New("no appointment matches the given parameters")
)

// Store is the read/write surface the service needs from the database. It is
// implemented both by the pooled repository and by its transaction scope, so
// the booking ladder can run the same calls inside a single transaction.
type Store interface {
	GetClinic(ctx context.Context, name string) (*Clinic, error)
	GetDoctor(ctx context.Context, nif string) (*Doctor, error)
	GetPatient(ctx context.Context, ssn string) (*Patient, error)

	ListClinics(ctx context.Context) ([]Clinic, error)
	ListSpecialties(ctx context.Context, clinic string) ([]string, error)
	ListDoctorsBySpecialty(ctx context.Context, clinic, specialty string) ([]Doctor, error)

	// Availability reads
	WorkingWeekdays(ctx context.Context, nif, clinic string) ([]int, error)
	FutureAppointments(ctx context.Context, nif string, after time.Time) ([]time.Time, error)

	// Booking checks and writes
	DoctorWorksOn(ctx context.Context, nif, clinic string, weekday int) (bool, error)
	DoctorBookedAt(ctx context.Context, nif, date, clock string) (bool, error)
	PatientBookedAt(ctx context.Context, ssn, date, clock string) (bool, error)
	InsertAppointment(ctx context.Context, appt Appointment) error
	DeleteAppointment(ctx context.Context, appt Appointment) (int64, error)
}

// Repository adds transaction scoping on top of Store. Everything fn does
// through its Store argument commits or rolls back atomically.
type Repository interface {
	Store
	InTx(ctx context.Context, fn func(Store) error) error
}
