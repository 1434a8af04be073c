package appointment

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapConstraintViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{
			"doctor slot taken",
			&pgconn.PgError{Code: "23505", ConstraintName: "appointments_doctor_slot_key"},
			ErrDoctorBooked,
		},
		{
			"patient slot taken",
			&pgconn.PgError{Code: "23505", ConstraintName: "appointments_patient_slot_key"},
			ErrPatientBooked,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapConstraintViolation(tc.err), tc.want)
		})
	}
}

func TestMapConstraintViolation_OtherErrorsWrap(t *testing.T) {
	cause := errors.New("connection reset")

	got := mapConstraintViolation(cause)

	assert.ErrorIs(t, got, cause)
	assert.NotErrorIs(t, got, ErrDoctorBooked)
	assert.NotErrorIs(t, got, ErrPatientBooked)
}

func TestMapConstraintViolation_ForeignKeyIsNotConflict(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "appointments_patient_ssn_fkey"}

	got := mapConstraintViolation(fk)

	assert.NotErrorIs(t, got, ErrPatientBooked)
}
