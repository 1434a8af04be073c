package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-02 is a Monday; treated as the already-offset local clock.
var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func validInput() BookingInput {
	return BookingInput{
		PatientSSN: "12345678901",
		DoctorNIF:  "123456789",
		Date:       "2025-06-09",
		Time:       "09:00:00",
	}
}

func TestValidateBookingInput_Valid(t *testing.T) {
	at, err := ValidateBookingInput(validInput(), testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC), at)
}

func TestValidateBookingInput_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*BookingInput)
		field   string
		message string
	}{
		{"missing patient", func(in *BookingInput) { in.PatientSSN = "" },
			"patient", "the patient field must be filled in"},
		{"patient too short", func(in *BookingInput) { in.PatientSSN = "1234567890" },
			"patient", "the patient field must be an 11 digit number"},
		{"patient non-numeric", func(in *BookingInput) { in.PatientSSN = "1234567890a" },
			"patient", "the patient field must be an 11 digit number"},
		{"missing doctor", func(in *BookingInput) { in.DoctorNIF = "" },
			"doctor", "the doctor field must be filled in"},
		{"doctor too long", func(in *BookingInput) { in.DoctorNIF = "1234567890" },
			"doctor", "the doctor field must be a 9 digit number"},
		{"missing date", func(in *BookingInput) { in.Date = "" },
			"date", "the date field must be filled in"},
		{"bad date format", func(in *BookingInput) { in.Date = "09-06-2025" },
			"date", "invalid date format, expected YYYY-MM-DD"},
		{"missing time", func(in *BookingInput) { in.Time = "" },
			"time", "the time field must be filled in"},
		{"impossible time", func(in *BookingInput) { in.Time = "25:00:00" },
			"time", "invalid time format, expected HH:MM:SS"},
		{"in the past", func(in *BookingInput) { in.Date = "2025-06-01" },
			"time", "the requested time cannot be in the past: 09:00:00 2025-06-01"},
		{"lunch block", func(in *BookingInput) { in.Time = "13:15:00" },
			"time", "the requested time must fall between 8am-1pm or 2pm-7pm"},
		{"before opening", func(in *BookingInput) { in.Time = "07:30:00" },
			"time", "the requested time must fall between 8am-1pm or 2pm-7pm"},
		{"after closing", func(in *BookingInput) { in.Time = "19:00:00" },
			"time", "the requested time must fall between 8am-1pm or 2pm-7pm"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, err := ValidateBookingInput(in, testNow)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
			assert.Equal(t, tc.message, vErr.Message)
		})
	}
}

// With several fields broken at once, the first rule in priority order is
// the one reported.
func TestValidateBookingInput_FirstFailureWins(t *testing.T) {
	in := BookingInput{PatientSSN: "123", DoctorNIF: "456", Date: "nope", Time: "nope"}

	_, err := ValidateBookingInput(in, testNow)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "patient", vErr.Field)
}

func TestValidateBookingInput_NowItselfIsNotPast(t *testing.T) {
	in := validInput()
	in.Date = "2025-06-02"
	in.Time = "10:00:00"

	_, err := ValidateBookingInput(in, testNow)
	assert.NoError(t, err)
}

func TestValidateBookingInput_MiddayPasses(t *testing.T) {
	in := validInput()
	in.Time = "12:30:00"

	_, err := ValidateBookingInput(in, testNow)
	assert.NoError(t, err)
}
