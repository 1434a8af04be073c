package appointment

import (
	"fmt"
	"time"

	"github.com/saudehub/clinic-scheduling/internal/schedule"
)

// ValidationError reports the first input rule a request violates.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// BookingInput is the raw request input shared by booking and cancellation.
type BookingInput struct {
	PatientSSN string
	DoctorNIF  string
	Date       string
	Time       string
}

type inputRule struct {
	field string
	check func(in BookingInput) string // non-empty result is the rejection message
}

// Rule order is the reporting priority: the first failing rule wins and the
// rest are not evaluated.
var inputRules = []inputRule{
	{"patient", func(in BookingInput) string {
		if in.PatientSSN == "" {
			return "the patient field must be filled in"
		}
		if len(in.PatientSSN) != 11 || !allDigits(in.PatientSSN) {
			return "the patient field must be an 11 digit number"
		}
		return ""
	}},
	{"doctor", func(in BookingInput) string {
		if in.DoctorNIF == "" {
			return "the doctor field must be filled in"
		}
		if len(in.DoctorNIF) != 9 || !allDigits(in.DoctorNIF) {
			return "the doctor field must be a 9 digit number"
		}
		return ""
	}},
	{"date", func(in BookingInput) string {
		if in.Date == "" {
			return "the date field must be filled in"
		}
		if _, err := time.Parse(dateLayout, in.Date); err != nil {
			return "invalid date format, expected YYYY-MM-DD"
		}
		return ""
	}},
	{"time", func(in BookingInput) string {
		if in.Time == "" {
			return "the time field must be filled in"
		}
		if _, err := time.Parse(timeLayout, in.Time); err != nil {
			return "invalid time format, expected HH:MM:SS"
		}
		return ""
	}},
}

// ValidateBookingInput applies the input rules in priority order and, once
// the fields parse, checks the requested instant against now and against
// clinic operating hours. On success it returns the requested instant.
func ValidateBookingInput(in BookingInput, now time.Time) (time.Time, error) {
	for _, r := range inputRules {
		if msg := r.check(in); msg != "" {
			return time.Time{}, &ValidationError{Field: r.field, Message: msg}
		}
	}

	day, _ := time.Parse(dateLayout, in.Date)
	clock, _ := time.Parse(timeLayout, in.Time)
	at := time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)

	if at.Before(now) {
		return time.Time{}, &ValidationError{
			Field:   "time",
			Message: fmt.Sprintf("the requested time cannot be in the past: %s %s", in.Time, in.Date),
		}
	}
	if !schedule.InOperatingHours(at) {
		return time.Time{}, &ValidationError{
			Field:   "time",
			Message: "the requested time must fall between 8am-1pm or 2pm-7pm",
		}
	}
	return at, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
