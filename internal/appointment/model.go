package appointment

import "time"

type Clinic struct {
	Name    string
	Address string
}

type Doctor struct {
	NIF       string // 9 digit national id
	Name      string
	Specialty string
}

// Label is the display form used on the availability listing.
func (d Doctor) Label() string {
	return d.Name + " (" + d.NIF + ")"
}

type Patient struct {
	SSN       string // 11 digit id
	Name      string
	DoctorNIF string // the patient's home doctor
}

// Affiliation says a doctor sees patients at a clinic on a given weekday
// (0=Monday through 6=Sunday).
type Affiliation struct {
	DoctorNIF  string
	ClinicName string
	Weekday    int
}

// Appointment carries date and time as the wire strings (YYYY-MM-DD and
// HH:MM:SS); they are validated before an Appointment is ever built.
type Appointment struct {
	ID         int64
	PatientSSN string
	DoctorNIF  string
	ClinicName string
	Date       string
	Time       string
}

// Slot is one bookable (date, time) pair offered to a patient.
type Slot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// DoctorAvailability pairs a doctor with their next free slots, in
// chronological order.
type DoctorAvailability struct {
	Doctor Doctor
	Slots  []Slot
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

func formatSlot(t time.Time) Slot {
	return Slot{Date: t.Format(dateLayout), Time: t.Format(timeLayout)}
}
