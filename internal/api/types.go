package api

import "github.com/saudehub/clinic-scheduling/internal/appointment"

type BookingRequest struct {
	Patient string `json:"patient"`
	Doctor  string `json:"doctor"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

func (r BookingRequest) toInput() appointment.BookingInput {
	return appointment.BookingInput{
		PatientSSN: r.Patient,
		DoctorNIF:  r.Doctor,
		Date:       r.Date,
		Time:       r.Time,
	}
}

type ClinicResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type DoctorSlotsResponse struct {
	Doctor string             `json:"doctor"`
	Slots  []appointment.Slot `json:"slots"`
}

// MessageResponse is the envelope every booking/cancellation outcome and
// every error uses: {"message": ..., "status": "success"|"error"}.
type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
