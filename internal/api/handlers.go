package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/saudehub/clinic-scheduling/internal/appointment"
)

// SchedulingService is the slice of the appointment service the handlers use.
type SchedulingService interface {
	ListClinics(ctx context.Context) ([]appointment.Clinic, error)
	ListSpecialties(ctx context.Context, clinic string) ([]string, error)
	DoctorAvailability(ctx context.Context, clinic, specialty string) ([]appointment.DoctorAvailability, error)
	Book(ctx context.Context, clinic string, in appointment.BookingInput) error
	Cancel(ctx context.Context, clinic string, in appointment.BookingInput) error
}

func listClinicsHandler(svc SchedulingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinics, err := svc.ListClinics(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := make([]ClinicResponse, 0, len(clinics))
		for _, c := range clinics {
			resp = append(resp, ClinicResponse{Name: c.Name, Address: c.Address})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func listSpecialtiesHandler(svc SchedulingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		specialties, err := svc.ListSpecialties(r.Context(), pathParam(r, "clinic"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if specialties == nil {
			specialties = []string{}
		}
		writeJSON(w, http.StatusOK, specialties)
	}
}

func doctorAvailabilityHandler(svc SchedulingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinic := pathParam(r, "clinic")
		specialty := pathParam(r, "specialty")

		availability, err := svc.DoctorAvailability(r.Context(), clinic, specialty)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := make([]DoctorSlotsResponse, 0, len(availability))
		for _, av := range availability {
			slots := av.Slots
			if slots == nil {
				slots = []appointment.Slot{}
			}
			resp = append(resp, DoctorSlotsResponse{
				Doctor: av.Doctor.Label(),
				Slots:  slots,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func bookHandler(svc SchedulingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinic := pathParam(r, "clinic")

		var req BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "could not parse JSON body")
			return
		}

		if err := svc.Book(r.Context(), clinic, req.toInput()); err != nil {
			writeServiceError(w, err)
			return
		}

		msg := fmt.Sprintf("appointment booked: patient %s, doctor %s, clinic %s, date %s, time %s",
			req.Patient, req.Doctor, clinic, req.Date, req.Time)
		writeJSON(w, http.StatusOK, MessageResponse{Message: msg, Status: "success"})
	}
}

func cancelHandler(svc SchedulingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinic := pathParam(r, "clinic")

		var req BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "could not parse JSON body")
			return
		}

		if err := svc.Cancel(r.Context(), clinic, req.toInput()); err != nil {
			writeServiceError(w, err)
			return
		}

		msg := fmt.Sprintf("appointment cancelled: patient %s, doctor %s, clinic %s, date %s, time %s",
			req.Patient, req.Doctor, clinic, req.Date, req.Time)
		writeJSON(w, http.StatusOK, MessageResponse{Message: msg, Status: "success"})
	}
}

// pathParam returns the named URL parameter with percent-escapes decoded, so
// clinic names with spaces or accents route correctly.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// writeServiceError maps service errors onto the status taxonomy: 404 for an
// unknown clinic or an unoffered specialty, 400 for validation and business
// rejections, 500 for anything unexpected.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *appointment.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, appointment.ErrClinicNotFound),
		errors.Is(err, appointment.ErrSpecialtyNotOffered):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, appointment.ErrPatientNotFound),
		errors.Is(err, appointment.ErrDoctorNotFound),
		errors.Is(err, appointment.ErrDoctorNotScheduled),
		errors.Is(err, appointment.ErrDoctorBooked),
		errors.Is(err, appointment.ErrPatientBooked),
		errors.Is(err, appointment.ErrSelfAppointment),
		errors.Is(err, appointment.ErrNoMatchingAppointment):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message, Status: "error"})
}
