package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/saudehub/clinic-scheduling/internal/config"
	redisclient "github.com/saudehub/clinic-scheduling/internal/redis"
	"github.com/saudehub/clinic-scheduling/internal/schedule"
)

const (
	cacheKeyClinics     = "clinics"
	cacheKeySpecialties = "specialties:"
)

type Service struct {
	repo     Repository
	cache    *redisclient.Cache // nil disables caching
	log      zerolog.Logger
	scanDays int
	now      func() time.Time
}

func NewService(repo Repository, cache *redisclient.Cache, log zerolog.Logger, cfg config.Config) *Service {
	offset := cfg.LocalTimeOffset
	return &Service{
		repo:     repo,
		cache:    cache,
		log:      log,
		scanDays: cfg.AvailabilityScanDays,
		// The clinic network runs on a single fixed offset from UTC.
		now: func() time.Time { return time.Now().UTC().Add(offset) },
	}
}

// ListClinics returns every clinic's name and address, from cache when warm.
func (s *Service) ListClinics(ctx context.Context) ([]Clinic, error) {
	var clinics []Clinic
	if s.cache != nil && s.cache.Get(ctx, cacheKeyClinics, &clinics) {
		return clinics, nil
	}

	clinics, err := s.repo.ListClinics(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKeyClinics, clinics)
	}
	return clinics, nil
}

// ListSpecialties returns the distinct specialties offered at the clinic.
func (s *Service) ListSpecialties(ctx context.Context, clinic string) ([]string, error) {
	if _, err := s.repo.GetClinic(ctx, clinic); err != nil {
		return nil, err
	}

	key := cacheKeySpecialties + clinic
	var specialties []string
	if s.cache != nil && s.cache.Get(ctx, key, &specialties) {
		return specialties, nil
	}

	specialties, err := s.repo.ListSpecialties(ctx, clinic)
	if err != nil {
		return nil, fmt.Errorf("list specialties: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, specialties)
	}
	return specialties, nil
}

// DoctorAvailability lists every doctor of the given specialty at the clinic
// together with their next free slots. Availability is best effort: a listed
// slot can still be claimed by a concurrent booking.
func (s *Service) DoctorAvailability(ctx context.Context, clinic, specialty string) ([]DoctorAvailability, error) {
	if _, err := s.repo.GetClinic(ctx, clinic); err != nil {
		return nil, err
	}

	doctors, err := s.repo.ListDoctorsBySpecialty(ctx, clinic, specialty)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	if len(doctors) == 0 {
		return nil, ErrSpecialtyNotOffered
	}

	now := s.now()
	result := make([]DoctorAvailability, 0, len(doctors))
	for _, doc := range doctors {
		weekdays, err := s.repo.WorkingWeekdays(ctx, doc.NIF, clinic)
		if err != nil {
			return nil, fmt.Errorf("working weekdays for %s: %w", doc.NIF, err)
		}
		booked, err := s.repo.FutureAppointments(ctx, doc.NIF, now)
		if err != nil {
			return nil, fmt.Errorf("future appointments for %s: %w", doc.NIF, err)
		}

		workdays := make(map[int]bool, len(weekdays))
		for _, wd := range weekdays {
			workdays[wd] = true
		}
		taken := make(map[time.Time]bool, len(booked))
		for _, at := range booked {
			taken[at] = true
		}

		av := DoctorAvailability{Doctor: doc}
		for _, t := range nextAvailableSlots(now, workdays, taken, slotsPerDoctor, s.scanDays) {
			av.Slots = append(av.Slots, formatSlot(t))
		}
		result = append(result, av)
	}
	return result, nil
}

// Book validates the request and runs the whole check ladder plus the insert
// inside one transaction. Each failing check maps to its own sentinel; the
// unique constraints on (doctor, day, slot) and (patient, day, slot) close
// the race two concurrent bookings would otherwise win together.
func (s *Service) Book(ctx context.Context, clinic string, in BookingInput) error {
	at, err := ValidateBookingInput(in, s.now())
	if err != nil {
		return err
	}
	weekday := schedule.ISOWeekday(at)

	err = s.repo.InTx(ctx, func(tx Store) error {
		if _, err := tx.GetClinic(ctx, clinic); err != nil {
			return err
		}
		patient, err := tx.GetPatient(ctx, in.PatientSSN)
		if err != nil {
			return err
		}
		if _, err := tx.GetDoctor(ctx, in.DoctorNIF); err != nil {
			return err
		}

		works, err := tx.DoctorWorksOn(ctx, in.DoctorNIF, clinic, weekday)
		if err != nil {
			return fmt.Errorf("check affiliation: %w", err)
		}
		if !works {
			return ErrDoctorNotScheduled
		}

		busy, err := tx.DoctorBookedAt(ctx, in.DoctorNIF, in.Date, in.Time)
		if err != nil {
			return fmt.Errorf("check doctor conflict: %w", err)
		}
		if busy {
			return ErrDoctorBooked
		}

		busy, err = tx.PatientBookedAt(ctx, in.PatientSSN, in.Date, in.Time)
		if err != nil {
			return fmt.Errorf("check patient conflict: %w", err)
		}
		if busy {
			return ErrPatientBooked
		}

		if patient.DoctorNIF == in.DoctorNIF {
			return ErrSelfAppointment
		}

		return tx.InsertAppointment(ctx, Appointment{
			PatientSSN: in.PatientSSN,
			DoctorNIF:  in.DoctorNIF,
			ClinicName: clinic,
			Date:       in.Date,
			Time:       in.Time,
		})
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("clinic", clinic).
		Str("patient", in.PatientSSN).
		Str("doctor", in.DoctorNIF).
		Str("date", in.Date).
		Str("time", in.Time).
		Msg("appointment booked")
	return nil
}

// Cancel removes the exact (patient, doctor, clinic, date, time) appointment
// inside one transaction; a zero-row delete means no such appointment exists.
func (s *Service) Cancel(ctx context.Context, clinic string, in BookingInput) error {
	if _, err := ValidateBookingInput(in, s.now()); err != nil {
		return err
	}

	err := s.repo.InTx(ctx, func(tx Store) error {
		if _, err := tx.GetClinic(ctx, clinic); err != nil {
			return err
		}
		if _, err := tx.GetPatient(ctx, in.PatientSSN); err != nil {
			return err
		}
		if _, err := tx.GetDoctor(ctx, in.DoctorNIF); err != nil {
			return err
		}

		deleted, err := tx.DeleteAppointment(ctx, Appointment{
			PatientSSN: in.PatientSSN,
			DoctorNIF:  in.DoctorNIF,
			ClinicName: clinic,
			Date:       in.Date,
			Time:       in.Time,
		})
		if err != nil {
			return fmt.Errorf("delete appointment: %w", err)
		}
		if deleted == 0 {
			return ErrNoMatchingAppointment
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("clinic", clinic).
		Str("patient", in.PatientSSN).
		Str("doctor", in.DoctorNIF).
		Str("date", in.Date).
		Str("time", in.Time).
		Msg("appointment cancelled")
	return nil
}
