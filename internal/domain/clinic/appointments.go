package clinic

import (
	"context"
	"fmt"
	"time"
)

type ScheduleInput struct {
	PatientID   string
	DoctorID    string
	ScheduledAt time.Time
	Reason      string
}

// ScheduleAppointment no revisa de antemano el par (médico, fecha): la restricción
// única del store lo rechaza con ErrConflict.
func (s *Service) ScheduleAppointment(ctx context.Context, in ScheduleInput) (Appointment, error) {
	patientID := trimmed(in.PatientID)
	doctorID := trimmed(in.DoctorID)
	if patientID == "" || doctorID == "" || in.ScheduledAt.IsZero() {
		return Appointment{}, ErrInvalidInput
	}
	// Postgres guarda microsegundos; se persiste con esa precisión.
	at := in.ScheduledAt.UTC().Truncate(time.Microsecond)

	var a Appointment
	err := s.gw.Do(ctx, func(tx Stores) error {
		if _, err := tx.Patients.GetByID(ctx, patientID); err != nil {
			return missing(err, "patient", patientID)
		}
		if _, err := tx.Doctors.GetByID(ctx, doctorID); err != nil {
			return missing(err, "doctor", doctorID)
		}

		now := s.now()
		if !in.ScheduledAt.After(now) {
			return fmt.Errorf("%w: %s is not after %s", ErrInvalidTime, in.ScheduledAt.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
		}

		a = Appointment{
			ID:          s.newID(),
			PatientID:   patientID,
			DoctorID:    doctorID,
			ScheduledAt: at,
			Status:      StatusScheduled,
			Reason:      trimmed(in.Reason),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return tx.Appointments.Create(ctx, a)
	})
	if err != nil {
		return Appointment{}, err
	}

	s.log.Info("appointment scheduled", map[string]any{
		"appointment_id": a.ID,
		"patient_id":     a.PatientID,
		"doctor_id":      a.DoctorID,
		"scheduled_at":   a.ScheduledAt,
	})
	return a, nil
}

// ChangeAppointmentStatus sobrescribe el estado. Cualquier transición se acepta
// (incluido salir de attended/cancelled); ese caso solo se registra en el log.
func (s *Service) ChangeAppointmentStatus(ctx context.Context, id string, status AppointmentStatus) (Appointment, error) {
	id = trimmed(id)
	if id == "" || !status.Valid() {
		return Appointment{}, ErrInvalidInput
	}

	var (
		a    Appointment
		prev AppointmentStatus
	)
	err := s.gw.Do(ctx, func(tx Stores) error {
		cur, err := tx.Appointments.GetByID(ctx, id)
		if err != nil {
			return missing(err, "appointment", id)
		}
		prev = cur.Status
		cur.Status = status
		cur.UpdatedAt = s.now()
		if err := tx.Appointments.Update(ctx, cur); err != nil {
			return err
		}
		a = cur
		return nil
	})
	if err != nil {
		return Appointment{}, err
	}

	fields := map[string]any{"appointment_id": a.ID, "from": string(prev), "to": string(status)}
	if prev != StatusScheduled && prev != status {
		s.log.Warn("appointment status left a closed state", fields)
	} else {
		s.log.Info("appointment status changed", fields)
	}
	return a, nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (Appointment, error) {
	return s.gw.Stores().Appointments.GetByID(ctx, trimmed(id))
}

// DeleteAppointment es no-op si la cita no existe.
func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	id = trimmed(id)
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.gw.Stores().Appointments.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("appointment deleted", map[string]any{"appointment_id": id})
	return nil
}

func (s *Service) ListAppointments(ctx context.Context) ([]AppointmentDetail, error) {
	return s.gw.Stores().Appointments.ListDetailed(ctx)
}

func (s *Service) PatientAppointments(ctx context.Context, patientID string) ([]AppointmentDetail, error) {
	return s.gw.Stores().Appointments.ListByPatient(ctx, trimmed(patientID))
}

// UpcomingDoctorAppointments: citas del médico posteriores al momento de la llamada.
func (s *Service) UpcomingDoctorAppointments(ctx context.Context, doctorID string) ([]AppointmentDetail, error) {
	return s.gw.Stores().Appointments.ListUpcomingByDoctor(ctx, trimmed(doctorID), s.now())
}

// AppointmentsBetween usa un rango inclusivo en ambos extremos.
func (s *Service) AppointmentsBetween(ctx context.Context, from, to time.Time) ([]AppointmentDetail, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, ErrInvalidInput
	}
	return s.gw.Stores().Appointments.ListBetween(ctx, from.UTC(), to.UTC())
}
