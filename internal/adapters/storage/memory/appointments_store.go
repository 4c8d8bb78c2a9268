package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"clinical-records/internal/domain/clinic"
)

type appointmentStore struct {
	run runFunc
}

// checkRefs replica las FK y el índice único (doctor_id, scheduled_at) del esquema.
func checkRefs(st *state, a clinic.Appointment) error {
	if _, ok := st.patients[a.PatientID]; !ok {
		return fmt.Errorf("%w: patient %s does not exist", clinic.ErrConflict, a.PatientID)
	}
	if _, ok := st.doctors[a.DoctorID]; !ok {
		return fmt.Errorf("%w: doctor %s does not exist", clinic.ErrConflict, a.DoctorID)
	}
	for id, other := range st.appointments {
		if id != a.ID && other.DoctorID == a.DoctorID && other.ScheduledAt.Equal(a.ScheduledAt) {
			return fmt.Errorf("%w: doctor %s already booked at %s", clinic.ErrConflict, a.DoctorID, a.ScheduledAt.Format(time.RFC3339))
		}
	}
	return nil
}

func (r *appointmentStore) Create(ctx context.Context, a clinic.Appointment) error {
	return r.run(true, func(st *state) error {
		if strings.TrimSpace(a.ID) == "" {
			return fmt.Errorf("%w: appointment id required", clinic.ErrInvalidInput)
		}
		if _, exists := st.appointments[a.ID]; exists {
			return fmt.Errorf("%w: appointment %s already exists", clinic.ErrConflict, a.ID)
		}
		if err := checkRefs(st, a); err != nil {
			return err
		}
		st.appointments[a.ID] = a
		return nil
	})
}

func (r *appointmentStore) Update(ctx context.Context, a clinic.Appointment) error {
	return r.run(true, func(st *state) error {
		if _, exists := st.appointments[a.ID]; !exists {
			return clinic.ErrNotFound
		}
		if err := checkRefs(st, a); err != nil {
			return err
		}
		st.appointments[a.ID] = a
		return nil
	})
}

func (r *appointmentStore) Delete(ctx context.Context, id string) error {
	return r.run(true, func(st *state) error {
		delete(st.appointments, id)
		return nil
	})
}

func (r *appointmentStore) GetByID(ctx context.Context, id string) (clinic.Appointment, error) {
	var out clinic.Appointment
	err := r.run(false, func(st *state) error {
		a, ok := st.appointments[id]
		if !ok {
			return clinic.ErrNotFound
		}
		out = a
		return nil
	})
	return out, err
}

func (r *appointmentStore) List(ctx context.Context) ([]clinic.Appointment, error) {
	var out []clinic.Appointment
	err := r.run(false, func(st *state) error {
		out = make([]clinic.Appointment, 0, len(st.appointments))
		for _, a := range st.appointments {
			out = append(out, a)
		}
		sortAppointments(out)
		return nil
	})
	return out, err
}

func (r *appointmentStore) ListDetailed(ctx context.Context) ([]clinic.AppointmentDetail, error) {
	return r.detailed(func(clinic.Appointment) bool { return true })
}

func (r *appointmentStore) ListByPatient(ctx context.Context, patientID string) ([]clinic.AppointmentDetail, error) {
	return r.detailed(func(a clinic.Appointment) bool { return a.PatientID == patientID })
}

func (r *appointmentStore) ListUpcomingByDoctor(ctx context.Context, doctorID string, after time.Time) ([]clinic.AppointmentDetail, error) {
	return r.detailed(func(a clinic.Appointment) bool {
		return a.DoctorID == doctorID && a.ScheduledAt.After(after)
	})
}

func (r *appointmentStore) ListBetween(ctx context.Context, from, to time.Time) ([]clinic.AppointmentDetail, error) {
	return r.detailed(func(a clinic.Appointment) bool {
		return !a.ScheduledAt.Before(from) && !a.ScheduledAt.After(to)
	})
}

// detailed filtra y carga paciente y médico de cada cita.
func (r *appointmentStore) detailed(keep func(clinic.Appointment) bool) ([]clinic.AppointmentDetail, error) {
	var out []clinic.AppointmentDetail
	err := r.run(false, func(st *state) error {
		matched := make([]clinic.Appointment, 0)
		for _, a := range st.appointments {
			if keep(a) {
				matched = append(matched, a)
			}
		}
		sortAppointments(matched)

		out = make([]clinic.AppointmentDetail, 0, len(matched))
		for _, a := range matched {
			out = append(out, clinic.AppointmentDetail{
				Appointment: a,
				Patient:     st.patients[a.PatientID],
				Doctor:      st.doctors[a.DoctorID],
			})
		}
		return nil
	})
	return out, err
}

func sortAppointments(items []clinic.Appointment) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].ScheduledAt.Equal(items[j].ScheduledAt) {
			return items[i].ScheduledAt.Before(items[j].ScheduledAt)
		}
		return items[i].ID < items[j].ID
	})
}
