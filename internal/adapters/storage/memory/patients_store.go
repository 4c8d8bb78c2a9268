package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"clinical-records/internal/domain/clinic"
)

type patientStore struct {
	run runFunc
}

func (r *patientStore) Create(ctx context.Context, p clinic.Patient) error {
	return r.run(true, func(st *state) error {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("%w: patient id required", clinic.ErrInvalidInput)
		}
		if _, exists := st.patients[p.ID]; exists {
			return fmt.Errorf("%w: patient %s already exists", clinic.ErrDuplicateKey, p.ID)
		}
		for _, other := range st.patients {
			if other.NationalID == p.NationalID {
				return fmt.Errorf("%w: national id %s", clinic.ErrDuplicateKey, p.NationalID)
			}
		}
		st.patients[p.ID] = p
		return nil
	})
}

func (r *patientStore) Update(ctx context.Context, p clinic.Patient) error {
	return r.run(true, func(st *state) error {
		if _, exists := st.patients[p.ID]; !exists {
			return clinic.ErrNotFound
		}
		for id, other := range st.patients {
			if id != p.ID && other.NationalID == p.NationalID {
				return fmt.Errorf("%w: national id %s", clinic.ErrDuplicateKey, p.NationalID)
			}
		}
		st.patients[p.ID] = p
		return nil
	})
}

// Delete borra en orden: citas, historial y por último el paciente.
func (r *patientStore) Delete(ctx context.Context, id string) error {
	return r.run(true, func(st *state) error {
		if _, exists := st.patients[id]; !exists {
			return nil
		}
		for aid, a := range st.appointments {
			if a.PatientID == id {
				delete(st.appointments, aid)
			}
		}
		delete(st.histories, id)
		delete(st.patients, id)
		return nil
	})
}

func (r *patientStore) GetByID(ctx context.Context, id string) (clinic.Patient, error) {
	var out clinic.Patient
	err := r.run(false, func(st *state) error {
		p, ok := st.patients[id]
		if !ok {
			return clinic.ErrNotFound
		}
		out = p
		return nil
	})
	return out, err
}

func (r *patientStore) GetByNationalID(ctx context.Context, nationalID string) (clinic.Patient, error) {
	var out clinic.Patient
	err := r.run(false, func(st *state) error {
		for _, p := range st.patients {
			if p.NationalID == nationalID {
				out = p
				return nil
			}
		}
		return clinic.ErrNotFound
	})
	return out, err
}

func (r *patientStore) List(ctx context.Context) ([]clinic.Patient, error) {
	var out []clinic.Patient
	err := r.run(false, func(st *state) error {
		out = listPatients(st)
		return nil
	})
	return out, err
}

func (r *patientStore) ListWithAppointments(ctx context.Context) ([]clinic.PatientAppointments, error) {
	var out []clinic.PatientAppointments
	err := r.run(false, func(st *state) error {
		byPatient := make(map[string][]clinic.Appointment)
		for _, a := range st.appointments {
			byPatient[a.PatientID] = append(byPatient[a.PatientID], a)
		}

		patients := listPatients(st)
		out = make([]clinic.PatientAppointments, 0, len(patients))
		for _, p := range patients {
			appts := byPatient[p.ID]
			sortAppointments(appts)
			if appts == nil {
				appts = []clinic.Appointment{}
			}
			out = append(out, clinic.PatientAppointments{Patient: p, Appointments: appts})
		}
		return nil
	})
	return out, err
}

// Orden estable por nombre y luego id.
func listPatients(st *state) []clinic.Patient {
	out := make([]clinic.Patient, 0, len(st.patients))
	for _, p := range st.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out
}
