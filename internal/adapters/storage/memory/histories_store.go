package memory

import (
	"context"
	"fmt"
	"sort"

	"clinical-records/internal/domain/clinic"
)

type historyStore struct {
	run runFunc
}

func (r *historyStore) Create(ctx context.Context, h clinic.MedicalHistory) error {
	return r.run(true, func(st *state) error {
		if _, ok := st.patients[h.PatientID]; !ok {
			return fmt.Errorf("%w: patient %s does not exist", clinic.ErrConflict, h.PatientID)
		}
		if _, exists := st.histories[h.PatientID]; exists {
			return fmt.Errorf("%w: history for patient %s already exists", clinic.ErrDuplicateKey, h.PatientID)
		}
		st.histories[h.PatientID] = h
		return nil
	})
}

func (r *historyStore) Update(ctx context.Context, h clinic.MedicalHistory) error {
	return r.run(true, func(st *state) error {
		if _, exists := st.histories[h.PatientID]; !exists {
			return clinic.ErrNotFound
		}
		st.histories[h.PatientID] = h
		return nil
	})
}

func (r *historyStore) Delete(ctx context.Context, patientID string) error {
	return r.run(true, func(st *state) error {
		delete(st.histories, patientID)
		return nil
	})
}

func (r *historyStore) GetByID(ctx context.Context, patientID string) (clinic.MedicalHistory, error) {
	var out clinic.MedicalHistory
	err := r.run(false, func(st *state) error {
		h, ok := st.histories[patientID]
		if !ok {
			return clinic.ErrNotFound
		}
		out = h
		return nil
	})
	return out, err
}

func (r *historyStore) List(ctx context.Context) ([]clinic.MedicalHistory, error) {
	var out []clinic.MedicalHistory
	err := r.run(false, func(st *state) error {
		out = make([]clinic.MedicalHistory, 0, len(st.histories))
		for _, h := range st.histories {
			out = append(out, h)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].PatientID < out[j].PatientID })
		return nil
	})
	return out, err
}
