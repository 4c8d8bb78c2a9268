package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"clinical-records/internal/domain/clinic"
)

type doctorStore struct {
	run runFunc
}

func (r *doctorStore) Create(ctx context.Context, d clinic.Doctor) error {
	return r.run(true, func(st *state) error {
		if strings.TrimSpace(d.ID) == "" {
			return fmt.Errorf("%w: doctor id required", clinic.ErrInvalidInput)
		}
		if _, exists := st.doctors[d.ID]; exists {
			return fmt.Errorf("%w: doctor %s already exists", clinic.ErrDuplicateKey, d.ID)
		}
		for _, other := range st.doctors {
			if other.LicenseNumber == d.LicenseNumber {
				return fmt.Errorf("%w: license %s", clinic.ErrDuplicateKey, d.LicenseNumber)
			}
		}
		st.doctors[d.ID] = d
		return nil
	})
}

func (r *doctorStore) Update(ctx context.Context, d clinic.Doctor) error {
	return r.run(true, func(st *state) error {
		if _, exists := st.doctors[d.ID]; !exists {
			return clinic.ErrNotFound
		}
		for id, other := range st.doctors {
			if id != d.ID && other.LicenseNumber == d.LicenseNumber {
				return fmt.Errorf("%w: license %s", clinic.ErrDuplicateKey, d.LicenseNumber)
			}
		}
		st.doctors[d.ID] = d
		return nil
	})
}

// Delete borra primero las citas del médico y después el médico.
func (r *doctorStore) Delete(ctx context.Context, id string) error {
	return r.run(true, func(st *state) error {
		if _, exists := st.doctors[id]; !exists {
			return nil
		}
		for aid, a := range st.appointments {
			if a.DoctorID == id {
				delete(st.appointments, aid)
			}
		}
		delete(st.doctors, id)
		return nil
	})
}

func (r *doctorStore) GetByID(ctx context.Context, id string) (clinic.Doctor, error) {
	var out clinic.Doctor
	err := r.run(false, func(st *state) error {
		d, ok := st.doctors[id]
		if !ok {
			return clinic.ErrNotFound
		}
		out = d
		return nil
	})
	return out, err
}

func (r *doctorStore) GetByLicense(ctx context.Context, licenseNumber string) (clinic.Doctor, error) {
	var out clinic.Doctor
	err := r.run(false, func(st *state) error {
		for _, d := range st.doctors {
			if d.LicenseNumber == licenseNumber {
				out = d
				return nil
			}
		}
		return clinic.ErrNotFound
	})
	return out, err
}

func (r *doctorStore) List(ctx context.Context) ([]clinic.Doctor, error) {
	var out []clinic.Doctor
	err := r.run(false, func(st *state) error {
		out = make([]clinic.Doctor, 0, len(st.doctors))
		for _, d := range st.doctors {
			out = append(out, d)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].FullName != out[j].FullName {
				return out[i].FullName < out[j].FullName
			}
			return out[i].ID < out[j].ID
		})
		return nil
	})
	return out, err
}
