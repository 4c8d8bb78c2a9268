package memory

import (
	"context"
	"maps"
	"sync"

	"clinical-records/internal/domain/clinic"
)

// state es una foto completa de las cuatro tablas.
type state struct {
	patients     map[string]clinic.Patient
	doctors      map[string]clinic.Doctor
	appointments map[string]clinic.Appointment
	histories    map[string]clinic.MedicalHistory // key: patient id
}

func newState() *state {
	return &state{
		patients:     make(map[string]clinic.Patient),
		doctors:      make(map[string]clinic.Doctor),
		appointments: make(map[string]clinic.Appointment),
		histories:    make(map[string]clinic.MedicalHistory),
	}
}

func (s *state) clone() *state {
	return &state{
		patients:     maps.Clone(s.patients),
		doctors:      maps.Clone(s.doctors),
		appointments: maps.Clone(s.appointments),
		histories:    maps.Clone(s.histories),
	}
}

// runFunc ejecuta fn contra el estado. write=false permite compartir la foto actual.
type runFunc func(write bool, fn func(*state) error) error

// DB implementa clinic.Gateway en memoria.
// Cada unidad de trabajo escribe sobre una copia y solo la publica si no hubo error.
type DB struct {
	mu sync.RWMutex
	st *state
}

func NewDB() *DB {
	return &DB{st: newState()}
}

var _ clinic.Gateway = (*DB)(nil)

func (db *DB) Stores() clinic.Stores {
	return storesFor(db.run)
}

func (db *DB) Do(ctx context.Context, fn func(tx clinic.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	work := db.st.clone()
	tx := storesFor(func(_ bool, op func(*state) error) error {
		return op(work)
	})
	if err := fn(tx); err != nil {
		return err
	}
	db.st = work
	return nil
}

func (db *DB) run(write bool, fn func(*state) error) error {
	if !write {
		db.mu.RLock()
		defer db.mu.RUnlock()
		return fn(db.st)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	work := db.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	db.st = work
	return nil
}

func storesFor(run runFunc) clinic.Stores {
	return clinic.Stores{
		Patients:     &patientStore{run: run},
		Doctors:      &doctorStore{run: run},
		Appointments: &appointmentStore{run: run},
		Histories:    &historyStore{run: run},
	}
}
