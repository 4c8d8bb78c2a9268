package clinic

import (
	"context"
	"time"
)

// Store es el contrato CRUD común a todos los stores.
// Cada llamada es su propia unidad de trabajo salvo que el store venga de Gateway.Do.
type Store[T any] interface {
	Create(ctx context.Context, v T) error
	// Update devuelve ErrNotFound si la entidad no existe.
	Update(ctx context.Context, v T) error
	// Delete es no-op si no existe.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
}

type PatientStore interface {
	Store[Patient]

	GetByNationalID(ctx context.Context, nationalID string) (Patient, error)
	ListWithAppointments(ctx context.Context) ([]PatientAppointments, error)
}

type DoctorStore interface {
	Store[Doctor]

	GetByLicense(ctx context.Context, licenseNumber string) (Doctor, error)
}

type AppointmentStore interface {
	Store[Appointment]

	// Todas con paciente y médico, ordenadas por fecha.
	ListDetailed(ctx context.Context) ([]AppointmentDetail, error)
	ListByPatient(ctx context.Context, patientID string) ([]AppointmentDetail, error)
	// ListUpcomingByDoctor: ScheduledAt estrictamente posterior a after.
	ListUpcomingByDoctor(ctx context.Context, doctorID string, after time.Time) ([]AppointmentDetail, error)
	// ListBetween: rango inclusivo [from, to].
	ListBetween(ctx context.Context, from, to time.Time) ([]AppointmentDetail, error)
}

// HistoryStore usa el ID del paciente como ID del historial.
type HistoryStore interface {
	Store[MedicalHistory]
}

type Stores struct {
	Patients     PatientStore
	Doctors      DoctorStore
	Appointments AppointmentStore
	Histories    HistoryStore
}

// Gateway abre unidades de trabajo contra el almacenamiento.
type Gateway interface {
	// Stores devuelve stores donde cada llamada es atómica por sí sola.
	Stores() Stores

	// Do ejecuta fn en una sola transacción: commit si fn devuelve nil,
	// rollback en cualquier otro caso. El error de fn se devuelve sin cambios.
	Do(ctx context.Context, fn func(tx Stores) error) error
}
