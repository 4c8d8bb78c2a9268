package clinic

import "time"

// Specialty define las especialidades médicas soportadas.
// @Enum cardiology, pediatrics, general_medicine, dermatology, neurology, traumatology, gynecology
type Specialty string

const (
	SpecialtyCardiology      Specialty = "cardiology"
	SpecialtyPediatrics      Specialty = "pediatrics"
	SpecialtyGeneralMedicine Specialty = "general_medicine"
	SpecialtyDermatology     Specialty = "dermatology"
	SpecialtyNeurology       Specialty = "neurology"
	SpecialtyTraumatology    Specialty = "traumatology"
	SpecialtyGynecology      Specialty = "gynecology"
)

func (s Specialty) Valid() bool {
	switch s {
	case SpecialtyCardiology, SpecialtyPediatrics, SpecialtyGeneralMedicine,
		SpecialtyDermatology, SpecialtyNeurology, SpecialtyTraumatology, SpecialtyGynecology:
		return true
	}
	return false
}

// AppointmentStatus define el estado de una cita.
// @Enum scheduled, attended, cancelled
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusAttended  AppointmentStatus = "attended"
	StatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusAttended, StatusCancelled:
		return true
	}
	return false
}

// Patient es un paciente registrado. NationalID (13 dígitos) es la clave natural.
type Patient struct {
	ID string

	FullName   string
	NationalID string
	BirthDate  time.Time // solo fecha

	Phone string // 8 dígitos, opcional
	Email string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Doctor es un médico registrado. LicenseNumber es la clave natural.
type Doctor struct {
	ID string

	FullName      string
	LicenseNumber string
	Specialty     Specialty
	Email         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MedicalHistory comparte identidad con el paciente: PatientID es su clave primaria.
type MedicalHistory struct {
	PatientID string

	Allergies    string
	Conditions   string
	Observations string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Appointment referencia exactamente un paciente y un médico.
// (DoctorID, ScheduledAt) es único.
type Appointment struct {
	ID string

	PatientID string
	DoctorID  string

	ScheduledAt time.Time
	Status      AppointmentStatus
	Reason      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentDetail es una cita con paciente y médico ya cargados.
type AppointmentDetail struct {
	Appointment
	Patient Patient
	Doctor  Doctor
}

// PatientAppointments es un paciente con sus citas (ordenadas por fecha).
type PatientAppointments struct {
	Patient
	Appointments []Appointment
}
