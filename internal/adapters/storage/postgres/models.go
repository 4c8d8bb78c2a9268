package postgres

import (
	"time"

	"clinical-records/internal/domain/clinic"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type patientRow struct {
	ID         string         `gorm:"primaryKey;type:uuid"`
	FullName   string         `gorm:"size:100;not null"`
	NationalID string         `gorm:"size:13;not null;uniqueIndex:uk_patients_national_id"`
	BirthDate  datatypes.Date `gorm:"not null"`
	Phone      string         `gorm:"size:8"`
	Email      string         `gorm:"size:100"`
	CreatedAt  time.Time      `gorm:"autoCreateTime:false"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime:false"`
}

func (patientRow) TableName() string { return "patients" }

type doctorRow struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	FullName      string    `gorm:"size:100;not null"`
	LicenseNumber string    `gorm:"size:20;not null;uniqueIndex:uk_doctors_license"`
	Specialty     string    `gorm:"size:30;not null"`
	Email         string    `gorm:"size:100"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

func (doctorRow) TableName() string { return "doctors" }

// appointmentRow: Patient y Doctor solo se llenan en lecturas con Joins.
type appointmentRow struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	PatientID   string    `gorm:"type:uuid;not null;index"`
	DoctorID    string    `gorm:"type:uuid;not null;uniqueIndex:uk_appointments_doctor_time,priority:1"`
	ScheduledAt time.Time `gorm:"not null;uniqueIndex:uk_appointments_doctor_time,priority:2"`
	Status      string    `gorm:"size:20;not null"`
	Reason      string    `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`

	Patient patientRow `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	Doctor  doctorRow  `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
}

func (appointmentRow) TableName() string { return "appointments" }

// historyRow usa el id del paciente como clave primaria.
type historyRow struct {
	PatientID    string    `gorm:"primaryKey;type:uuid"`
	Allergies    string    `gorm:"type:text"`
	Conditions   string    `gorm:"type:text"`
	Observations string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`

	Patient patientRow `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
}

func (historyRow) TableName() string { return "medical_histories" }

// AutoMigrate crea o ajusta las cuatro tablas con sus índices únicos y FKs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&patientRow{}, &doctorRow{}, &appointmentRow{}, &historyRow{})
}

func fromPatient(p clinic.Patient) patientRow {
	return patientRow{
		ID:         p.ID,
		FullName:   p.FullName,
		NationalID: p.NationalID,
		BirthDate:  datatypes.Date(p.BirthDate),
		Phone:      p.Phone,
		Email:      p.Email,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (r patientRow) toDomain() clinic.Patient {
	return clinic.Patient{
		ID:         r.ID,
		FullName:   r.FullName,
		NationalID: r.NationalID,
		BirthDate:  time.Time(r.BirthDate),
		Phone:      r.Phone,
		Email:      r.Email,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func fromDoctor(d clinic.Doctor) doctorRow {
	return doctorRow{
		ID:            d.ID,
		FullName:      d.FullName,
		LicenseNumber: d.LicenseNumber,
		Specialty:     string(d.Specialty),
		Email:         d.Email,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r doctorRow) toDomain() clinic.Doctor {
	return clinic.Doctor{
		ID:            r.ID,
		FullName:      r.FullName,
		LicenseNumber: r.LicenseNumber,
		Specialty:     clinic.Specialty(r.Specialty),
		Email:         r.Email,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func fromAppointment(a clinic.Appointment) appointmentRow {
	return appointmentRow{
		ID:          a.ID,
		PatientID:   a.PatientID,
		DoctorID:    a.DoctorID,
		ScheduledAt: a.ScheduledAt,
		Status:      string(a.Status),
		Reason:      a.Reason,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (r appointmentRow) toDomain() clinic.Appointment {
	return clinic.Appointment{
		ID:          r.ID,
		PatientID:   r.PatientID,
		DoctorID:    r.DoctorID,
		ScheduledAt: r.ScheduledAt,
		Status:      clinic.AppointmentStatus(r.Status),
		Reason:      r.Reason,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r appointmentRow) toDetail() clinic.AppointmentDetail {
	return clinic.AppointmentDetail{
		Appointment: r.toDomain(),
		Patient:     r.Patient.toDomain(),
		Doctor:      r.Doctor.toDomain(),
	}
}

func fromHistory(h clinic.MedicalHistory) historyRow {
	return historyRow{
		PatientID:    h.PatientID,
		Allergies:    h.Allergies,
		Conditions:   h.Conditions,
		Observations: h.Observations,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

func (r historyRow) toDomain() clinic.MedicalHistory {
	return clinic.MedicalHistory{
		PatientID:    r.PatientID,
		Allergies:    r.Allergies,
		Conditions:   r.Conditions,
		Observations: r.Observations,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
