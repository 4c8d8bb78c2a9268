package postgres

import (
	"context"
	"fmt"
	"time"

	"clinical-records/internal/domain/clinic"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentStore struct {
	db *gorm.DB
}

// En citas, tanto el índice único (doctor_id, scheduled_at) como las FKs se reportan como ErrConflict.
func (s *appointmentStore) Create(ctx context.Context, a clinic.Appointment) error {
	if !validID(a.PatientID) || !validID(a.DoctorID) {
		return fmt.Errorf("%w: unknown patient %q or doctor %q", clinic.ErrConflict, a.PatientID, a.DoctorID)
	}
	row := fromAppointment(a)
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&row).Error
	})
	return mapErr(err, clinic.ErrConflict)
}

func (s *appointmentStore) Update(ctx context.Context, a clinic.Appointment) error {
	if !validID(a.ID) {
		return clinic.ErrNotFound
	}
	row := fromAppointment(a)
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		res := tx.Model(&appointmentRow{}).Where("id = ?", row.ID).Updates(map[string]any{
			"patient_id":   row.PatientID,
			"doctor_id":    row.DoctorID,
			"scheduled_at": row.ScheduledAt,
			"status":       row.Status,
			"reason":       row.Reason,
			"updated_at":   row.UpdatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return clinic.ErrNotFound
		}
		return nil
	})
	return mapErr(err, clinic.ErrConflict)
}

func (s *appointmentStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&appointmentRow{}).Error
	})
	return mapErr(err, clinic.ErrConflict)
}

func (s *appointmentStore) GetByID(ctx context.Context, id string) (clinic.Appointment, error) {
	if !validID(id) {
		return clinic.Appointment{}, clinic.ErrNotFound
	}
	var row appointmentRow
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		return clinic.Appointment{}, readErr(err)
	}
	return row.toDomain(), nil
}

func (s *appointmentStore) List(ctx context.Context) ([]clinic.Appointment, error) {
	var rows []appointmentRow
	err := s.db.WithContext(ctx).Order("scheduled_at, id").Find(&rows).Error
	if err != nil {
		return nil, readErr(err)
	}

	out := make([]clinic.Appointment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *appointmentStore) ListDetailed(ctx context.Context) ([]clinic.AppointmentDetail, error) {
	return s.detailed(ctx, func(q *gorm.DB) *gorm.DB { return q })
}

// Con un id mal formado los listados devuelven vacío, igual que para un id inexistente.
func (s *appointmentStore) ListByPatient(ctx context.Context, patientID string) ([]clinic.AppointmentDetail, error) {
	if !validID(patientID) {
		return []clinic.AppointmentDetail{}, nil
	}
	return s.detailed(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where(`"appointments"."patient_id" = ?`, patientID)
	})
}

func (s *appointmentStore) ListUpcomingByDoctor(ctx context.Context, doctorID string, after time.Time) ([]clinic.AppointmentDetail, error) {
	if !validID(doctorID) {
		return []clinic.AppointmentDetail{}, nil
	}
	return s.detailed(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where(`"appointments"."doctor_id" = ? AND "appointments"."scheduled_at" > ?`, doctorID, after)
	})
}

func (s *appointmentStore) ListBetween(ctx context.Context, from, to time.Time) ([]clinic.AppointmentDetail, error) {
	return s.detailed(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where(`"appointments"."scheduled_at" BETWEEN ? AND ?`, from, to)
	})
}

// detailed carga paciente y médico con JOIN en la misma consulta.
func (s *appointmentStore) detailed(ctx context.Context, filter func(*gorm.DB) *gorm.DB) ([]clinic.AppointmentDetail, error) {
	var rows []appointmentRow
	q := s.db.WithContext(ctx).Joins("Patient").Joins("Doctor")
	err := filter(q).
		Order(`"appointments"."scheduled_at", "appointments"."id"`).
		Find(&rows).Error
	if err != nil {
		return nil, readErr(err)
	}

	out := make([]clinic.AppointmentDetail, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDetail())
	}
	return out, nil
}
