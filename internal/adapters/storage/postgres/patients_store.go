package postgres

import (
	"context"

	"clinical-records/internal/domain/clinic"

	"gorm.io/gorm"
)

type patientStore struct {
	db *gorm.DB
}

func (s *patientStore) Create(ctx context.Context, p clinic.Patient) error {
	row := fromPatient(p)
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	return mapErr(err, clinic.ErrDuplicateKey)
}

func (s *patientStore) Update(ctx context.Context, p clinic.Patient) error {
	if !validID(p.ID) {
		return clinic.ErrNotFound
	}
	row := fromPatient(p)
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		res := tx.Model(&patientRow{}).Where("id = ?", row.ID).Updates(map[string]any{
			"full_name":   row.FullName,
			"national_id": row.NationalID,
			"birth_date":  row.BirthDate,
			"phone":       row.Phone,
			"email":       row.Email,
			"updated_at":  row.UpdatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return clinic.ErrNotFound
		}
		return nil
	})
	return mapErr(err, clinic.ErrDuplicateKey)
}

// Delete borra explícitamente, en la misma transacción: citas, historial y paciente.
func (s *patientStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", id).Delete(&appointmentRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", id).Delete(&historyRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&patientRow{}).Error
	})
	return mapErr(err, clinic.ErrConflict)
}

func (s *patientStore) GetByID(ctx context.Context, id string) (clinic.Patient, error) {
	if !validID(id) {
		return clinic.Patient{}, clinic.ErrNotFound
	}
	var row patientRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return clinic.Patient{}, readErr(err)
	}
	return row.toDomain(), nil
}

func (s *patientStore) GetByNationalID(ctx context.Context, nationalID string) (clinic.Patient, error) {
	var row patientRow
	if err := s.db.WithContext(ctx).Where("national_id = ?", nationalID).Take(&row).Error; err != nil {
		return clinic.Patient{}, readErr(err)
	}
	return row.toDomain(), nil
}

func (s *patientStore) List(ctx context.Context) ([]clinic.Patient, error) {
	var rows []patientRow
	if err := s.db.WithContext(ctx).Order("full_name, id").Find(&rows).Error; err != nil {
		return nil, readErr(err)
	}

	out := make([]clinic.Patient, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// ListWithAppointments hace dos consultas (pacientes y citas ordenadas) dentro de una
// misma transacción y arma el resultado en memoria, sin carga perezosa.
func (s *patientStore) ListWithAppointments(ctx context.Context) ([]clinic.PatientAppointments, error) {
	var (
		patients []patientRow
		appts    []appointmentRow
	)
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Order("full_name, id").Find(&patients).Error; err != nil {
			return err
		}
		return tx.Order("scheduled_at, id").Find(&appts).Error
	})
	if err != nil {
		return nil, readErr(err)
	}

	byPatient := make(map[string][]clinic.Appointment, len(patients))
	for _, r := range appts {
		byPatient[r.PatientID] = append(byPatient[r.PatientID], r.toDomain())
	}

	out := make([]clinic.PatientAppointments, 0, len(patients))
	for _, p := range patients {
		items := byPatient[p.ID]
		if items == nil {
			items = []clinic.Appointment{}
		}
		out = append(out, clinic.PatientAppointments{Patient: p.toDomain(), Appointments: items})
	}
	return out, nil
}
