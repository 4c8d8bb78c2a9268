package postgres

import (
	"context"
	"fmt"

	"clinical-records/internal/domain/clinic"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type historyStore struct {
	db *gorm.DB
}

// Create: la PK duplicada es ErrDuplicateKey; un paciente inexistente viola la FK (ErrConflict).
func (s *historyStore) Create(ctx context.Context, h clinic.MedicalHistory) error {
	if !validID(h.PatientID) {
		return fmt.Errorf("%w: unknown patient %q", clinic.ErrConflict, h.PatientID)
	}
	row := fromHistory(h)
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&row).Error
	})
	return mapErr(err, clinic.ErrDuplicateKey)
}

func (s *historyStore) Update(ctx context.Context, h clinic.MedicalHistory) error {
	if !validID(h.PatientID) {
		return clinic.ErrNotFound
	}
	row := fromHistory(h)
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		res := tx.Model(&historyRow{}).Where("patient_id = ?", row.PatientID).Updates(map[string]any{
			"allergies":    row.Allergies,
			"conditions":   row.Conditions,
			"observations": row.Observations,
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
	return mapErr(err, clinic.ErrDuplicateKey)
}

func (s *historyStore) Delete(ctx context.Context, patientID string) error {
	if !validID(patientID) {
		return nil
	}
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Where("patient_id = ?", patientID).Delete(&historyRow{}).Error
	})
	return mapErr(err, clinic.ErrConflict)
}

func (s *historyStore) GetByID(ctx context.Context, patientID string) (clinic.MedicalHistory, error) {
	if !validID(patientID) {
		return clinic.MedicalHistory{}, clinic.ErrNotFound
	}
	var row historyRow
	err := s.db.WithContext(ctx).Where("patient_id = ?", patientID).Take(&row).Error
	if err != nil {
		return clinic.MedicalHistory{}, readErr(err)
	}
	return row.toDomain(), nil
}

func (s *historyStore) List(ctx context.Context) ([]clinic.MedicalHistory, error) {
	var rows []historyRow
	if err := s.db.WithContext(ctx).Order("patient_id").Find(&rows).Error; err != nil {
		return nil, readErr(err)
	}

	out := make([]clinic.MedicalHistory, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}
