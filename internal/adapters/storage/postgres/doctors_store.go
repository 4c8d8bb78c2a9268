package postgres

import (
	"context"

	"clinical-records/internal/domain/clinic"

	"gorm.io/gorm"
)

type doctorStore struct {
	db *gorm.DB
}

func (s *doctorStore) Create(ctx context.Context, d clinic.Doctor) error {
	row := fromDoctor(d)
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	return mapErr(err, clinic.ErrDuplicateKey)
}

func (s *doctorStore) Update(ctx context.Context, d clinic.Doctor) error {
	if !validID(d.ID) {
		return clinic.ErrNotFound
	}
	row := fromDoctor(d)
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		res := tx.Model(&doctorRow{}).Where("id = ?", row.ID).Updates(map[string]any{
			"full_name":      row.FullName,
			"license_number": row.LicenseNumber,
			"specialty":      row.Specialty,
			"email":          row.Email,
			"updated_at":     row.UpdatedAt,
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

// Delete borra primero las citas del médico y después el médico.
func (s *doctorStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	err := atomic(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", id).Delete(&appointmentRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&doctorRow{}).Error
	})
	return mapErr(err, clinic.ErrConflict)
}

func (s *doctorStore) GetByID(ctx context.Context, id string) (clinic.Doctor, error) {
	if !validID(id) {
		return clinic.Doctor{}, clinic.ErrNotFound
	}
	var row doctorRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return clinic.Doctor{}, readErr(err)
	}
	return row.toDomain(), nil
}

func (s *doctorStore) GetByLicense(ctx context.Context, licenseNumber string) (clinic.Doctor, error) {
	var row doctorRow
	if err := s.db.WithContext(ctx).Where("license_number = ?", licenseNumber).Take(&row).Error; err != nil {
		return clinic.Doctor{}, readErr(err)
	}
	return row.toDomain(), nil
}

func (s *doctorStore) List(ctx context.Context) ([]clinic.Doctor, error) {
	var rows []doctorRow
	if err := s.db.WithContext(ctx).Order("full_name, id").Find(&rows).Error; err != nil {
		return nil, readErr(err)
	}

	out := make([]clinic.Doctor, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}
