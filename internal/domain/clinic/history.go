package clinic

import (
	"context"
	"errors"
)

type HistoryInput struct {
	Allergies    string
	Conditions   string
	Observations string
}

// SaveMedicalHistory crea el historial en la primera edición (con el ID del paciente)
// o reemplaza los tres campos de texto si ya existe. Lectura y escritura van en la misma transacción.
func (s *Service) SaveMedicalHistory(ctx context.Context, patientID string, in HistoryInput) (MedicalHistory, error) {
	patientID = trimmed(patientID)
	if patientID == "" {
		return MedicalHistory{}, ErrInvalidInput
	}

	var (
		h       MedicalHistory
		created bool
	)
	err := s.gw.Do(ctx, func(tx Stores) error {
		p, err := tx.Patients.GetByID(ctx, patientID)
		if err != nil {
			return missing(err, "patient", patientID)
		}

		now := s.now()
		cur, err := tx.Histories.GetByID(ctx, p.ID)
		switch {
		case errors.Is(err, ErrNotFound):
			created = true
			cur = MedicalHistory{PatientID: p.ID, CreatedAt: now}
		case err != nil:
			return err
		}

		cur.Allergies = trimmed(in.Allergies)
		cur.Conditions = trimmed(in.Conditions)
		cur.Observations = trimmed(in.Observations)
		cur.UpdatedAt = now

		if created {
			err = tx.Histories.Create(ctx, cur)
		} else {
			err = tx.Histories.Update(ctx, cur)
		}
		if err != nil {
			return err
		}
		h = cur
		return nil
	})
	if err != nil {
		return MedicalHistory{}, err
	}

	s.log.Info("medical history saved", map[string]any{"patient_id": h.PatientID, "created": created})
	return h, nil
}

// MedicalHistory devuelve ErrNotFound si el paciente no tiene historial registrado.
func (s *Service) MedicalHistory(ctx context.Context, patientID string) (MedicalHistory, error) {
	return s.gw.Stores().Histories.GetByID(ctx, trimmed(patientID))
}
