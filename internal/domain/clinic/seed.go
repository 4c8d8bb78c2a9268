package clinic

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// SeedDemoData carga el set de demostración (2 pacientes, 2 médicos, historiales y 2 citas)
// usando las mismas operaciones del servicio. Si el primer paciente ya existe no hace nada.
func (s *Service) SeedDemoData(ctx context.Context) error {
	_, err := s.gw.Stores().Patients.GetByNationalID(ctx, "1234567890123")
	switch {
	case err == nil:
		s.log.Info("demo data already present", nil)
		return nil
	case !errors.Is(err, ErrNotFound):
		return err
	}

	juan, err := s.RegisterPatient(ctx, RegisterPatientInput{
		FullName:   "Juan Carlos Pérez",
		NationalID: "1234567890123",
		BirthDate:  time.Date(1985, time.May, 15, 0, 0, 0, 0, time.UTC),
		Phone:      "12345678",
		Email:      "juan@email.com",
	})
	if err != nil {
		return fmt.Errorf("seed patient: %w", err)
	}
	maria, err := s.RegisterPatient(ctx, RegisterPatientInput{
		FullName:   "María Elena García",
		NationalID: "9876543210987",
		BirthDate:  time.Date(1990, time.August, 20, 0, 0, 0, 0, time.UTC),
		Phone:      "87654321",
		Email:      "maria@email.com",
	})
	if err != nil {
		return fmt.Errorf("seed patient: %w", err)
	}

	roberto, err := s.RegisterDoctor(ctx, RegisterDoctorInput{
		FullName:      "Dr. Roberto Hernández",
		LicenseNumber: "12345",
		Specialty:     SpecialtyCardiology,
		Email:         "roberto@clinica.com",
	})
	if err != nil {
		return fmt.Errorf("seed doctor: %w", err)
	}
	ana, err := s.RegisterDoctor(ctx, RegisterDoctorInput{
		FullName:      "Dra. Ana Sofía López",
		LicenseNumber: "67890",
		Specialty:     SpecialtyPediatrics,
		Email:         "ana@clinica.com",
	})
	if err != nil {
		return fmt.Errorf("seed doctor: %w", err)
	}

	if _, err := s.SaveMedicalHistory(ctx, juan.ID, HistoryInput{
		Allergies:    "Alergia a penicilina",
		Conditions:   "Hipertensión familiar",
		Observations: "Paciente estable",
	}); err != nil {
		return fmt.Errorf("seed history: %w", err)
	}
	if _, err := s.SaveMedicalHistory(ctx, maria.ID, HistoryInput{
		Allergies:    "Sin alergias conocidas",
		Conditions:   "Sin antecedentes relevantes",
		Observations: "Primera consulta",
	}); err != nil {
		return fmt.Errorf("seed history: %w", err)
	}

	today := dateOnly(s.now())
	if _, err := s.ScheduleAppointment(ctx, ScheduleInput{
		PatientID:   juan.ID,
		DoctorID:    roberto.ID,
		ScheduledAt: today.AddDate(0, 0, 1).Add(10 * time.Hour),
		Reason:      "Control cardiológico",
	}); err != nil {
		return fmt.Errorf("seed appointment: %w", err)
	}
	if _, err := s.ScheduleAppointment(ctx, ScheduleInput{
		PatientID:   maria.ID,
		DoctorID:    ana.ID,
		ScheduledAt: today.AddDate(0, 0, 2).Add(15*time.Hour + 30*time.Minute),
		Reason:      "Consulta pediátrica",
	}); err != nil {
		return fmt.Errorf("seed appointment: %w", err)
	}

	s.log.Info("demo data loaded", map[string]any{"patients": 2, "doctors": 2, "appointments": 2})
	return nil
}
