package clinic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinical-records/internal/platform/logger"

	"github.com/google/uuid"
)

// Service aplica las reglas que cruzan stores (unicidad, existencia, relaciones)
// y ejecuta cada operación compuesta como una sola unidad de trabajo.
type Service struct {
	gw    Gateway
	log   logger.Logger
	now   func() time.Time
	newID func() string
}

func NewService(gw Gateway, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		gw:    gw,
		log:   log.With(map[string]any{"component": "clinic"}),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type RegisterPatientInput struct {
	FullName   string
	NationalID string
	BirthDate  time.Time
	Phone      string
	Email      string
}

func (s *Service) RegisterPatient(ctx context.Context, in RegisterPatientInput) (Patient, error) {
	now := s.now()
	p := Patient{
		ID:         s.newID(),
		FullName:   trimmed(in.FullName),
		NationalID: trimmed(in.NationalID),
		BirthDate:  dateOnly(in.BirthDate),
		Phone:      trimmed(in.Phone),
		Email:      trimmed(in.Email),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := validatePatient(p, now); err != nil {
		return Patient{}, err
	}

	err := s.gw.Do(ctx, func(tx Stores) error {
		_, err := tx.Patients.GetByNationalID(ctx, p.NationalID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: patient with national id %s already exists", ErrDuplicateKey, p.NationalID)
		case !errors.Is(err, ErrNotFound):
			return err
		}
		return tx.Patients.Create(ctx, p)
	})
	if err != nil {
		return Patient{}, err
	}

	s.log.Info("patient registered", map[string]any{"patient_id": p.ID})
	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (Patient, error) {
	return s.gw.Stores().Patients.GetByID(ctx, trimmed(id))
}

func (s *Service) ListPatients(ctx context.Context) ([]Patient, error) {
	return s.gw.Stores().Patients.List(ctx)
}

// PatientsWithAppointments devuelve cada paciente con sus citas ya cargadas.
func (s *Service) PatientsWithAppointments(ctx context.Context) ([]PatientAppointments, error) {
	return s.gw.Stores().Patients.ListWithAppointments(ctx)
}

// DeletePatient borra el paciente junto con su historial y sus citas.
// Un ID inexistente no es error.
func (s *Service) DeletePatient(ctx context.Context, id string) error {
	id = trimmed(id)
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.gw.Stores().Patients.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("patient deleted", map[string]any{"patient_id": id})
	return nil
}

type RegisterDoctorInput struct {
	FullName      string
	LicenseNumber string
	Specialty     Specialty
	Email         string
}

func (s *Service) RegisterDoctor(ctx context.Context, in RegisterDoctorInput) (Doctor, error) {
	now := s.now()
	d := Doctor{
		ID:            s.newID(),
		FullName:      trimmed(in.FullName),
		LicenseNumber: trimmed(in.LicenseNumber),
		Specialty:     Specialty(trimmed(string(in.Specialty))),
		Email:         trimmed(in.Email),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validateDoctor(d); err != nil {
		return Doctor{}, err
	}

	err := s.gw.Do(ctx, func(tx Stores) error {
		_, err := tx.Doctors.GetByLicense(ctx, d.LicenseNumber)
		switch {
		case err == nil:
			return fmt.Errorf("%w: doctor with license %s already exists", ErrDuplicateKey, d.LicenseNumber)
		case !errors.Is(err, ErrNotFound):
			return err
		}
		return tx.Doctors.Create(ctx, d)
	})
	if err != nil {
		return Doctor{}, err
	}

	s.log.Info("doctor registered", map[string]any{"doctor_id": d.ID, "specialty": string(d.Specialty)})
	return d, nil
}

func (s *Service) GetDoctor(ctx context.Context, id string) (Doctor, error) {
	return s.gw.Stores().Doctors.GetByID(ctx, trimmed(id))
}

func (s *Service) ListDoctors(ctx context.Context) ([]Doctor, error) {
	return s.gw.Stores().Doctors.List(ctx)
}

// DeleteDoctor borra el médico y sus citas. Un ID inexistente no es error.
func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	id = trimmed(id)
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.gw.Stores().Doctors.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("doctor deleted", map[string]any{"doctor_id": id})
	return nil
}

// missing envuelve ErrNotFound con el recurso que faltó; otros errores pasan igual.
func missing(err error, kind, id string) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return err
}
