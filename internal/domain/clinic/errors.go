package clinic

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateKey: clave natural repetida (DPI del paciente, colegiado del médico).
	ErrDuplicateKey = errors.New("duplicate key")
	ErrNotFound     = errors.New("not found")
	ErrInvalidTime  = errors.New("appointment time must be in the future")

	// ErrConflict: violación de restricción en el almacenamiento (médico doble-agendado, FK).
	ErrConflict = errors.New("conflict")

	// ErrStorageFailure: la unidad de trabajo no pudo confirmarse; ya se hizo rollback.
	ErrStorageFailure = errors.New("storage failure")
)
