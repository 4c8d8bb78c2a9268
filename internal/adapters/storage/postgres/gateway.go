package postgres

import (
	"context"
	"errors"
	"fmt"

	"clinical-records/internal/domain/clinic"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Gateway implementa clinic.Gateway sobre gorm.
type Gateway struct {
	db *gorm.DB
}

func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

var _ clinic.Gateway = (*Gateway)(nil)

func (g *Gateway) Stores() clinic.Stores {
	return storesFor(g.db)
}

func (g *Gateway) Do(ctx context.Context, fn func(tx clinic.Stores) error) error {
	var fnErr error
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(storesFor(tx))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		// fn terminó bien pero el commit falló
		return fmt.Errorf("%w: %w", clinic.ErrStorageFailure, err)
	}
	return nil
}

func storesFor(db *gorm.DB) clinic.Stores {
	return clinic.Stores{
		Patients:     &patientStore{db: db},
		Doctors:      &doctorStore{db: db},
		Appointments: &appointmentStore{db: db},
		Histories:    &historyStore{db: db},
	}
}

// atomic corre fn en su propia transacción, o en la de Do si db ya es una.
func atomic(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// mapErr traduce errores de gorm/pgx a los errores del dominio.
// dup es el error a usar ante una violación de unicidad en esta tabla.
func mapErr(err error, dup error) error {
	if err == nil {
		return nil
	}
	if isDomainErr(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return clinic.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", dup, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", clinic.ErrConflict, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%w: %w", clinic.ErrStorageFailure, err)
}

// readErr traduce errores de lecturas, donde no hay violaciones de unicidad.
func readErr(err error) error {
	return mapErr(err, clinic.ErrStorageFailure)
}

// validID: las columnas de id son uuid; un id mal formado no puede existir
// y se resuelve sin consultar (Postgres respondería 22P02).
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func isDomainErr(err error) bool {
	for _, target := range []error{
		clinic.ErrInvalidInput,
		clinic.ErrDuplicateKey,
		clinic.ErrNotFound,
		clinic.ErrInvalidTime,
		clinic.ErrConflict,
		clinic.ErrStorageFailure,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
