package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"clinical-records/internal/domain/clinic"
	"clinical-records/internal/platform/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Gateway) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := OpenGorm(db, logger.Nop())
	require.NoError(t, err)

	return db, mock, NewGateway(gdb)
}

const (
	patientID     = "11111111-1111-1111-1111-111111111111"
	doctorID      = "22222222-2222-2222-2222-222222222222"
	appointmentID = "33333333-3333-3333-3333-333333333333"
	unknownID     = "99999999-9999-9999-9999-999999999999"
)

var patientColumns = []string{"id", "full_name", "national_id", "birth_date", "phone", "email", "created_at", "updated_at"}

func samplePatient() clinic.Patient {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return clinic.Patient{
		ID:         patientID,
		FullName:   "Ana",
		NationalID: "1234567890123",
		BirthDate:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Phone:      "12345678",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestPatientStore_Create_Success(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "patients"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := gw.Stores().Patients.Create(context.Background(), samplePatient())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientStore_Create_UniqueViolation(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "patients"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uk_patients_national_id"})
	mock.ExpectRollback()

	err := gw.Stores().Patients.Create(context.Background(), samplePatient())

	assert.ErrorIs(t, err, clinic.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "uk_patients_national_id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientStore_GetByID_NotFound(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(patientColumns))

	_, err := gw.Stores().Patients.GetByID(context.Background(), unknownID)

	assert.ErrorIs(t, err, clinic.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientStore_GetByNationalID_Success(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	p := samplePatient()
	rows := sqlmock.NewRows(patientColumns).
		AddRow(p.ID, p.FullName, p.NationalID, p.BirthDate, p.Phone, p.Email, p.CreatedAt, p.UpdatedAt)

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE national_id = \$1`).
		WillReturnRows(rows)

	got, err := gw.Stores().Patients.GetByNationalID(context.Background(), p.NationalID)

	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Ana", got.FullName)
	assert.True(t, got.BirthDate.Equal(p.BirthDate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientStore_Delete_CascadesInOrder(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	id := samplePatient().ID

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "appointments" WHERE patient_id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "medical_histories" WHERE patient_id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "patients" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := gw.Stores().Patients.Delete(context.Background(), id)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientStore_Delete_RollsBackOnFailure(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "medical_histories"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := gw.Stores().Patients.Delete(context.Background(), patientID)

	assert.ErrorIs(t, err, clinic.ErrStorageFailure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorStore_Delete_CascadesAppointments(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "appointments" WHERE doctor_id = \$1`).
		WithArgs(doctorID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "doctors" WHERE id = \$1`).
		WithArgs(doctorID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := gw.Stores().Doctors.Delete(context.Background(), doctorID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentStore_Create_DoubleBookingIsConflict(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "appointments"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uk_appointments_doctor_time"})
	mock.ExpectRollback()

	err := gw.Stores().Appointments.Create(context.Background(), clinic.Appointment{
		ID:          appointmentID,
		PatientID:   patientID,
		DoctorID:    doctorID,
		ScheduledAt: time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC),
		Status:      clinic.StatusScheduled,
	})

	assert.ErrorIs(t, err, clinic.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentStore_Create_MissingReferenceIsConflict(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "appointments"`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_appointments_patient"})
	mock.ExpectRollback()

	err := gw.Stores().Appointments.Create(context.Background(), clinic.Appointment{ID: appointmentID, PatientID: unknownID, DoctorID: doctorID})

	assert.ErrorIs(t, err, clinic.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentStore_Update_NotFound(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := gw.Stores().Appointments.Update(context.Background(), clinic.Appointment{ID: unknownID, Status: clinic.StatusAttended})

	assert.ErrorIs(t, err, clinic.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryStore_GetByID_NotFound(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "medical_histories" WHERE patient_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"patient_id", "allergies", "conditions", "observations", "created_at", "updated_at"}))

	_, err := gw.Stores().Histories.GetByID(context.Background(), unknownID)

	assert.ErrorIs(t, err, clinic.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGateway_Do_SharesOneTransaction(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	// una sola transacción aunque se usen dos stores
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "patients"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "medical_histories"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p := samplePatient()
	err := gw.Do(context.Background(), func(tx clinic.Stores) error {
		if err := tx.Patients.Create(context.Background(), p); err != nil {
			return err
		}
		return tx.Histories.Create(context.Background(), clinic.MedicalHistory{PatientID: p.ID})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGateway_Do_ReturnsCallbackErrorUnchanged(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "patients"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := gw.Do(context.Background(), func(tx clinic.Stores) error {
		if err := tx.Patients.Create(context.Background(), samplePatient()); err != nil {
			return err
		}
		return boom
	})

	assert.Same(t, boom, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStores_MalformedIDNeverReachesDatabase(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	ctx := context.Background()
	st := gw.Stores()
	const bad = "never-existed"

	// borrar un id imposible es un no-op, igual que uno inexistente
	assert.NoError(t, st.Patients.Delete(ctx, bad))
	assert.NoError(t, st.Doctors.Delete(ctx, bad))
	assert.NoError(t, st.Appointments.Delete(ctx, bad))
	assert.NoError(t, st.Histories.Delete(ctx, bad))

	_, err := st.Patients.GetByID(ctx, bad)
	assert.ErrorIs(t, err, clinic.ErrNotFound)
	_, err = st.Doctors.GetByID(ctx, bad)
	assert.ErrorIs(t, err, clinic.ErrNotFound)
	_, err = st.Appointments.GetByID(ctx, bad)
	assert.ErrorIs(t, err, clinic.ErrNotFound)
	_, err = st.Histories.GetByID(ctx, bad)
	assert.ErrorIs(t, err, clinic.ErrNotFound)

	assert.ErrorIs(t, st.Patients.Update(ctx, clinic.Patient{ID: bad}), clinic.ErrNotFound)
	assert.ErrorIs(t, st.Doctors.Update(ctx, clinic.Doctor{ID: bad}), clinic.ErrNotFound)
	assert.ErrorIs(t, st.Appointments.Update(ctx, clinic.Appointment{ID: bad}), clinic.ErrNotFound)
	assert.ErrorIs(t, st.Histories.Update(ctx, clinic.MedicalHistory{PatientID: bad}), clinic.ErrNotFound)

	byPatient, err := st.Appointments.ListByPatient(ctx, bad)
	require.NoError(t, err)
	assert.Empty(t, byPatient)
	upcoming, err := st.Appointments.ListUpcomingByDoctor(ctx, bad, time.Now())
	require.NoError(t, err)
	assert.Empty(t, upcoming)

	err = st.Appointments.Create(ctx, clinic.Appointment{ID: appointmentID, PatientID: bad, DoctorID: doctorID})
	assert.ErrorIs(t, err, clinic.ErrConflict)
	err = st.Histories.Create(ctx, clinic.MedicalHistory{PatientID: bad})
	assert.ErrorIs(t, err, clinic.ErrConflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_DeletePatient_MalformedIDIsNoop(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	svc := clinic.NewService(gw, logger.Nop())
	require.NoError(t, svc.DeletePatient(context.Background(), "never-existed"))

	_, err := svc.GetPatient(context.Background(), "never-existed")
	assert.ErrorIs(t, err, clinic.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var detailColumns = []string{
	"id", "patient_id", "doctor_id", "scheduled_at", "status", "reason", "created_at", "updated_at",
	"Patient__id", "Patient__full_name", "Patient__national_id", "Patient__birth_date",
	"Patient__phone", "Patient__email", "Patient__created_at", "Patient__updated_at",
	"Doctor__id", "Doctor__full_name", "Doctor__license_number", "Doctor__specialty",
	"Doctor__email", "Doctor__created_at", "Doctor__updated_at",
}

const joinsSQL = `SELECT .* FROM "appointments" ` +
	`LEFT JOIN "patients" "Patient" ON "appointments"\."patient_id" = "Patient"\."id" ` +
	`LEFT JOIN "doctors" "Doctor" ON "appointments"\."doctor_id" = "Doctor"\."id"`

const detailOrderSQL = `ORDER BY "appointments"\."scheduled_at", "appointments"\."id"`

func detailRows(at time.Time) *sqlmock.Rows {
	p := samplePatient()
	return sqlmock.NewRows(detailColumns).AddRow(
		appointmentID, p.ID, doctorID, at, "scheduled", "control", p.CreatedAt, p.UpdatedAt,
		p.ID, p.FullName, p.NationalID, p.BirthDate, p.Phone, p.Email, p.CreatedAt, p.UpdatedAt,
		doctorID, "Dr. X", "L1", "cardiology", "", p.CreatedAt, p.UpdatedAt,
	)
}

func assertJoinedParties(t *testing.T, items []clinic.AppointmentDetail, at time.Time) {
	t.Helper()
	require.Len(t, items, 1)
	got := items[0]
	assert.Equal(t, appointmentID, got.ID)
	assert.True(t, got.ScheduledAt.Equal(at))
	assert.Equal(t, patientID, got.Patient.ID)
	assert.Equal(t, "Ana", got.Patient.FullName)
	assert.Equal(t, "1234567890123", got.Patient.NationalID)
	assert.Equal(t, doctorID, got.Doctor.ID)
	assert.Equal(t, "Dr. X", got.Doctor.FullName)
	assert.Equal(t, clinic.SpecialtyCardiology, got.Doctor.Specialty)
}

func TestAppointmentStore_ListDetailed_JoinsPatientAndDoctor(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	at := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(joinsSQL + ` ` + detailOrderSQL).
		WillReturnRows(detailRows(at))

	items, err := gw.Stores().Appointments.ListDetailed(context.Background())

	require.NoError(t, err)
	assertJoinedParties(t, items, at)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentStore_ListByPatient_FiltersOnJoinedQuery(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	at := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(joinsSQL + ` WHERE "appointments"\."patient_id" = \$1 ` + detailOrderSQL).
		WithArgs(patientID).
		WillReturnRows(detailRows(at))

	items, err := gw.Stores().Appointments.ListByPatient(context.Background(), patientID)

	require.NoError(t, err)
	assertJoinedParties(t, items, at)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentStore_ListUpcomingByDoctor_StrictlyAfter(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	after := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	at := after.Add(time.Hour)
	mock.ExpectQuery(joinsSQL + ` WHERE "appointments"\."doctor_id" = \$1 AND "appointments"\."scheduled_at" > \$2 ` + detailOrderSQL).
		WithArgs(doctorID, after).
		WillReturnRows(detailRows(at))

	items, err := gw.Stores().Appointments.ListUpcomingByDoctor(context.Background(), doctorID, after)

	require.NoError(t, err)
	assertJoinedParties(t, items, at)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentStore_ListBetween_InclusiveRange(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	from := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	mock.ExpectQuery(joinsSQL + ` WHERE "appointments"\."scheduled_at" BETWEEN \$1 AND \$2 ` + detailOrderSQL).
		WithArgs(from, to).
		WillReturnRows(detailRows(from))

	items, err := gw.Stores().Appointments.ListBetween(context.Background(), from, to)

	require.NoError(t, err)
	assertJoinedParties(t, items, from)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientStore_ListWithAppointments_ReadsOneSnapshot(t *testing.T) {
	db, mock, gw := setupMockDB(t)
	defer db.Close()

	ana := samplePatient()
	beto := samplePatient()
	beto.ID = unknownID
	beto.FullName = "Beto"
	beto.NationalID = "9876543210987"
	at := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "patients" ORDER BY full_name, id`).
		WillReturnRows(sqlmock.NewRows(patientColumns).
			AddRow(ana.ID, ana.FullName, ana.NationalID, ana.BirthDate, ana.Phone, ana.Email, ana.CreatedAt, ana.UpdatedAt).
			AddRow(beto.ID, beto.FullName, beto.NationalID, beto.BirthDate, beto.Phone, beto.Email, beto.CreatedAt, beto.UpdatedAt))
	mock.ExpectQuery(`SELECT \* FROM "appointments" ORDER BY scheduled_at, id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient_id", "doctor_id", "scheduled_at", "status", "reason", "created_at", "updated_at"}).
			AddRow(appointmentID, ana.ID, doctorID, at, "scheduled", "control", ana.CreatedAt, ana.UpdatedAt))
	mock.ExpectCommit()

	report, err := gw.Stores().Patients.ListWithAppointments(context.Background())

	require.NoError(t, err)
	require.Len(t, report, 2)
	assert.Equal(t, "Ana", report[0].Patient.FullName)
	require.Len(t, report[0].Appointments, 1)
	assert.Equal(t, appointmentID, report[0].Appointments[0].ID)
	assert.Equal(t, "Beto", report[1].Patient.FullName)
	assert.NotNil(t, report[1].Appointments)
	assert.Empty(t, report[1].Appointments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapErr(t *testing.T) {
	cases := []struct {
		name string
		in   error
		dup  error
		want error
	}{
		{"unique on natural key", &pgconn.PgError{Code: "23505"}, clinic.ErrDuplicateKey, clinic.ErrDuplicateKey},
		{"unique on appointment", &pgconn.PgError{Code: "23505"}, clinic.ErrConflict, clinic.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: "23503"}, clinic.ErrDuplicateKey, clinic.ErrConflict},
		{"domain passthrough", clinic.ErrNotFound, clinic.ErrDuplicateKey, clinic.ErrNotFound},
		{"other", errors.New("disk full"), clinic.ErrDuplicateKey, clinic.ErrStorageFailure},
		{"unique on a read", &pgconn.PgError{Code: "23505"}, clinic.ErrStorageFailure, clinic.ErrStorageFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapErr(tc.in, tc.dup), tc.want)
		})
	}

	assert.NoError(t, mapErr(nil, clinic.ErrDuplicateKey))
}
