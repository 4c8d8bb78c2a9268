package clinic

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type registerDoctorRequest struct {
	FullName      string    `json:"full_name"`
	LicenseNumber string    `json:"license_number"`
	Specialty     Specialty `json:"specialty"`
	Email         string    `json:"email"`
}

type doctorResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	LicenseNumber string    `json:"license_number"`
	Specialty     Specialty `json:"specialty"`
	Email         string    `json:"email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type scheduleRequest struct {
	PatientID   string `json:"patient_id"`
	DoctorID    string `json:"doctor_id"`
	ScheduledAt string `json:"scheduled_at"` // RFC3339
	Reason      string `json:"reason"`
}

type changeStatusRequest struct {
	Status AppointmentStatus `json:"status"`
}

type appointmentResponse struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patient_id"`
	DoctorID    string            `json:"doctor_id"`
	ScheduledAt time.Time         `json:"scheduled_at"`
	Status      AppointmentStatus `json:"status"`
	Reason      string            `json:"reason"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type appointmentDetailResponse struct {
	appointmentResponse
	Patient patientResponse `json:"patient"`
	Doctor  doctorResponse  `json:"doctor"`
}

// registerDoctorHandler godoc
// @Summary Registrar médico
// @Description Registra un médico. El número de colegiado debe ser único.
// @Tags doctors
// @Accept json
// @Produce json
// @Param payload body registerDoctorRequest true "Datos del médico"
// @Success 201 {object} doctorResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 409 {string} string "duplicate license"
// @Router /doctors [post]
func registerDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerDoctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.RegisterDoctor(r.Context(), RegisterDoctorInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDoctorResponse(d))
	}
}

// listDoctorsHandler godoc
// @Summary Listar médicos
// @Tags doctors
// @Produce json
// @Success 200 {array} doctorResponse
// @Router /doctors [get]
func listDoctorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListDoctors(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]doctorResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDoctorResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getDoctorHandler godoc
// @Summary Obtener médico
// @Tags doctors
// @Produce json
// @Param doctorID path string true "ID del médico"
// @Success 200 {object} doctorResponse
// @Failure 404 {string} string "not found"
// @Router /doctors/{doctorID} [get]
func getDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetDoctor(r.Context(), chi.URLParam(r, "doctorID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorResponse(d))
	}
}

// deleteDoctorHandler godoc
// @Summary Eliminar médico
// @Description Elimina el médico y sus citas. Si el ID no existe no hace nada.
// @Tags doctors
// @Param doctorID path string true "ID del médico"
// @Success 204
// @Router /doctors/{doctorID} [delete]
func deleteDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteDoctor(r.Context(), chi.URLParam(r, "doctorID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listUpcomingAppointmentsHandler godoc
// @Summary Próximas citas de un médico
// @Tags doctors
// @Produce json
// @Param doctorID path string true "ID del médico"
// @Success 200 {array} appointmentDetailResponse
// @Router /doctors/{doctorID}/appointments/upcoming [get]
func listUpcomingAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.UpcomingDoctorAppointments(r.Context(), chi.URLParam(r, "doctorID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDetailResponses(items))
	}
}

// scheduleAppointmentHandler godoc
// @Summary Agendar cita
// @Description Agenda una cita en estado scheduled. scheduled_at (RFC3339) debe ser futura y el médico no puede tener otra cita a la misma hora.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body scheduleRequest true "Datos de la cita"
// @Success 201 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / scheduled_at inválido"
// @Failure 404 {string} string "patient or doctor not found"
// @Failure 409 {string} string "doctor already booked"
// @Failure 422 {string} string "scheduled_at not in the future"
// @Router /appointments [post]
func scheduleAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		at, err := time.Parse(time.RFC3339, strings.TrimSpace(req.ScheduledAt))
		if err != nil {
			http.Error(w, "scheduled_at must be RFC3339", http.StatusBadRequest)
			return
		}

		a, err := svc.ScheduleAppointment(r.Context(), ScheduleInput{
			PatientID:   req.PatientID,
			DoctorID:    req.DoctorID,
			ScheduledAt: at,
			Reason:      req.Reason,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar citas
// @Description Lista todas las citas ordenadas por fecha con paciente y médico. Con from y to (RFC3339) filtra por rango inclusivo.
// @Tags appointments
// @Produce json
// @Param from query string false "Inicio del rango (RFC3339)"
// @Param to query string false "Fin del rango (RFC3339)"
// @Success 200 {array} appointmentDetailResponse
// @Failure 400 {string} string "rango inválido"
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		from, to := strings.TrimSpace(q.Get("from")), strings.TrimSpace(q.Get("to"))

		var (
			items []AppointmentDetail
			err   error
		)
		switch {
		case from == "" && to == "":
			items, err = svc.ListAppointments(r.Context())
		case from == "" || to == "":
			http.Error(w, "from and to must be sent together", http.StatusBadRequest)
			return
		default:
			f, ferr := time.Parse(time.RFC3339, from)
			t, terr := time.Parse(time.RFC3339, to)
			if ferr != nil || terr != nil {
				http.Error(w, "from/to must be RFC3339", http.StatusBadRequest)
				return
			}
			items, err = svc.AppointmentsBetween(r.Context(), f, t)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDetailResponses(items))
	}
}

// getAppointmentHandler godoc
// @Summary Obtener cita
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 404 {string} string "not found"
// @Router /appointments/{appointmentID} [get]
func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetAppointment(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// deleteAppointmentHandler godoc
// @Summary Eliminar cita
// @Tags appointments
// @Param appointmentID path string true "ID de la cita"
// @Success 204
// @Router /appointments/{appointmentID} [delete]
func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteAppointment(r.Context(), chi.URLParam(r, "appointmentID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// changeStatusHandler godoc
// @Summary Cambiar estado de una cita
// @Description Sobrescribe el estado (scheduled, attended, cancelled). No se restringen las transiciones.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Param payload body changeStatusRequest true "Nuevo estado"
// @Success 200 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / estado desconocido"
// @Failure 404 {string} string "not found"
// @Router /appointments/{appointmentID}/status [patch]
func changeStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changeStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.ChangeAppointmentStatus(r.Context(), chi.URLParam(r, "appointmentID"), req.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func toDoctorResponse(d Doctor) doctorResponse {
	return doctorResponse{
		ID:            d.ID,
		FullName:      d.FullName,
		LicenseNumber: d.LicenseNumber,
		Specialty:     d.Specialty,
		Email:         d.Email,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		PatientID:   a.PatientID,
		DoctorID:    a.DoctorID,
		ScheduledAt: a.ScheduledAt,
		Status:      a.Status,
		Reason:      a.Reason,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toDetailResponses(items []AppointmentDetail) []appointmentDetailResponse {
	out := make([]appointmentDetailResponse, 0, len(items))
	for _, d := range items {
		out = append(out, appointmentDetailResponse{
			appointmentResponse: toAppointmentResponse(d.Appointment),
			Patient:             toPatientResponse(d.Patient),
			Doctor:              toDoctorResponse(d.Doctor),
		})
	}
	return out
}
