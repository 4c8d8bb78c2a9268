package clinic

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Post("/", registerPatientHandler(svc))
		pr.Get("/", listPatientsHandler(svc))
		pr.Get("/{patientID}", getPatientHandler(svc))
		pr.Delete("/{patientID}", deletePatientHandler(svc))

		// Historial 1:1 con el paciente
		pr.Get("/{patientID}/history", getHistoryHandler(svc))
		pr.Put("/{patientID}/history", saveHistoryHandler(svc))

		pr.Get("/{patientID}/appointments", listPatientAppointmentsHandler(svc))
	})

	r.Route("/doctors", func(dr chi.Router) {
		dr.Post("/", registerDoctorHandler(svc))
		dr.Get("/", listDoctorsHandler(svc))
		dr.Get("/{doctorID}", getDoctorHandler(svc))
		dr.Delete("/{doctorID}", deleteDoctorHandler(svc))
		dr.Get("/{doctorID}/appointments/upcoming", listUpcomingAppointmentsHandler(svc))
	})

	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", scheduleAppointmentHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))
		ar.Patch("/{appointmentID}/status", changeStatusHandler(svc))
	})

	r.Get("/reports/patients-with-appointments", patientsWithAppointmentsHandler(svc))
}

type registerPatientRequest struct {
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
	BirthDate  string `json:"birth_date"` // YYYY-MM-DD
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

type patientResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	NationalID string    `json:"national_id"`
	BirthDate  string    `json:"birth_date"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type patientWithAppointmentsResponse struct {
	patientResponse
	Appointments []appointmentResponse `json:"appointments"`
}

type historyRequest struct {
	Allergies    string `json:"allergies"`
	Conditions   string `json:"conditions"`
	Observations string `json:"observations"`
}

type historyResponse struct {
	PatientID    string    `json:"patient_id"`
	Allergies    string    `json:"allergies"`
	Conditions   string    `json:"conditions"`
	Observations string    `json:"observations"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// registerPatientHandler godoc
// @Summary Registrar paciente
// @Description Registra un paciente. El DPI (13 dígitos) debe ser único; birth_date en formato YYYY-MM-DD y en el pasado.
// @Tags patients
// @Accept json
// @Produce json
// @Param payload body registerPatientRequest true "Datos del paciente"
// @Success 201 {object} patientResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 409 {string} string "duplicate national id"
// @Failure 500 {string} string "internal error"
// @Router /patients [post]
func registerPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bd, err := time.Parse(dateLayout, strings.TrimSpace(req.BirthDate))
		if err != nil {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		p, err := svc.RegisterPatient(r.Context(), RegisterPatientInput{
			FullName:   req.FullName,
			NationalID: req.NationalID,
			BirthDate:  bd,
			Phone:      req.Phone,
			Email:      req.Email,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

// listPatientsHandler godoc
// @Summary Listar pacientes
// @Tags patients
// @Produce json
// @Success 200 {array} patientResponse
// @Failure 500 {string} string "internal error"
// @Router /patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListPatients(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]patientResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPatientResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPatientHandler godoc
// @Summary Obtener paciente
// @Tags patients
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Success 200 {object} patientResponse
// @Failure 404 {string} string "not found"
// @Router /patients/{patientID} [get]
func getPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetPatient(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

// deletePatientHandler godoc
// @Summary Eliminar paciente
// @Description Elimina el paciente junto con su historial y todas sus citas. Si el ID no existe no hace nada.
// @Tags patients
// @Param patientID path string true "ID del paciente"
// @Success 204
// @Failure 500 {string} string "internal error"
// @Router /patients/{patientID} [delete]
func deletePatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeletePatient(r.Context(), chi.URLParam(r, "patientID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// getHistoryHandler godoc
// @Summary Obtener historial médico
// @Tags history
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Success 200 {object} historyResponse
// @Failure 404 {string} string "no history recorded"
// @Router /patients/{patientID}/history [get]
func getHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := svc.MedicalHistory(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHistoryResponse(h))
	}
}

// saveHistoryHandler godoc
// @Summary Crear o editar historial médico
// @Description Crea el historial en la primera llamada o reemplaza alergias, antecedentes y observaciones si ya existe.
// @Tags history
// @Accept json
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param payload body historyRequest true "Campos del historial"
// @Success 200 {object} historyResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID}/history [put]
func saveHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req historyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		h, err := svc.SaveMedicalHistory(r.Context(), chi.URLParam(r, "patientID"), HistoryInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHistoryResponse(h))
	}
}

// listPatientAppointmentsHandler godoc
// @Summary Citas de un paciente
// @Tags patients
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Success 200 {array} appointmentDetailResponse
// @Failure 500 {string} string "internal error"
// @Router /patients/{patientID}/appointments [get]
func listPatientAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.PatientAppointments(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDetailResponses(items))
	}
}

// patientsWithAppointmentsHandler godoc
// @Summary Reporte de pacientes con sus citas
// @Tags reports
// @Produce json
// @Success 200 {array} patientWithAppointmentsResponse
// @Failure 500 {string} string "internal error"
// @Router /reports/patients-with-appointments [get]
func patientsWithAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.PatientsWithAppointments(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]patientWithAppointmentsResponse, 0, len(items))
		for _, pa := range items {
			appts := make([]appointmentResponse, 0, len(pa.Appointments))
			for _, a := range pa.Appointments {
				appts = append(appts, toAppointmentResponse(a))
			}
			out = append(out, patientWithAppointmentsResponse{
				patientResponse: toPatientResponse(pa.Patient),
				Appointments:    appts,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:         p.ID,
		FullName:   p.FullName,
		NationalID: p.NationalID,
		BirthDate:  p.BirthDate.Format(dateLayout),
		Phone:      p.Phone,
		Email:      p.Email,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toHistoryResponse(h MedicalHistory) historyResponse {
	return historyResponse{
		PatientID:    h.PatientID,
		Allergies:    h.Allergies,
		Conditions:   h.Conditions,
		Observations: h.Observations,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

// writeError traduce los errores del dominio a códigos HTTP.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidTime):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrDuplicateKey), errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
