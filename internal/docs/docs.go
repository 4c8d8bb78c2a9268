// Package docs registra el documento OpenAPI que sirve /swagger.
// Se mantiene a partir de las anotaciones godoc de los handlers de clinic.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/patients": {
            "get": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Listar pacientes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/clinic.patientResponse"}}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Registrar paciente",
                "parameters": [
                    {"description": "Datos del paciente", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/clinic.registerPatientRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/clinic.patientResponse"}},
                    "400": {"description": "invalid json / validación", "schema": {"type": "string"}},
                    "409": {"description": "duplicate national id", "schema": {"type": "string"}}
                }
            }
        },
        "/patients/{patientID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Obtener paciente",
                "parameters": [{"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/clinic.patientResponse"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["patients"],
                "summary": "Eliminar paciente",
                "description": "Elimina el paciente junto con su historial y todas sus citas. Si el ID no existe no hace nada.",
                "parameters": [{"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/patients/{patientID}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Obtener historial médico",
                "parameters": [{"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/clinic.historyResponse"}},
                    "404": {"description": "no history recorded", "schema": {"type": "string"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Crear o editar historial médico",
                "parameters": [
                    {"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true},
                    {"description": "Campos del historial", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/clinic.historyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/clinic.historyResponse"}},
                    "404": {"description": "patient not found", "schema": {"type": "string"}}
                }
            }
        },
        "/patients/{patientID}/appointments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Citas de un paciente",
                "parameters": [{"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/clinic.appointmentDetailResponse"}}}}
            }
        },
        "/doctors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "Listar médicos",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/clinic.doctorResponse"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "Registrar médico",
                "parameters": [
                    {"description": "Datos del médico", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/clinic.registerDoctorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/clinic.doctorResponse"}},
                    "400": {"description": "invalid json / validación", "schema": {"type": "string"}},
                    "409": {"description": "duplicate license", "schema": {"type": "string"}}
                }
            }
        },
        "/doctors/{doctorID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "Obtener médico",
                "parameters": [{"type": "string", "description": "ID del médico", "name": "doctorID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/clinic.doctorResponse"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["doctors"],
                "summary": "Eliminar médico",
                "parameters": [{"type": "string", "description": "ID del médico", "name": "doctorID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/doctors/{doctorID}/appointments/upcoming": {
            "get": {
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "Próximas citas de un médico",
                "parameters": [{"type": "string", "description": "ID del médico", "name": "doctorID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/clinic.appointmentDetailResponse"}}}}
            }
        },
        "/appointments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Listar citas",
                "parameters": [
                    {"type": "string", "description": "Inicio del rango (RFC3339)", "name": "from", "in": "query"},
                    {"type": "string", "description": "Fin del rango (RFC3339)", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/clinic.appointmentDetailResponse"}}},
                    "400": {"description": "rango inválido", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Agendar cita",
                "parameters": [
                    {"description": "Datos de la cita", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/clinic.scheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/clinic.appointmentResponse"}},
                    "404": {"description": "patient or doctor not found", "schema": {"type": "string"}},
                    "409": {"description": "doctor already booked", "schema": {"type": "string"}},
                    "422": {"description": "scheduled_at not in the future", "schema": {"type": "string"}}
                }
            }
        },
        "/appointments/{appointmentID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Obtener cita",
                "parameters": [{"type": "string", "description": "ID de la cita", "name": "appointmentID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/clinic.appointmentResponse"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["appointments"],
                "summary": "Eliminar cita",
                "parameters": [{"type": "string", "description": "ID de la cita", "name": "appointmentID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/appointments/{appointmentID}/status": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Cambiar estado de una cita",
                "parameters": [
                    {"type": "string", "description": "ID de la cita", "name": "appointmentID", "in": "path", "required": true},
                    {"description": "Nuevo estado", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/clinic.changeStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/clinic.appointmentResponse"}},
                    "400": {"description": "invalid json / estado desconocido", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            }
        },
        "/reports/patients-with-appointments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Reporte de pacientes con sus citas",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/clinic.patientWithAppointmentsResponse"}}}}
            }
        }
    },
    "definitions": {
        "clinic.AppointmentStatus": {"type": "string", "enum": ["scheduled", "attended", "cancelled"]},
        "clinic.Specialty": {"type": "string", "enum": ["cardiology", "pediatrics", "general_medicine", "dermatology", "neurology", "traumatology", "gynecology"]},
        "clinic.registerPatientRequest": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "national_id": {"type": "string"},
                "birth_date": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "clinic.patientResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "full_name": {"type": "string"},
                "national_id": {"type": "string"},
                "birth_date": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "clinic.patientWithAppointmentsResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "full_name": {"type": "string"},
                "national_id": {"type": "string"},
                "appointments": {"type": "array", "items": {"$ref": "#/definitions/clinic.appointmentResponse"}}
            }
        },
        "clinic.historyRequest": {
            "type": "object",
            "properties": {
                "allergies": {"type": "string"},
                "conditions": {"type": "string"},
                "observations": {"type": "string"}
            }
        },
        "clinic.historyResponse": {
            "type": "object",
            "properties": {
                "patient_id": {"type": "string"},
                "allergies": {"type": "string"},
                "conditions": {"type": "string"},
                "observations": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "clinic.registerDoctorRequest": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "license_number": {"type": "string"},
                "specialty": {"$ref": "#/definitions/clinic.Specialty"},
                "email": {"type": "string"}
            }
        },
        "clinic.doctorResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "full_name": {"type": "string"},
                "license_number": {"type": "string"},
                "specialty": {"$ref": "#/definitions/clinic.Specialty"},
                "email": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "clinic.scheduleRequest": {
            "type": "object",
            "properties": {
                "patient_id": {"type": "string"},
                "doctor_id": {"type": "string"},
                "scheduled_at": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "clinic.changeStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"$ref": "#/definitions/clinic.AppointmentStatus"}
            }
        },
        "clinic.appointmentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "patient_id": {"type": "string"},
                "doctor_id": {"type": "string"},
                "scheduled_at": {"type": "string"},
                "status": {"$ref": "#/definitions/clinic.AppointmentStatus"},
                "reason": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "clinic.appointmentDetailResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "scheduled_at": {"type": "string"},
                "status": {"$ref": "#/definitions/clinic.AppointmentStatus"},
                "reason": {"type": "string"},
                "patient": {"$ref": "#/definitions/clinic.patientResponse"},
                "doctor": {"$ref": "#/definitions/clinic.doctorResponse"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Clinical Records API",
	Description:      "Registro de pacientes, médicos, citas e historial médico.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
