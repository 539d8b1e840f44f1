package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School ERP API",
        "description": "Admin, teacher and student portals of the school ERP.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Session", "description": "Sign in, sign out and session state"},
        {"name": "Dashboards", "description": "Role landing pages"},
        {"name": "Students", "description": "Student roster"},
        {"name": "Notes", "description": "Class notes, homework, tests and results"},
        {"name": "Attendance", "description": "Daily attendance"},
        {"name": "Fees", "description": "Fee schedule and payments"},
        {"name": "Campus", "description": "Hostels, results and admissions"},
        {"name": "Advisory", "description": "Model generated suggestions and insights"},
        {"name": "Exports", "description": "Asynchronous CSV and PDF exports"}
    ],
    "paths": {
        "/health": {
            "get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {"200": {"description": "Ready"}, "503": {"description": "Degraded"}}
            }
        },
        "/login": {
            "get": {
                "tags": ["Session"],
                "summary": "Login page data",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "303": {"description": "Already signed in"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Session"],
                "summary": "Sign in",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignInRequest"}}
                ],
                "responses": {
                    "303": {"description": "Redirect to the role dashboard"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {"tags": ["Session"], "summary": "Sign out", "responses": {"303": {"description": "Redirect to /login"}}}
        },
        "/auth/session": {
            "get": {
                "tags": ["Session"],
                "summary": "Current session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admin/dashboard": {
            "get": {
                "tags": ["Dashboards"],
                "summary": "Admin dashboard",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admin/dashboard/suggestions": {
            "post": {
                "tags": ["Advisory"],
                "summary": "Suggest dashboard actions",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/SuggestionsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Failed to get suggestions.", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "course", "in": "query", "type": "string"},
                    {"name": "section", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Students"],
                "summary": "Add a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/students/insights": {
            "post": {
                "tags": ["Advisory"],
                "summary": "Generate student database insights",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/InsightsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Failed to generate insights.", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/hostels": {
            "get": {
                "tags": ["Campus"],
                "summary": "Hostel occupancy",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admin/admissions": {
            "get": {
                "tags": ["Campus"],
                "summary": "Submitted admission applications",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admin/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue an export",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Exports unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export job status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download an export via signed token",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/dashboard": {
            "get": {
                "tags": ["Dashboards"],
                "summary": "Teacher dashboard",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teacher/classes": {
            "get": {
                "tags": ["Dashboards"],
                "summary": "Students grouped by class section",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teacher/students": {
            "post": {
                "tags": ["Students"],
                "summary": "Add a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teacher/notes": {
            "post": {
                "tags": ["Notes"],
                "summary": "Publish notes, homework or a test",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddContentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/results": {
            "post": {
                "tags": ["Notes"],
                "summary": "Publish a results link",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddResultRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Save attendance for a day",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveAttendanceRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/student/dashboard": {
            "get": {
                "tags": ["Dashboards"],
                "summary": "Student dashboard",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/student/notes": {
            "get": {
                "tags": ["Notes"],
                "summary": "Notes for the student's class section",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string", "enum": ["Notes", "Homework", "Test", "Result"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/student/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance summary",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/student/fees": {
            "get": {
                "tags": ["Fees"],
                "summary": "Fee schedule with outstanding balance",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/student/fees/installments/{id}/pay": {
            "post": {
                "tags": ["Fees"],
                "summary": "Pay an installment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already paid", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/results": {
            "get": {
                "tags": ["Campus"],
                "summary": "Subject results",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admissions": {
            "post": {
                "tags": ["Campus"],
                "summary": "Submit an admission application",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdmissionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SignInRequest": {
            "type": "object",
            "required": ["role", "userId", "password"],
            "properties": {
                "role": {"type": "string", "enum": ["admin", "teacher", "student"]},
                "userId": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "required": ["name", "email", "course", "year", "section"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "course": {"type": "string"},
                "year": {"type": "integer", "minimum": 1, "maximum": 5},
                "section": {"type": "string"}
            }
        },
        "AddContentRequest": {
            "type": "object",
            "required": ["title", "type", "class", "section"],
            "properties": {
                "title": {"type": "string"},
                "type": {"type": "string", "enum": ["Notes", "Homework", "Test"]},
                "subject": {"type": "string"},
                "class": {"type": "string"},
                "section": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "AddResultRequest": {
            "type": "object",
            "required": ["title", "subject", "class", "section", "link"],
            "properties": {
                "title": {"type": "string"},
                "subject": {"type": "string"},
                "class": {"type": "string"},
                "section": {"type": "string"},
                "link": {"type": "string", "format": "uri"}
            }
        },
        "SaveAttendanceRequest": {
            "type": "object",
            "required": ["date", "status"],
            "properties": {
                "date": {"type": "string", "format": "date"},
                "studentId": {"type": "string"},
                "status": {"type": "string", "enum": ["present", "absent"]}
            }
        },
        "AdmissionRequest": {
            "type": "object",
            "required": ["fullName", "email", "phone", "course", "previousSchool", "statement"],
            "properties": {
                "fullName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "course": {"type": "string"},
                "previousSchool": {"type": "string"},
                "statement": {"type": "string", "minLength": 50, "maxLength": 500}
            }
        },
        "SuggestionsRequest": {
            "type": "object",
            "properties": {
                "dashboardData": {"type": "string"}
            }
        },
        "InsightsRequest": {
            "type": "object",
            "properties": {
                "databaseSummary": {"type": "string"}
            }
        },
        "CreateExportRequest": {
            "type": "object",
            "required": ["type", "format"],
            "properties": {
                "type": {"type": "string", "enum": ["students", "attendance", "notes"]},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "message": {"type": "string"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
