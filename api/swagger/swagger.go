package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Mission Orders API",
        "description": "Mission order approval workflow for government institutions",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login and session info"},
        {"name": "Missions", "description": "Mission order lifecycle and validation chain"},
        {"name": "Employees", "description": "Employee roster and mission releases"},
        {"name": "Fleet", "description": "Vehicle and driver rosters"},
        {"name": "Documents", "description": "Rendered mission order PDFs"},
        {"name": "Admin", "description": "Institution and account provisioning"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Access token issued"},
                    "401": {"description": "Invalid credentials or inactive account"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user info",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/missions": {
            "get": {
                "tags": ["Missions"],
                "summary": "List mission orders",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "description": "Comma-separated status filter"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Missions"],
                "summary": "Create mission order in DRAFT",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMissionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "A participant is already on a mission"}
                }
            }
        },
        "/missions/{id}": {
            "get": {
                "tags": ["Missions"],
                "summary": "Get mission order",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/missions/{id}/history": {
            "get": {
                "tags": ["Missions"],
                "summary": "Validation trail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/missions/{id}/submit": {
            "post": {
                "tags": ["Missions"],
                "summary": "Submit DRAFT mission for validation",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Moved to PENDING_TECHNICAL"},
                    "409": {"description": "Mission is not in DRAFT"}
                }
            }
        },
        "/missions/{id}/validate/technical": {
            "post": {
                "tags": ["Missions"],
                "summary": "Technical validation decision",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidationRequest"}}
                ],
                "responses": {
                    "200": {"description": "Decision applied"},
                    "409": {"description": "Mission moved on (stale decision)"}
                }
            }
        },
        "/missions/{id}/validate/logistics": {
            "post": {
                "tags": ["Missions"],
                "summary": "Logistics validation decision",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidationRequest"}}
                ],
                "responses": {
                    "200": {"description": "Decision applied"},
                    "409": {"description": "Mission moved on (stale decision)"}
                }
            }
        },
        "/missions/{id}/validate/finance": {
            "post": {
                "tags": ["Missions"],
                "summary": "Finance validation decision, may set estimated costs",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidationRequest"}}
                ],
                "responses": {
                    "200": {"description": "Decision applied"},
                    "409": {"description": "Mission moved on (stale decision)"}
                }
            }
        },
        "/missions/{id}/validate/dg": {
            "post": {
                "tags": ["Missions"],
                "summary": "Final DG/MSGG signature decision",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidationRequest"}}
                ],
                "responses": {
                    "200": {"description": "Decision applied"},
                    "409": {"description": "Mission moved on (stale decision)"}
                }
            }
        },
        "/missions/{id}/logistics": {
            "put": {
                "tags": ["Missions"],
                "summary": "Assign vehicle, driver, or ticket",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignLogisticsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Assignment applied"},
                    "409": {"description": "Resource booked on an overlapping mission"}
                }
            }
        },
        "/missions/{id}/archive": {
            "post": {
                "tags": ["Missions"],
                "summary": "Archive a VALIDATED mission",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Archived, participants released"}
                }
            }
        },
        "/missions/{id}/complete": {
            "post": {
                "tags": ["Missions"],
                "summary": "Mark mission completed after return",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Completed"}
                }
            }
        },
        "/missions/{id}/close": {
            "post": {
                "tags": ["Missions"],
                "summary": "Close a completed mission",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Closed, participants released"}
                }
            }
        },
        "/missions/{id}/document": {
            "get": {
                "tags": ["Documents"],
                "summary": "Signed download URL for the mission order PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Token issued"},
                    "404": {"description": "Order not generated yet"}
                }
            }
        },
        "/missions/dashboard": {
            "get": {
                "tags": ["Missions"],
                "summary": "Mission counts by status",
                "parameters": [
                    {"name": "institution_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/employees": {
            "get": {
                "tags": ["Employees"],
                "summary": "List employees",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Employees"],
                "summary": "Register employee",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/employees/{id}/end-mission": {
            "post": {
                "tags": ["Employees"],
                "summary": "Release employee from current mission",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Released"},
                    "409": {"description": "Employee is not on a mission"}
                }
            }
        },
        "/fleet/vehicles": {
            "get": {"tags": ["Fleet"], "summary": "List vehicles", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Fleet"], "summary": "Add vehicle", "responses": {"201": {"description": "Created"}}}
        },
        "/fleet/drivers": {
            "get": {"tags": ["Fleet"], "summary": "List drivers", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Fleet"], "summary": "Add driver", "responses": {"201": {"description": "Created"}}}
        },
        "/admin/users": {
            "get": {"tags": ["Admin"], "summary": "List accounts", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Admin"], "summary": "Create account", "responses": {"201": {"description": "Created"}}}
        },
        "/admin/institutions": {
            "get": {"tags": ["Admin"], "summary": "List institutions", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Admin"], "summary": "Create institution", "responses": {"201": {"description": "Created"}}}
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateMissionRequest": {
            "type": "object",
            "required": ["object", "departure_date", "return_date", "participant_ids"],
            "properties": {
                "object": {"type": "string"},
                "departure_date": {"type": "string", "format": "date"},
                "return_date": {"type": "string", "format": "date"},
                "participant_ids": {"type": "array", "items": {"type": "string"}},
                "estimated_costs": {"type": "number"}
            }
        },
        "ValidationRequest": {
            "type": "object",
            "required": ["action"],
            "properties": {
                "action": {"type": "string", "enum": ["APPROVE", "REJECT"]},
                "reason": {"type": "string"},
                "estimated_costs": {"type": "number"}
            }
        },
        "AssignLogisticsRequest": {
            "type": "object",
            "properties": {
                "vehicle_id": {"type": "string"},
                "driver_id": {"type": "string"},
                "ticket_ref": {"type": "string"}
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
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
