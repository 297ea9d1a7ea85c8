package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Uni Timetable API",
        "description": "Greedy timetable assignment engine with asynchronous optimize jobs",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Optimize", "description": "Asynchronous assignment runs"},
        {"name": "Scheduler", "description": "Solver backend availability"},
        {"name": "Timetable", "description": "Persisted timetable reads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/optimize": {
            "post": {
                "tags": ["Optimize"],
                "summary": "Submit an asynchronous timetable assignment run",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/OptimizeRequest"}}
                ],
                "responses": {
                    "202": {"description": "Job accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/optimize/{id}": {
            "get": {
                "tags": ["Optimize"],
                "summary": "Poll an assignment run",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Job status", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/scheduler/status": {
            "get": {
                "tags": ["Scheduler"],
                "summary": "List solver backends and their availability",
                "responses": {
                    "200": {"description": "Backend availability map", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get the persisted timetable for a tenant",
                "parameters": [
                    {"in": "query", "name": "tenantId", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Timetable rows", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "OptimizeRequest": {
            "type": "object",
            "required": ["week"],
            "properties": {
                "policyVersion": {"type": "integer"},
                "week": {"type": "string"},
                "solver": {"type": "string", "enum": ["greedy", "milp", "cpsat"]},
                "groupSize": {"type": "integer"},
                "useForbidden": {"type": "boolean"},
                "tenantId": {"type": "string"}
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
