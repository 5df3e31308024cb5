package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Attendance Report API",
        "description": "Read-only view of one attendance report plus the attendance calculator",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Report", "description": "Aggregated attendance of the loaded document"},
        {"name": "Projection", "description": "Lectures to attend or allowed to miss"}
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
        "/report": {
            "get": {
                "summary": "Rendered HTML report",
                "produces": ["text/html"],
                "responses": {
                    "200": {"description": "HTML page"}
                }
            }
        },
        "/api/v1/report": {
            "get": {
                "tags": ["Report"],
                "summary": "Attendance report",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/subjects": {
            "get": {
                "tags": ["Report"],
                "summary": "Search subjects",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string", "required": false, "description": "Loose subject query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/subjects/{subject}/projection": {
            "get": {
                "tags": ["Projection"],
                "summary": "Projection for one subject",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "subject", "in": "path", "type": "string", "required": true},
                    {"name": "planned", "in": "query", "type": "integer", "required": false, "description": "Total planned lectures"},
                    {"name": "target", "in": "query", "type": "number", "required": false, "description": "Target percentage"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown subject", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/projection": {
            "post": {
                "tags": ["Projection"],
                "summary": "Free-form attendance calculator",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProjectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "Metrics in text exposition format"}
                }
            }
        }
    },
    "definitions": {
        "ProjectionRequest": {
            "type": "object",
            "required": ["present", "total"],
            "properties": {
                "present": {"type": "integer", "minimum": 0},
                "total": {"type": "integer", "minimum": 0},
                "total_planned": {"type": "integer"},
                "target_pct": {"type": "number", "maximum": 100}
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
