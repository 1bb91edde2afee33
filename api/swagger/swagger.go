package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Cycle Count API",
        "description": "Hourly production output for the cycle count dashboard",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Production", "description": "Hourly output, counters and shift attendance"}
    ],
    "paths": {
        "/production/hourly": {
            "get": {
                "tags": ["Production"],
                "summary": "Hourly output chart for a date",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HourlyOutputEnvelope"}},
                    "400": {"description": "Invalid date", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/production/hourly/shift": {
            "get": {
                "tags": ["Production"],
                "summary": "Hourly output for one shift",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date"},
                    {"name": "shift", "in": "query", "type": "string", "enum": ["1st Shift-(6am-2pm)", "2nd Shift-(2pm-10pm)"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HourlyOutputEnvelope"}},
                    "400": {"description": "Invalid date", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/production/hourly/export": {
            "get": {
                "tags": ["Production"],
                "summary": "Download the hourly output table",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Invalid date or format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No data for date", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/production/counters": {
            "get": {
                "tags": ["Production"],
                "summary": "List production counters",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date"},
                    {"name": "shift", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Production"],
                "summary": "Create or replace a counter report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertCounterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/production/attendance": {
            "post": {
                "tags": ["Production"],
                "summary": "Check workers in to a shift",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Dataset": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "type": {"type": "string", "enum": ["bar", "line"]},
                "data": {"type": "array", "items": {"type": "number"}},
                "backgroundColor": {"type": "string"},
                "borderColor": {"type": "string"},
                "borderWidth": {"type": "integer"},
                "borderDash": {"type": "array", "items": {"type": "integer"}},
                "tension": {"type": "number"},
                "order": {"type": "integer"}
            }
        },
        "HourlyTotals": {
            "type": "object",
            "properties": {
                "actual": {"type": "number"},
                "target": {"type": "number"},
                "attainmentPct": {"type": "number"}
            }
        },
        "HourlyOutput": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["ok", "no_data"]},
                "date": {"type": "string", "format": "date"},
                "shift": {"type": "string"},
                "labels": {"type": "array", "items": {"type": "string"}},
                "actual": {"type": "array", "items": {"type": "number"}},
                "target": {"type": "array", "items": {"type": "number"}},
                "cumulative": {"type": "array", "items": {"type": "number"}},
                "datasets": {"type": "array", "items": {"$ref": "#/definitions/Dataset"}},
                "totals": {"$ref": "#/definitions/HourlyTotals"},
                "message": {"type": "string"}
            }
        },
        "HourlyOutputEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/HourlyOutput"},
                "meta": {
                    "type": "object",
                    "properties": {
                        "cache_hit": {"type": "boolean"},
                        "processing_time_ms": {"type": "integer"}
                    }
                }
            }
        },
        "UpsertCounterRequest": {
            "type": "object",
            "required": ["name", "date", "shift"],
            "properties": {
                "name": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "shift": {"type": "string"},
                "hourlyActuals": {"type": "object", "additionalProperties": {}},
                "hourlyTargets": {"type": "object", "additionalProperties": {}},
                "standardRate": {},
                "targetOutput": {}
            }
        },
        "RecordAttendanceRequest": {
            "type": "object",
            "required": ["date", "shift", "workerIds"],
            "properties": {
                "date": {"type": "string", "format": "date"},
                "shift": {"type": "string"},
                "workerIds": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
