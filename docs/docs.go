// Package docs holds the OpenAPI description served under /swagger.
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
        "/authenticate": {
            "post": {
                "description": "userName may be a username, an email address or a contact number.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create a token",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.tokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Account details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/users/{userName}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "userName", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/patients": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "List appointments",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Patient"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Book an appointment",
                "parameters": [
                    {"description": "Appointment details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.bookAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Patient"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/patients/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Get an appointment",
                "parameters": [
                    {"type": "string", "description": "Booking id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Patient"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/patients/{id}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Update appointment status",
                "parameters": [
                    {"type": "string", "description": "Booking id", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Patient"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/patients/{id}/description": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Update appointment description",
                "parameters": [
                    {"type": "string", "description": "Booking id", "name": "id", "in": "path", "required": true},
                    {"description": "Description notes", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateDescriptionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Patient"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/patients/metrics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Paid amount metrics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PaymentSummary"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "domain.Role": {
            "type": "object",
            "properties": {"roleName": {"type": "string"}, "description": {"type": "string"}}
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "userName": {"type": "string"},
                "email": {"type": "string"},
                "contactNumber": {"type": "integer"},
                "address": {"type": "string"},
                "enabled": {"type": "boolean"},
                "roles": {"type": "array", "items": {"$ref": "#/definitions/domain.Role"}},
                "createdAt": {"type": "string"}
            }
        },
        "domain.Patient": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "patientName": {"type": "string"},
                "patientEmail": {"type": "string"},
                "contactNumber": {"type": "integer"},
                "dateOfBirth": {"type": "string"},
                "disease": {"type": "string"},
                "appointmentAt": {"type": "string"},
                "bookedAt": {"type": "string"},
                "bookedBy": {"type": "string"},
                "status": {"type": "string", "enum": ["BOOKED", "ADMITTED", "DISCHARGED", "CANCELLED"]},
                "descriptionDetails": {"type": "string"},
                "paidAmount": {"type": "integer"}
            }
        },
        "domain.PaymentSummary": {
            "type": "object",
            "properties": {
                "totalPaidAmount": {"type": "integer"},
                "profit": {"type": "integer"},
                "loss": {"type": "integer"},
                "averagePaidAmount": {"type": "number"}
            }
        },
        "handler.tokenRequest": {
            "type": "object",
            "properties": {"userName": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/domain.User"}, "jwtToken": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["userName", "password"],
            "properties": {
                "userName": {"type": "string"},
                "password": {"type": "string"},
                "email": {"type": "string"},
                "contactNumber": {"type": "integer"},
                "address": {"type": "string"}
            }
        },
        "handler.bookAppointmentRequest": {
            "type": "object",
            "required": ["patientName", "patientEmail"],
            "properties": {
                "patientName": {"type": "string"},
                "patientEmail": {"type": "string"},
                "contactNumber": {"type": "integer"},
                "dateOfBirth": {"type": "string"},
                "disease": {"type": "string"},
                "appointmentAt": {"type": "string"},
                "paidAmount": {"type": "integer"}
            }
        },
        "handler.updateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string"}}
        },
        "handler.updateDescriptionRequest": {
            "type": "object",
            "properties": {"descriptionDetails": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Hospital System API",
	Description:      "Accounts, token issuance and appointment booking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
