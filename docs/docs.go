// Package docs registers the OpenAPI document served at /openapi.json.
//
// docTemplate is maintained by hand in swag's output format, not generated
// by `swag init`. Keep it in step with the @Router annotations in
// internal/handler when routes or payloads change.
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
        "/api": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "API health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.HealthResponse"}}
                }
            }
        },
        "/api/ai/invoke-llm": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Forward a prompt to the completion provider",
                "parameters": [
                    {"description": "Prompt payload", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/model.InvokeLLMRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.InvokeLLMResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/api/functions/{name}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "automateIncidentResponse, generatePostIncidentReview, generateArticleFromIncident,\nsuggestKnowledgeArticles, generatePredictions",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Run a named AI action",
                "parameters": [
                    {"type": "string", "description": "Action name", "name": "name", "in": "path", "required": true},
                    {"description": "Action payload", "name": "request", "in": "body",
                     "schema": {"$ref": "#/definitions/model.FunctionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/api/{entity}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "List entity records",
                "parameters": [
                    {"type": "string", "description": "Entity model name or alias (e.g. incidents)", "name": "entity", "in": "path", "required": true},
                    {"type": "string", "description": "Sort field, '-' prefix for descending (e.g. -created_date)", "name": "_sort", "in": "query"},
                    {"type": "integer", "description": "Maximum number of records (max 500)", "name": "_limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Create an entity record",
                "parameters": [
                    {"type": "string", "description": "Entity model name or alias", "name": "entity", "in": "path", "required": true},
                    {"description": "snake_case record fields", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/api/{entity}/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Get an entity record",
                "parameters": [
                    {"type": "string", "description": "Entity model name or alias", "name": "entity", "in": "path", "required": true},
                    {"type": "string", "description": "Record ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Update an entity record (only supplied fields change)",
                "parameters": [
                    {"type": "string", "description": "Entity model name or alias", "name": "entity", "in": "path", "required": true},
                    {"type": "string", "description": "Record ID", "name": "id", "in": "path", "required": true},
                    {"description": "snake_case record fields", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Update an entity record (only supplied fields change)",
                "parameters": [
                    {"type": "string", "description": "Entity model name or alias", "name": "entity", "in": "path", "required": true},
                    {"type": "string", "description": "Record ID", "name": "id", "in": "path", "required": true},
                    {"description": "snake_case record fields", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Delete an entity record",
                "parameters": [
                    {"type": "string", "description": "Entity model name or alias", "name": "entity", "in": "path", "required": true},
                    {"type": "string", "description": "Record ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.OKResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "detail": {"type": "string"}}
        },
        "model.FunctionRequest": {
            "type": "object",
            "properties": {"incident_id": {"type": "string"}, "incidentId": {"type": "string"}, "author": {"type": "string"}}
        },
        "model.HealthResponse": {
            "type": "object",
            "properties": {"ok": {"type": "boolean"}, "message": {"type": "string"}}
        },
        "model.InvokeLLMRequest": {
            "type": "object",
            "properties": {"prompt": {"type": "string"}, "system": {"type": "string"}}
        },
        "model.InvokeLLMResponse": {
            "type": "object",
            "properties": {"text": {"type": "string"}}
        },
        "model.OKResponse": {
            "type": "object",
            "properties": {"ok": {"type": "boolean"}}
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
	Title:            "Incident Desk API",
	Description:      "Incident management REST backend: entity CRUD, AI-assisted actions and LLM passthrough.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
