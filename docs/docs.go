// Package docs holds the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/admin/auth": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session token", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Invalid password", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/github/repos/{username}": {
            "get": {
                "tags": ["github"],
                "summary": "List a user's public GitHub repositories",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "username", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Repositories, most recently updated first"},
                    "400": {"description": "Invalid username", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "default": {"description": "GitHub error, status passed through", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/contact": {
            "post": {
                "tags": ["contact"],
                "summary": "Send a contact message",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ContactMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "Stored", "schema": {"$ref": "#/definitions/SuccessResponse"}},
                    "400": {"description": "Invalid form data", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/contact-messages": {
            "get": {
                "tags": ["contact"],
                "summary": "List received messages",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Messages, newest first"}}
            }
        },
        "/contact-info": {
            "get": {
                "tags": ["contact"],
                "summary": "Public contact details",
                "responses": {
                    "200": {"description": "Contact details"},
                    "404": {"description": "Not configured", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["contact"],
                "summary": "Replace the contact details",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Stored contact details"}}
            }
        },
        "/projects": {
            "get": {
                "tags": ["projects"],
                "summary": "List GitHub-linked projects",
                "responses": {"200": {"description": "Projects"}}
            },
            "post": {
                "tags": ["projects"],
                "summary": "Create or update a project by GitHub id",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Stored project"}}
            }
        },
        "/projects/{id}/upload": {
            "post": {
                "tags": ["projects"],
                "summary": "Upload an image or video for a project",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "formData", "name": "file", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated project"},
                    "404": {"description": "Project not found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/selected-projects/showcase-images": {
            "post": {
                "tags": ["content"],
                "summary": "Look up showcase images for selected projects without one",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Checked and updated projects"}}
            }
        },
        "/{collection}": {
            "get": {
                "tags": ["content"],
                "summary": "List a content collection in display order",
                "parameters": [{"$ref": "#/parameters/collection"}],
                "responses": {"200": {"description": "Records"}}
            },
            "post": {
                "tags": ["content"],
                "summary": "Create a record",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/collection"}],
                "responses": {
                    "201": {"description": "Created record"},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/{collection}/featured": {
            "get": {
                "tags": ["content"],
                "summary": "List featured records",
                "parameters": [{"$ref": "#/parameters/collection"}],
                "responses": {"200": {"description": "Records"}}
            }
        },
        "/{collection}/reorder": {
            "put": {
                "tags": ["content"],
                "summary": "Set the display order",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/collection"},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ReorderRequest"}}
                ],
                "responses": {"200": {"description": "Records in their new order"}}
            }
        },
        "/{collection}/{id}": {
            "get": {
                "tags": ["content"],
                "summary": "Get a record",
                "parameters": [{"$ref": "#/parameters/collection"}, {"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "Record"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["content"],
                "summary": "Update the fields present in the body",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/collection"}, {"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "Updated record"}}
            },
            "delete": {
                "tags": ["content"],
                "summary": "Delete a record",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/collection"}, {"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "Deleted", "schema": {"$ref": "#/definitions/SuccessResponse"}}}
            }
        },
        "/{collection}/{id}/move": {
            "put": {
                "tags": ["content"],
                "summary": "Move a record to a position",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/collection"},
                    {"$ref": "#/parameters/id"},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/MoveRequest"}}
                ],
                "responses": {"200": {"description": "Records in their new order"}}
            }
        }
    },
    "parameters": {
        "collection": {
            "in": "path",
            "name": "collection",
            "type": "string",
            "required": true,
            "enum": ["blogs", "linkedin-posts", "skills", "certifications", "education", "selected-projects"]
        },
        "id": {"in": "path", "name": "id", "type": "integer", "required": true}
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {"password": {"type": "string"}}
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "expiresAt": {"type": "string", "format": "date-time"}
            }
        },
        "ContactMessageRequest": {
            "type": "object",
            "required": ["name", "email", "subject", "message"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "subject": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "ReorderRequest": {
            "type": "object",
            "required": ["reorderedIds"],
            "properties": {"reorderedIds": {"type": "array", "items": {"type": "integer"}}}
        },
        "MoveRequest": {
            "type": "object",
            "required": ["position"],
            "properties": {"position": {"type": "integer", "minimum": 0}}
        },
        "SuccessResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and the admin token"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Portfolio API",
	Description:      "Content API for the portfolio site",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
