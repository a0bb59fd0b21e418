package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Board Portal API",
        "description": "School portal backend: notices, homework, routines, class times and the lock console",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Visitor, student and admin logins"},
        {"name": "Notices", "description": "School-wide announcements"},
        {"name": "Homework", "description": "Assignment entries"},
        {"name": "Routines", "description": "Weekly class routines"},
        {"name": "ClassTimes", "description": "Class time schedule"},
        {"name": "Locks", "description": "Lock snapshots and admin lock controls"},
        {"name": "Admin", "description": "Applications and account roles"},
        {"name": "Assistant", "description": "Canned-response helper"},
        {"name": "Exports", "description": "Schedule downloads"}
    ],
    "paths": {
        "/auth/visitor": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Visitor login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VisitorLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/admin/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Administrator login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/student/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Student login with outcome",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Outcome: pending, approved, rejected or invalidCredentials"}
                }
            }
        },
        "/auth/apply": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Submit a student application",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplicationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Username taken"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/session": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current session and route decision",
                "parameters": [
                    {"name": "route", "in": "query", "type": "string", "enum": ["entry", "home", "admin"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/notices": {
            "get": {
                "tags": ["Notices"],
                "summary": "List notices",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Notices"],
                "summary": "Create notice",
                "security": [{"Bearer": []}],
                "responses": {
                    "201": {"description": "Created"},
                    "423": {"description": "Content locked"}
                }
            }
        },
        "/notices/{id}": {
            "get": {
                "tags": ["Notices"],
                "summary": "Get notice",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Notices"],
                "summary": "Update notice",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "423": {"description": "Content locked"}}
            },
            "delete": {
                "tags": ["Notices"],
                "summary": "Delete notice",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"204": {"description": "No Content"}, "423": {"description": "Content locked"}}
            }
        },
        "/homework": {
            "get": {"tags": ["Homework"], "summary": "List homework", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Homework"], "summary": "Create homework", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}, "423": {"description": "Content locked"}}}
        },
        "/homework/{id}": {
            "get": {"tags": ["Homework"], "summary": "Get homework", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Homework"], "summary": "Update homework", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "423": {"description": "Content locked"}}},
            "delete": {"tags": ["Homework"], "summary": "Delete homework", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"204": {"description": "No Content"}, "423": {"description": "Content locked"}}}
        },
        "/routines": {
            "get": {"tags": ["Routines"], "summary": "List routines", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Routines"], "summary": "Create routine", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}, "423": {"description": "Content locked"}}}
        },
        "/routines/{id}": {
            "get": {"tags": ["Routines"], "summary": "Get routine", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Routines"], "summary": "Update routine", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "423": {"description": "Content locked"}}},
            "delete": {"tags": ["Routines"], "summary": "Delete routine", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"204": {"description": "No Content"}, "423": {"description": "Content locked"}}}
        },
        "/class-times": {
            "get": {"tags": ["ClassTimes"], "summary": "List class times", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["ClassTimes"], "summary": "Create class time", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}, "423": {"description": "Content locked"}}}
        },
        "/class-times/{id}": {
            "get": {"tags": ["ClassTimes"], "summary": "Get class time", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["ClassTimes"], "summary": "Update class time", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "423": {"description": "Content locked"}}},
            "delete": {"tags": ["ClassTimes"], "summary": "Delete class time", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"204": {"description": "No Content"}, "423": {"description": "Content locked"}}}
        },
        "/locks/{section}": {
            "get": {
                "tags": ["Locks"],
                "summary": "Section lock snapshot",
                "parameters": [{"name": "section", "in": "path", "required": true, "type": "string", "enum": ["notices", "homework", "routine", "classTime"]}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SectionSnapshot"}}}
            }
        },
        "/locks/{section}/retry": {
            "post": {
                "tags": ["Locks"],
                "summary": "Resume paused lock polling",
                "parameters": [{"name": "section", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/admin/locks": {
            "get": {
                "tags": ["Locks"],
                "summary": "Full lock state",
                "security": [{"Bearer": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/locks/master": {
            "put": {
                "tags": ["Locks"],
                "summary": "Set master lock",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LockStateRequest"}}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/locks/{section}": {
            "put": {
                "tags": ["Locks"],
                "summary": "Set section lock",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "section", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LockStateRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/locks/{section}/{id}": {
            "put": {
                "tags": ["Locks"],
                "summary": "Set item lock",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "section", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LockStateRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/applications": {
            "get": {
                "tags": ["Admin"],
                "summary": "List student applications",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "status", "in": "query", "type": "string", "enum": ["pending", "approved", "rejected"]}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/applications/{id}/review": {
            "post": {
                "tags": ["Admin"],
                "summary": "Approve or reject an application",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Already reviewed"}}
            }
        },
        "/admin/students": {
            "get": {
                "tags": ["Admin"],
                "summary": "List approved students",
                "security": [{"Bearer": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/students/{id}/promote": {
            "post": {
                "tags": ["Admin"],
                "summary": "Promote student to editor",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/admin/students/{id}/demote": {
            "post": {
                "tags": ["Admin"],
                "summary": "Demote editor to student",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/assistant/ask": {
            "post": {
                "tags": ["Assistant"],
                "summary": "Ask the portal assistant",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/exports/class-times": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export class time schedule",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/exports/routines": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export weekly routines",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}],
                "responses": {"200": {"description": "File"}}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "VisitorLoginRequest": {
            "type": "object",
            "required": ["display_name"],
            "properties": {
                "display_name": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ApplicationRequest": {
            "type": "object",
            "required": ["username", "password", "full_name", "class_name", "class_section"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"},
                "class_name": {"type": "string"},
                "class_section": {"type": "string"}
            }
        },
        "LockStateRequest": {
            "type": "object",
            "required": ["locked"],
            "properties": {
                "locked": {"type": "boolean"}
            }
        },
        "SectionSnapshot": {
            "type": "object",
            "properties": {
                "section": {"type": "string"},
                "master": {"type": "boolean"},
                "locked": {"type": "boolean"},
                "items": {"type": "object"},
                "refreshed_at": {"type": "string"}
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
