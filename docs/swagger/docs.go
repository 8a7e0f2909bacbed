// Package swagger registers the casebundle OpenAPI document with swag.
// Regenerate with go generate ./docs after changing handler annotations.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/jackzampolin/casebundle"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Reports that the HTTP server is up",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.HealthResponse"
                        }
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Reports whether the settings store and case database are open",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/endpoints.HealthResponse"
                        }
                    }
                }
            }
        },
        "/status": {
            "get": {
                "description": "Shows the home directory, output directory, case database and effective pagination defaults",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Server status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.StatusResponse"
                        }
                    }
                }
            }
        },
        "/api/bundles/preview": {
            "post": {
                "description": "Plans page ranges for the documents without reading or writing any PDF",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bundles"
                ],
                "summary": "Preview a table of contents",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Documents to plan",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/endpoints.PreviewRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.PreviewResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/bundles/compile": {
            "post": {
                "description": "Stamps, merges and writes the bundle PDF. Missing documents are reported with success false.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bundles"
                ],
                "summary": "Compile a bundle",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Bundle to compile",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/endpoints.CompileRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.CompileResult"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/bundles/validate": {
            "post": {
                "description": "Checks TOC entries for gaps and overlaps and, when pdf_path exists, its page count",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bundles"
                ],
                "summary": "Validate pagination",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Entries and bundle path",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/endpoints.ValidateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.ValidationResult"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/cases": {
            "get": {
                "description": "Lists the cases in the case database, newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "cases"
                ],
                "summary": "List cases",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ListCasesResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/cases/{id}/documents": {
            "get": {
                "description": "Returns the ordered bundle documents of a case and a table of contents preview",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "cases"
                ],
                "summary": "List case documents",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Case ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.CaseDocumentsResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/cases/{id}/compile": {
            "post": {
                "description": "Compiles the documents of a case in their stored order. The bundle is named after the case unless bundle_name is set.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "cases"
                ],
                "summary": "Compile a case bundle",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Case ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Overrides",
                        "name": "request",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/endpoints.CompileCaseRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.CompileResult"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/documents/inspect": {
            "post": {
                "description": "Reads the page count, document title and size of a PDF on the server",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "documents"
                ],
                "summary": "Inspect a PDF",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "PDF path",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/endpoints.InspectRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pdfgraph.Info"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/settings": {
            "get": {
                "description": "Get every setting with its effective value (override, config file or default)",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "List all settings",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.SettingsResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/settings/{key}": {
            "get": {
                "description": "Get the effective value of a single setting",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "Get a setting",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Setting key (URL-encoded)",
                        "name": "key",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.SettingResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "description": "Store an override for a setting and apply it to the running server",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "Update a setting",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Setting key (URL-encoded)",
                        "name": "key",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New value",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/endpoints.UpdateSettingRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.SettingResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/settings/reset/{key}": {
            "post": {
                "description": "Remove the stored override so the config file or built-in default applies",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "Reset a setting to default",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Setting key (URL-encoded)",
                        "name": "key",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.SettingResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "endpoints.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "endpoints.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "case_store": {
                    "type": "string"
                },
                "settings": {
                    "type": "string"
                }
            }
        },
        "endpoints.PaginationInfo": {
            "type": "object",
            "properties": {
                "format": {
                    "type": "string"
                },
                "position": {
                    "type": "string"
                },
                "font_size": {
                    "type": "number"
                },
                "late_insert_mode": {
                    "type": "string"
                },
                "bookmarks": {
                    "type": "boolean"
                }
            }
        },
        "endpoints.StatusResponse": {
            "type": "object",
            "properties": {
                "server": {
                    "type": "string"
                },
                "home": {
                    "type": "string"
                },
                "config_file": {
                    "type": "string"
                },
                "output_dir": {
                    "type": "string"
                },
                "case_store": {
                    "type": "string"
                },
                "pagination": {
                    "$ref": "#/definitions/endpoints.PaginationInfo"
                }
            }
        },
        "endpoints.PreviewRequest": {
            "type": "object",
            "properties": {
                "documents": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.BundleDocument"
                    }
                },
                "late_insert": {
                    "$ref": "#/definitions/types.LateInsert"
                }
            }
        },
        "endpoints.PreviewResponse": {
            "type": "object",
            "properties": {
                "toc_entries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.TOCEntry"
                    }
                },
                "toc_pages": {
                    "type": "integer"
                },
                "total_pages": {
                    "type": "integer"
                }
            }
        },
        "endpoints.CompileRequest": {
            "type": "object",
            "properties": {
                "documents": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.BundleDocument"
                    }
                },
                "output_dir": {
                    "type": "string"
                },
                "bundle_name": {
                    "type": "string"
                },
                "style": {
                    "$ref": "#/definitions/manifest.Style"
                },
                "late_insert": {
                    "$ref": "#/definitions/types.LateInsert"
                }
            }
        },
        "endpoints.ValidateRequest": {
            "type": "object",
            "properties": {
                "entries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.TOCEntry"
                    }
                },
                "pdf_path": {
                    "type": "string"
                }
            }
        },
        "endpoints.ListCasesResponse": {
            "type": "object",
            "properties": {
                "cases": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/casestore.Case"
                    }
                }
            }
        },
        "endpoints.CaseDocumentsResponse": {
            "type": "object",
            "properties": {
                "case": {
                    "$ref": "#/definitions/casestore.Case"
                },
                "documents": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.BundleDocument"
                    }
                },
                "toc_entries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.TOCEntry"
                    }
                },
                "total_pages": {
                    "type": "integer"
                }
            }
        },
        "endpoints.CompileCaseRequest": {
            "type": "object",
            "properties": {
                "output_dir": {
                    "type": "string"
                },
                "bundle_name": {
                    "type": "string"
                },
                "style": {
                    "$ref": "#/definitions/manifest.Style"
                },
                "late_insert": {
                    "$ref": "#/definitions/types.LateInsert"
                }
            }
        },
        "endpoints.InspectRequest": {
            "type": "object",
            "properties": {
                "path": {
                    "type": "string"
                }
            }
        },
        "endpoints.SettingsResponse": {
            "type": "object",
            "properties": {
                "settings": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/config.Entry"
                    }
                }
            }
        },
        "endpoints.SettingResponse": {
            "type": "object",
            "properties": {
                "entry": {
                    "$ref": "#/definitions/config.Entry"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "endpoints.UpdateSettingRequest": {
            "type": "object",
            "properties": {
                "value": {},
                "description": {
                    "type": "string"
                }
            }
        },
        "config.Entry": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                },
                "value": {},
                "description": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "casestore.Case": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "case_type": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "manifest.Style": {
            "type": "object",
            "properties": {
                "format": {
                    "type": "string"
                },
                "position": {
                    "type": "string"
                },
                "font_size": {
                    "type": "number"
                }
            }
        },
        "pdfgraph.Info": {
            "type": "object",
            "properties": {
                "path": {
                    "type": "string"
                },
                "page_count": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "encrypted": {
                    "type": "boolean"
                },
                "file_size": {
                    "type": "integer"
                }
            }
        },
        "types.BundleDocument": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "file_path": {
                    "type": "string"
                },
                "label": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "page_count": {
                    "type": "integer"
                }
            }
        },
        "types.LateInsert": {
            "type": "object",
            "properties": {
                "mode": {
                    "type": "string",
                    "enum": [
                        "repaginate",
                        "sub_number"
                    ]
                },
                "after": {
                    "type": "integer"
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "types.TOCEntry": {
            "type": "object",
            "properties": {
                "label": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "start_page": {
                    "type": "integer"
                },
                "end_page": {
                    "type": "integer"
                },
                "page_count": {
                    "type": "integer"
                },
                "first_label": {
                    "type": "string"
                },
                "last_label": {
                    "type": "string"
                }
            }
        },
        "types.CompileResult": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "pdf_path": {
                    "type": "string"
                },
                "toc_entries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.TOCEntry"
                    }
                },
                "total_pages": {
                    "type": "integer"
                },
                "errors": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "warnings": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "types.ValidationError": {
            "type": "object",
            "properties": {
                "error_type": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "page": {
                    "type": "integer"
                },
                "expected": {
                    "type": "integer"
                },
                "actual": {
                    "type": "integer"
                }
            }
        },
        "types.ValidationResult": {
            "type": "object",
            "properties": {
                "is_valid": {
                    "type": "boolean"
                },
                "errors": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.ValidationError"
                    }
                },
                "warnings": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "casebundle API",
	Description:      "Compiles court bundles: ordered PDFs with a table of contents and stamped page numbers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
