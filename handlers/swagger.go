package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRoutes) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>newsbook-api - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing important auth endpoints used in Phase‑02.
// OpenAPI document describing the public API surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "newsbook-api", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Error": { "type": "object", "properties": { "status": {"type":"integer"}, "message": {"type":"string"}, "errors": {"type":"array","items":{"type":"object","properties":{"field":{"type":"string"},"message":{"type":"string"}}}}, "details": {"type":"string"} } },
      "Identity": { "type": "object", "properties": { "id": {"type":"string"}, "name": {"type":"string"}, "email": {"type":"string"} } },
      "ArticleFields": { "type": "object", "required": ["keyword","title","text","date","source","link","image"], "properties": { "keyword": {"type":"string"}, "title": {"type":"string"}, "text": {"type":"string"}, "date": {"type":"string"}, "source": {"type":"string"}, "link": {"type":"string","format":"uri"}, "image": {"type":"string","format":"uri"} } }
    }
  },
  "paths": {
    "/auth/signup": {
      "post": { "summary": "Register an account", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "201": { "description": "created identity" }, "400": { "description": "validation failed" }, "409": { "description": "email already registered" } } }
    },
    "/auth/signin": {
      "post": { "summary": "Exchange credentials for a token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "token and user" }, "401": { "description": "invalid credentials" } } }
    },
    "/auth/me": {
      "get": { "summary": "Current user", "security": [{"bearer": []}], "responses": { "200": { "description": "user" }, "401": { "description": "missing or invalid token" } } }
    },
    "/articles": {
      "get": { "summary": "List saved articles, newest first", "security": [{"bearer": []}], "responses": { "200": { "description": "articles" }, "401": { "description": "missing or invalid token" } } },
      "post": { "summary": "Save an article", "security": [{"bearer": []}], "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/ArticleFields"}}}}, "responses": { "201": { "description": "saved article" }, "400": { "description": "validation failed" }, "401": { "description": "missing or invalid token" } } }
    },
    "/articles/{id}": {
      "delete": { "summary": "Delete a saved article", "security": [{"bearer": []}], "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "deleted" }, "403": { "description": "not your article" }, "404": { "description": "article not found" } } }
    },
    "/search": {
      "get": { "summary": "Search news", "parameters": [{"name":"q","in":"query","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "query, total, items" }, "400": { "description": "missing query" }, "502": { "description": "news provider error" } } }
    },
    "/healthz": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "ok" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
