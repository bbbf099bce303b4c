// Package docs serves the generated API documentation: the Swagger UI page
// and the artifact YAML it loads. The artifact must have been produced by a
// prior `apidocgen docs` run; this package never generates anything itself.
package docs

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"apidocgen/internal/config"
	"apidocgen/internal/logging"
)

// Handler serves the Swagger UI and the generated OpenAPI specification.
type Handler struct {
	server   config.ServerConfig
	specPath string
}

// NewHandler creates a documentation handler. specPath is the artifact file
// written by the documentation pipeline.
func NewHandler(server config.ServerConfig, specPath string) *Handler {
	return &Handler{server: server, specPath: specPath}
}

// SpecRoute is the URL path the artifact is served under.
const SpecRoute = "/static/api_documentation_swagger.yaml"

// ServeSwaggerUI serves the Swagger UI interface.
func (h *Handler) ServeSwaggerUI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	logging.Debug("serving Swagger UI for path: %s", r.URL.Path)

	html := h.swaggerHTML(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// ServeSpec serves the generated OpenAPI specification file.
func (h *Handler) ServeSpec(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	logging.Debug("serving OpenAPI spec for path: %s", r.URL.Path)

	if _, err := os.Stat(h.specPath); os.IsNotExist(err) {
		logging.Warn("OpenAPI spec file not found: %s (run `apidocgen docs` first)", h.specPath)
		http.Error(w, "API documentation not generated yet", http.StatusNotFound)
		return
	}

	content, err := os.ReadFile(h.specPath)
	if err != nil {
		logging.Error("failed to read OpenAPI spec: %v", err)
		http.Error(w, "Failed to read API documentation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Access-Control-Allow-Origin", "*") // Allow CORS for Swagger UI
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// swaggerHTML generates the Swagger UI page pointed at the spec route.
func (h *Handler) swaggerHTML(r *http.Request) string {
	// Use the request host, falling back to server config when a client
	// sends no Host header.
	host := r.Host
	if host == "" {
		logging.Warn("request Host header is empty, falling back to server config")
		if h.server.Host == "0.0.0.0" || h.server.Host == "" {
			host = fmt.Sprintf("localhost:%d", h.server.Port)
		} else {
			host = fmt.Sprintf("%s:%d", h.server.Host, h.server.Port)
		}
	}

	// Detect HTTPS via direct TLS state or common proxy headers.
	isHTTPS := r.TLS != nil ||
		r.Header.Get("X-Forwarded-Proto") == "https" ||
		r.Header.Get("X-Forwarded-Scheme") == "https" ||
		strings.ToLower(r.Header.Get("X-Forwarded-Ssl")) == "on"

	scheme := "http"
	if isHTTPS {
		scheme = "https"
	}
	baseURL := fmt.Sprintf("%s://%s", scheme, host)
	logging.Debug("Swagger UI using base URL: %s", baseURL)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css" />
    <style>
        html {
            box-sizing: border-box;
            overflow: -moz-scrollbars-vertical;
            overflow-y: scroll;
        }
        *, *:before, *:after {
            box-sizing: inherit;
        }
        body {
            margin:0;
            background: #fafafa;
        }
        %s
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-standalone-preset.js"></script>
    <script>
        window.onload = function() {
            const ui = SwaggerUIBundle({
                url: '%s%s',
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                plugins: [
                    SwaggerUIBundle.plugins.DownloadUrl
                ],
                layout: "StandaloneLayout",
                docExpansion: "list",
                displayRequestDuration: true,
                filter: true,
                supportedSubmitMethods: ['get', 'post', 'put', 'delete', 'patch']
            });
        };
    </script>
</body>
</html>`, h.server.UITitle, h.themeCSS(), baseURL, SpecRoute)
}

// themeCSS returns CSS for the configured theme.
func (h *Handler) themeCSS() string {
	if strings.ToLower(h.server.Theme) == "dark" {
		return `
        body {
            background: #1f1f1f !important;
        }
        .swagger-ui {
            filter: invert(88%) hue-rotate(180deg);
        }
        .swagger-ui .microlight {
            filter: invert(100%) hue-rotate(180deg);
        }`
	}
	return ""
}

// Mux returns the documentation routes mounted on a fresh ServeMux.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/swagger", h.ServeSwaggerUI)
	mux.HandleFunc(SpecRoute, h.ServeSpec)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/swagger", http.StatusFound)
			return
		}
		http.NotFound(w, r)
	})
	return mux
}
