package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/cors"
)

// maxBodyBytes caps a submitted form.
const maxBodyBytes = 1 << 20

// RouterConfig configures the HTTP router.
type RouterConfig struct {
	AllowedOrigins []string
	WebDir         string
}

// pages maps clean URLs to the static files that render them.
var pages = map[string]string{
	"/":             "index.html",
	"/check":        "check.html",
	"/confirmation": "confirmation.html",
}

// NewRouter wires every endpoint onto a ServeMux behind CORS.
func NewRouter(api *API, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeReply(w, api.Health(r.Context()))
	})
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeReply(w, api.Health(r.Context()))
	})

	mux.HandleFunc("GET /api/landlords/{landlordId}", func(w http.ResponseWriter, r *http.Request) {
		writeReply(w, api.GetLandlord(r.Context(), r.PathValue("landlordId")))
	})
	mux.HandleFunc("GET /api/landlords/{landlordId}/submissions", func(w http.ResponseWriter, r *http.Request) {
		writeReply(w, api.LandlordSubmissions(r.Context(), r.PathValue("landlordId")))
	})
	mux.HandleFunc("GET /api/landlords/{landlordId}/submissions/{submissionId}", func(w http.ResponseWriter, r *http.Request) {
		writeReply(w, api.LandlordSubmission(r.Context(), r.PathValue("landlordId"), r.PathValue("submissionId")))
	})

	mux.HandleFunc("POST /api/submissions", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeReply(w, message(http.StatusBadRequest, "Invalid request body"))
			return
		}
		writeReply(w, api.Submit(r.Context(), body))
	})

	mux.HandleFunc("GET /api/tenants/{email}", func(w http.ResponseWriter, r *http.Request) {
		writeReply(w, api.GetTenant(r.Context(), r.PathValue("email")))
	})
	mux.HandleFunc("GET /api/tenants/{email}/history", func(w http.ResponseWriter, r *http.Request) {
		writeReply(w, api.TenantHistory(r.Context(), r.PathValue("email")))
	})

	initDatabase := func(w http.ResponseWriter, r *http.Request) {
		writeReply(w, api.InitDatabase(r.Context()))
	}
	mux.HandleFunc("GET /api/init-database", initDatabase)
	mux.HandleFunc("POST /api/init-database", initDatabase)

	mux.HandleFunc("GET /", staticHandler(cfg.WebDir))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(mux)
}

// staticHandler serves the web pages, refusing paths outside webDir.
func staticHandler(webDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if page, ok := pages[urlPath]; ok {
			urlPath = "/" + page
		}

		filePath := filepath.Join(webDir, filepath.FromSlash(urlPath))

		// Security check: prevent directory traversal
		absPath, err := filepath.Abs(filePath)
		if err != nil {
			http.Error(w, "Invalid path", http.StatusBadRequest)
			return
		}
		absWebDir, _ := filepath.Abs(webDir)
		if absPath != absWebDir && !strings.HasPrefix(absPath, absWebDir+string(filepath.Separator)) {
			http.Error(w, "Access denied", http.StatusForbidden)
			return
		}

		info, err := os.Stat(absPath)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, absPath)
	}
}

func writeReply(w http.ResponseWriter, reply Reply) {
	writeJSON(w, reply.Status, reply.Body)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
