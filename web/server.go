// Package web exposes the comparison engine to the browser grid as a JSON
// API.
package web

import (
	"embed"
	"io/fs"
	"log"
	"net/http"

	"permsync/reconcile"
)

//go:embed static
var staticFS embed.FS

// Server handles HTTP requests for the web interface.
type Server struct {
	service *reconcile.Service
	mux     *http.ServeMux
	addr    string
}

// NewServer creates a new web server instance.
func NewServer(service *reconcile.Service, addr string) *Server {
	s := &Server{
		service: service,
		mux:     http.NewServeMux(),
		addr:    addr,
	}
	s.registerRoutes()
	return s
}

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/domains", s.handleListDomains)
	s.mux.HandleFunc("POST /api/compare", s.handleCompare)
	s.mux.HandleFunc("POST /api/rows/apply", s.handleRowApply)
	s.mux.HandleFunc("POST /api/rows/delete", s.handleRowDelete)
	s.mux.HandleFunc("POST /api/save", s.handleBulkSave)

	pageFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Printf("Warning: Could not load embedded page: %v", err)
		return
	}
	s.mux.Handle("/", http.FileServer(http.FS(pageFS)))
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler returns the HTTP handler for use with custom servers and tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}
