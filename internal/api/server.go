// Package api exposes the preview compiler over HTTP.
package api

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	tex2html "github.com/alnah/go-tex2html"
)

// maxSnapshotBytes caps one posted snapshot (sources plus assets).
const maxSnapshotBytes = 32 << 20

// Server is the HTTP compile API. Each request carries a complete snapshot
// of sources and assets, so the server itself holds no document state.
type Server struct {
	router   chi.Router
	compiler *tex2html.Compiler
	log      *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(compiler *tex2html.Compiler, log *slog.Logger) *Server {
	s := &Server{
		compiler: compiler,
		log:      log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/compile", s.handleCompile)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// compileRequest is one posted snapshot. Assets are base64-encoded.
type compileRequest struct {
	Entry  string            `json:"entry"`
	Files  map[string]string `json:"files"`
	Assets map[string]string `json:"assets"`
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	assets := tex2html.MapAssets{}
	for name, encoded := range req.Assets {
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "asset "+name+" is not valid base64")
			return
		}
		assets[name] = data
	}

	result := s.compiler.Compile(r.Context(), req.Entry, tex2html.MapFiles(req.Files), assets)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.log.Error("encoding compile response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
