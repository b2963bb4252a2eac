// Package devserver exposes the simulated backend over the same REST
// surface the remote backend speaks. It exists for two reasons: local
// development against a realistic API, and the mode-transparency tests that
// run the facade contract over HTTP.
package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/atriumhq/atrium/internal/logging"
	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/atriumhq/atrium/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server adapts the service facades to HTTP handlers.
type Server struct {
	jobs   ports.JobService
	dir    ports.DirectoryService
	token  string
	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithToken requires a bearer token on every API request.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler builds the HTTP handler for the given facades.
func NewHandler(jobs ports.JobService, dir ports.DirectoryService, opts ...Option) http.Handler {
	s := &Server{
		jobs:   jobs,
		dir:    dir,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.auth)

		r.Get("/jobs", s.listJobs)
		r.Post("/jobs", s.createJob)
		r.Get("/jobs/search", s.searchJobs)
		r.Get("/jobs/{id}", s.getJob)
		r.Put("/jobs/{id}", s.updateJob)
		r.Post("/jobs/{id}/close", s.closeJob)
		r.Post("/jobs/{id}/applications", s.apply)
		r.Get("/jobs/{id}/applications/{actor}", s.hasApplied)

		r.Get("/directory", s.listProfiles)
		r.Get("/directory/search", s.searchProfiles)
		r.Get("/directory/suggest", s.suggest)
		r.Get("/directory/{id}", s.getProfile)
	})
	return r
}

// auth enforces the bearer token when one is configured.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if got != s.token {
				writeJSON(w, http.StatusUnauthorized, domain.Fail[any]("Invalid or missing token."))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.jobs.List(r.Context()))
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.jobs.GetByID(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) searchJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.jobs.Search(r.Context(), r.URL.Query().Get("q")))
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var draft domain.JobPosting
	if !s.decode(w, r, &draft) {
		return
	}
	writeJSON(w, http.StatusOK, s.jobs.Create(r.Context(), draft))
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	var job domain.JobPosting
	if !s.decode(w, r, &job) {
		return
	}
	job.ID = chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, s.jobs.Update(r.Context(), job))
}

func (s *Server) closeJob(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.jobs.Close(r.Context(), chi.URLParam(r, "id")))
}

// applyRequest is the body of POST /jobs/{id}/applications.
type applyRequest struct {
	ActorID string `json:"actor_id"`
	Note    string `json:"note"`
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request) {
	var body applyRequest
	if !s.decode(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, s.jobs.Apply(r.Context(), chi.URLParam(r, "id"), body.ActorID, body.Note))
}

func (s *Server) hasApplied(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.jobs.HasApplied(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "actor")))
}

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dir.List(r.Context()))
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dir.GetByID(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) searchProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dir.Search(r.Context(), r.URL.Query().Get("q")))
}

func (s *Server) suggest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dir.Suggest(r.Context(), r.URL.Query().Get("q")))
}

// decode parses a JSON body, answering 400 with a failure envelope on
// malformed input. Returns false when the request was already answered.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusBadRequest, domain.Fail[any]("Invalid request body."))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
