// Package api is the HTTP and WebSocket transport layer: a thin
// adapter over package admission's business logic, built on
// go-chi/chi/v5 and apperr.Error/apperr.Code.HTTPStatus for uniform
// error-to-status mapping.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pdarena.dev/service/admission"
	"pdarena.dev/service/broadcast"
	"pdarena.dev/service/logx"
	"pdarena.dev/service/store"
	"pdarena.dev/service/types"
)

// Server wires the Admission API's HTTP surface plus the Stream
// Handlers onto one chi router.
type Server struct {
	admission *admission.Service
	store *store.Store
	broadcaster *broadcast.Broadcaster
	logger *logx.Logger
	info types.Info
}

// New creates a Server.
func New(admissionService *admission.Service, st *store.Store, broadcaster *broadcast.Broadcaster, logger *logx.Logger, info types.Info) *Server {
	return &Server{admission: admissionService, store: st, broadcaster: broadcaster, logger: logger, info: info}
}

// Router builds the chi router exposing every named endpoint.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/public/info", s.handleInfo)

	r.Post("/public/submission/new", adapt(s.admission.NewSubmission))
	r.Post("/public/submission/view", adaptSlice(s.admission.ViewSubmissions))
	r.Post("/public/tournament/new", adapt(s.admission.NewTournament))
	r.Post("/public/tournament/view", adaptSlice(s.admission.ViewTournaments))
	r.Post("/public/tournament_data/new", adapt(s.admission.UpdateTournamentData))
	r.Post("/public/tournament_data/view", adaptSlice(s.admission.ViewTournamentData))
	r.Post("/public/tournament_submission/new", adapt(s.admission.NewTournamentSubmission))
	r.Post("/public/tournament_submission/view", adaptSlice(s.admission.ViewTournamentSubmissions))
	r.Post("/public/match_resolution/view", adaptSlice(s.admission.ViewMatchResolutions))

	r.Get("/public/ws/match_resolution_lite/stream", s.handleMatchResolutionStream)
	r.Get("/public/ws/tournament_submission/stream", s.handleTournamentSubmissionStream)

	r.NotFound(writeError(http.StatusNotFound, "NotFound"))
	r.MethodNotAllowed(writeError(http.StatusMethodNotAllowed, "MethodNotAllowed"))

	return r
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.info)
}

func writeError(status int, code string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, map[string]string{"code": code})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
