// Package httpapi exposes the dialog and statistics over HTTP.
// A chat platform webhook (or any client) posts user events and receives the
// bot's replies in the response body.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/runoshun/hourlog/internal/domain"
	"github.com/runoshun/hourlog/internal/usecase"
)

// maxBodyBytes bounds the size of an event request.
const maxBodyBytes = 64 << 10

// Server routes HTTP requests to the use cases.
// Fields are ordered to minimize memory padding.
type Server struct {
	router   chi.Router
	dialog   *usecase.Dialog
	stats    *usecase.ShowStats
	projects *usecase.ListProjects
	report   *usecase.ShowReportLink
	logger   domain.Logger
}

// New creates a Server. The dialog must present through a Collector.
func New(
	dialog *usecase.Dialog,
	stats *usecase.ShowStats,
	projects *usecase.ListProjects,
	report *usecase.ShowReportLink,
	logger domain.Logger,
) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		dialog:   dialog,
		stats:    stats,
		projects: projects,
		report:   report,
		logger:   logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/events", s.handleEvent)
		r.Get("/users/{userID}/stats", s.handleStats)
		r.Get("/projects", s.handleProjects)
		r.Get("/report", s.handleReport)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("", "http", fmt.Sprintf("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var ev domain.Event
	switch {
	case req.Data != "":
		// Unknown data still reaches the dialog, which answers "invalid choice".
		ev, _ = domain.ParseEventData(req.Data)
	case req.Text != "":
		ev = domain.EventFromText(req.Text)
	default:
		writeError(w, http.StatusBadRequest, "text or data is required")
		return
	}

	ctx, replies := withSink(r.Context())
	out, err := s.dialog.Execute(ctx, usecase.DialogInput{
		UserID:   req.UserID,
		Username: req.Username,
		Event:    ev,
	})
	if err != nil {
		s.logger.Error(req.UserID, "http", fmt.Sprintf("dialog turn failed: %v", err))
		writeError(w, http.StatusInternalServerError, "dialog failed")
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(out, replies.drain()))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	period := domain.PeriodAll
	if p := r.URL.Query().Get("period"); p != "" {
		period = domain.Period(p)
		if !period.IsValid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid period %q", p))
			return
		}
	}

	out, err := s.stats.Execute(r.Context(), usecase.ShowStatsInput{
		UserID:        chi.URLParam(r, "userID"),
		Username:      r.URL.Query().Get("username"),
		ProjectFilter: r.URL.Query().Get("project"),
		Period:        period,
		SkipChart:     true,
	})
	if err != nil {
		s.logger.Error("", "http", fmt.Sprintf("stats failed: %v", err))
		writeError(w, http.StatusInternalServerError, "could not load statistics")
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(out))
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	out, err := s.projects.Execute(r.Context(), usecase.ListProjectsInput{})
	if err != nil {
		s.logger.Error("", "http", fmt.Sprintf("list projects failed: %v", err))
		writeError(w, http.StatusInternalServerError, "could not list projects")
		return
	}
	resp := make([]projectJSON, 0, len(out.Projects))
	for _, p := range out.Projects {
		resp = append(resp, projectJSON{ID: p.ID, Name: p.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	out, err := s.report.Execute(r.Context(), usecase.ShowReportLinkInput{})
	if errors.Is(err, domain.ErrNoReportLink) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not resolve report link")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": out.URL})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
