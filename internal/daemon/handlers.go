package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/thenoetrevino/deskboard/internal/models"
	"github.com/thenoetrevino/deskboard/internal/services/ticket"
)

// Handler returns the API routes wrapped in request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+models.RouteBoard, s.handleGetBoard)
	mux.HandleFunc("PATCH "+models.RouteReorder, s.handleReorder)
	mux.HandleFunc("POST "+models.RouteTickets, s.handleCreateTicket)
	mux.HandleFunc("GET "+models.RouteTickets+"/{ref}", s.handleGetTicket)
	mux.HandleFunc("DELETE "+models.RouteTickets+"/{ref}", s.handleDeleteTicket)
	mux.HandleFunc("GET "+models.RouteMetrics, s.handleMetrics)
	mux.HandleFunc("GET "+models.RouteHealth, s.handleHealth)
	return s.logRequests(mux)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := s.svc.GetBoard(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.IncBoardFetches()
	s.writeJSON(w, http.StatusOK, board)
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var cmd models.ReorderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		s.badBody(w, err)
		return
	}

	result, err := s.svc.Reorder(r.Context(), cmd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.IncReordersCommitted()
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req models.NewTicket
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badBody(w, err)
		return
	}

	t, err := s.svc.CreateTicket(r.Context(), ticket.CreateTicketRequest{
		Subject:  req.Subject,
		Status:   req.Status,
		Priority: req.Priority,
		Assignee: req.Assignee,
		Company:  req.Company,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("ticket created", "id", t.ID, "number", t.Number, "status", t.Status)
	s.writeJSON(w, http.StatusCreated, t)
}

// handleGetTicket serves a ticket by id or number ("12" or "#12")
func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.GetTicket(r.Context(), r.PathValue("ref"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

// handleDeleteTicket removes a ticket by id or number and answers with the
// removed ticket. Siblings keep their orders.
func (s *Server) handleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.GetTicket(r.Context(), r.PathValue("ref"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.DeleteTicket(r.Context(), t.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("ticket deleted", "id", t.ID, "number", t.Number)
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) badBody(w http.ResponseWriter, err error) {
	s.metrics.IncValidationRejections()
	s.writeJSON(w, http.StatusBadRequest, models.APIError{
		Error: "invalid request body",
		Code:  models.CodeValidation,
		Details: []string{
			err.Error(),
		},
	})
}

// writeError maps service errors onto status codes: validation 400, missing
// ticket 404, stale board 409, anything else 500
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case ticket.IsValidation(err):
		s.metrics.IncValidationRejections()
		s.writeJSON(w, http.StatusBadRequest, models.APIError{
			Error:   "invalid request",
			Code:    models.CodeValidation,
			Details: ticket.Details(err),
		})
	case errors.Is(err, ticket.ErrTicketNotFound):
		s.metrics.IncValidationRejections()
		s.writeJSON(w, http.StatusNotFound, models.APIError{
			Error: err.Error(),
			Code:  models.CodeNotFound,
		})
	case errors.Is(err, ticket.ErrConflict):
		s.metrics.IncConflicts()
		s.writeJSON(w, http.StatusConflict, models.APIError{
			Error: err.Error(),
			Code:  models.CodeConflict,
		})
	default:
		s.metrics.IncFailures()
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		s.writeJSON(w, http.StatusInternalServerError, models.APIError{
			Error: "internal error",
			Code:  models.CodeInternal,
		})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("failed to write response", "error", err)
	}
}

// statusRecorder remembers the status code written
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				s.metrics.IncFailures()
				s.logger.Error("handler panic", "path", r.URL.Path, "panic", fmt.Sprint(p))
				rec.WriteHeader(http.StatusInternalServerError)
			}
			s.logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start))
		}()

		next.ServeHTTP(rec, r)
	})
}
