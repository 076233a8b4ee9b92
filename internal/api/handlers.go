package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/movieclubhq/backend/internal/models"
	"github.com/movieclubhq/backend/internal/storage"
	"github.com/movieclubhq/backend/internal/timeline"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleTimeline handles GET /api/v1/timeline.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	tl, err := s.svc.BuildTimeline(r.Context())
	if err != nil {
		s.logger.Error("failed to build timeline", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build timeline")
		return
	}
	writeJSON(w, http.StatusOK, tl)
}

// handleMonth handles GET /api/v1/months/{month} and answers who is
// responsible for that month.
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	month, ok := s.parseMonth(w, r)
	if !ok {
		return
	}

	assignment, ok := s.svc.GetPersonForMonth(month)
	if !ok {
		writeError(w, http.StatusNotFound, "no assignment for "+month.Format(monthLayout))
		return
	}

	writeJSON(w, http.StatusOK, MonthResponse{
		Month:             month.Format(monthLayout),
		Label:             assignment.Label(),
		IsAwardsEvent:     assignment.IsAward(),
		AwardsEventNumber: assignment.AwardNumber,
		Phase:             assignment.Phase,
	})
}

// handleCreateEvent handles POST /api/v1/months/{month}/event. For an
// awards month the response carries a null event.
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	month, ok := s.parseMonth(w, r)
	if !ok {
		return
	}

	event, err := s.svc.GetOrCreateConfirmedEventForMonth(r.Context(), month)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "no assignment for "+month.Format(monthLayout))
		return
	case errors.Is(err, timeline.ErrNoStartDate), errors.Is(err, timeline.ErrNoParticipants):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		s.logger.Error("failed to confirm event", "month", month.Format(monthLayout), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to confirm event")
		return
	}

	writeJSON(w, http.StatusOK, EventResponse{Event: event})
}

// handleListParticipants handles GET /api/v1/participants.
func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := s.store.ListParticipants(r.Context())
	if err != nil {
		s.logger.Error("failed to list participants", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list participants")
		return
	}
	if participants == nil {
		participants = []models.Participant{}
	}
	writeJSON(w, http.StatusOK, ParticipantsResponse{Participants: participants})
}

// handleCreateParticipant handles POST /api/v1/participants and
// refreshes the rotation cache.
func (s *Server) handleCreateParticipant(w http.ResponseWriter, r *http.Request) {
	var req CreateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	participant := &models.Participant{Name: req.Name, Order: req.Order}
	if err := s.store.CreateParticipant(r.Context(), participant); err != nil {
		s.logger.Error("failed to create participant", "name", req.Name, "error", err)
		writeError(w, http.StatusConflict, "failed to create participant")
		return
	}

	s.refreshCache(r.Context())
	writeJSON(w, http.StatusCreated, participant)
}

// handleDeleteParticipant handles DELETE /api/v1/participants/{id} and
// refreshes the rotation cache.
func (s *Server) handleDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteParticipant(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "participant not found")
			return
		}
		s.logger.Error("failed to delete participant", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete participant")
		return
	}

	s.refreshCache(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// handleGetSettings handles GET /api/v1/settings.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.GetSettings(r.Context())
	if err != nil {
		s.logger.Error("failed to get settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	writeJSON(w, http.StatusOK, SettingsResponse{Settings: settings})
}

// handlePutSettings handles PUT /api/v1/settings and refreshes the
// rotation cache so schedule-affecting changes take effect immediately.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	for key, value := range req.Settings {
		if err := s.store.SetSetting(r.Context(), key, value); err != nil {
			s.logger.Error("failed to set setting", "key", key, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
	}

	s.refreshCache(r.Context())
	s.handleGetSettings(w, r)
}

// handleRefresh handles POST /api/v1/rotation/refresh.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Refresh(r.Context()); err != nil {
		s.logger.Error("failed to refresh rotation cache", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to refresh rotation cache")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) parseMonth(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.PathValue("month")
	month, err := time.Parse(monthLayout, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return time.Time{}, false
	}
	return month, true
}

// refreshCache rebuilds the schedule after a mutation. Failures are
// logged, not surfaced: the mutation itself already succeeded.
func (s *Server) refreshCache(ctx context.Context) {
	if err := s.svc.Refresh(ctx); err != nil {
		s.logger.Error("failed to refresh rotation cache", "error", err)
	}
}
