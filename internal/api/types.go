package api

import "github.com/movieclubhq/backend/internal/models"

// monthLayout is the wire format for month path parameters and fields.
const monthLayout = "2006-01"

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// HealthResponse is the GET /healthz body.
type HealthResponse struct {
	Status string `json:"status"`
}

// MonthResponse answers "who is responsible for this month".
type MonthResponse struct {
	Month             string `json:"month"`
	Label             string `json:"label"`
	IsAwardsEvent     bool   `json:"is_awards_event"`
	AwardsEventNumber int    `json:"awards_event_number,omitempty"`
	Phase             int    `json:"phase,omitempty"`
}

// EventResponse wraps a confirmed event; Event is null for awards
// months, which never get one.
type EventResponse struct {
	Event *models.ConfirmedEvent `json:"event"`
}

// CreateParticipantRequest is the POST /api/v1/participants body.
type CreateParticipantRequest struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// ParticipantsResponse is the GET /api/v1/participants body.
type ParticipantsResponse struct {
	Participants []models.Participant `json:"participants"`
}

// SettingsResponse is the GET /api/v1/settings body; the same shape is
// accepted by PUT.
type SettingsResponse struct {
	Settings map[string]string `json:"settings"`
}
