package models

import "time"

// ConfirmedEvent is a persisted movie night. For its month it is
// authoritative: it overrides whatever the rotation cache predicted,
// without mutating the deterministic generation. Only confirmed events
// carry movie metadata.
type ConfirmedEvent struct {
	// ID is the unique identifier for the event (UUID format).
	ID string `json:"id"`

	// Month is the first-of-month date the event belongs to.
	Month time.Time `json:"month"`

	// Person is the name of the responsible participant.
	Person string `json:"person"`

	// PhaseNumber is the phase the event belongs to.
	PhaseNumber int `json:"phase_number"`

	// MovieTitle is the chosen movie, if any.
	MovieTitle string `json:"movie_title,omitempty"`

	// CreatedAt is the Unix timestamp when the event was persisted.
	CreatedAt int64 `json:"created_at"`
}
