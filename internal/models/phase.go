package models

import "time"

// Phase represents a contiguous block of months during which each
// participant hosts exactly once. Phase length equals the participant
// count at creation time; phase 1 starts at the club start date.
//
// Phase records are persisted lazily: one is created the first time any
// month inside it is requested, and never recreated once present.
type Phase struct {
	// ID is the unique identifier for the phase (UUID format).
	ID string `json:"id"`

	// Number is the 1-based phase number. Unique and strictly
	// sequential across the club's history.
	Number int `json:"number"`

	// StartMonth and EndMonth bound the phase, inclusive, both
	// first-of-month dates.
	StartMonth time.Time `json:"start_month"`
	EndMonth   time.Time `json:"end_month"`

	// Participants is a snapshot of participant names at phase
	// creation time, in rotation order.
	Participants []string `json:"participants"`

	// CreatedAt is the Unix timestamp when the phase record was persisted.
	CreatedAt int64 `json:"created_at"`
}
