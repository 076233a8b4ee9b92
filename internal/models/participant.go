package models

// Participant represents a club member in the monthly rotation.
// Participants are created and edited by club administration; the
// rotation engine only reads them.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string `json:"id"`

	// Name is the display name. Unique within the club.
	Name string `json:"name"`

	// Order establishes the canonical rotation sequence and the
	// pool-refill sequence in randomized mode. Lower comes first.
	Order int `json:"order"`

	// CreatedAt is the Unix timestamp when the participant was added.
	CreatedAt int64 `json:"created_at"`
}
