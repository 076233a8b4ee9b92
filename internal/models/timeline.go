package models

import "time"

// TemporalState classifies a timeline item relative to the current
// calendar month. Time of day never matters, only year and month.
type TemporalState string

const (
	StatePast    TemporalState = "past"
	StateCurrent TemporalState = "current"
	StateFuture  TemporalState = "future"
)

// TimelineItem is one rendered month of the assembled timeline. It is
// either a cache prediction or a confirmed event; ConfirmedEventID is
// non-empty exactly when persisted data won the merge.
type TimelineItem struct {
	Month             time.Time     `json:"month"`
	Person            string        `json:"person,omitempty"`
	IsAwardsEvent     bool          `json:"is_awards_event"`
	AwardsEventNumber int           `json:"awards_event_number,omitempty"`
	ConfirmedEventID  string        `json:"confirmed_event_id,omitempty"`
	MovieTitle        string        `json:"movie_title,omitempty"`
	State             TemporalState `json:"state"`
}

// TimelinePhase is one bucket of the assembled timeline. Regular buckets
// carry a strictly sequential phase number; an awards-only bucket has
// Number 0 and IsAwards set, and sits between the phase it follows and
// the phase it precedes.
type TimelinePhase struct {
	Number   int            `json:"number"`
	IsAwards bool           `json:"is_awards"`
	Items    []TimelineItem `json:"items"`
}

// Timeline is the assembled rotation view: at most one current bucket,
// plus chronologically ordered past and future buckets.
type Timeline struct {
	Current *TimelinePhase  `json:"current"`
	Past    []TimelinePhase `json:"past"`
	Future  []TimelinePhase `json:"future"`
}
