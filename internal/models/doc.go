// Package models defines the core domain models for the movie club backend.
//
// # Current Models
//
//   - Participant: A club member taking part in the monthly rotation
//   - ClubSettings: Parsed club-level settings (start date, rotation order, awards)
//   - Phase: A contiguous block of months, one per participant
//   - ConfirmedEvent: A persisted movie night, authoritative for its month
//   - Timeline / TimelinePhase / TimelineItem: The assembled rotation view
//
// Participants are identified by name; names are unique within the club.
//
// # Design Principles
//
// 1. **Persistence-neutral**: models carry no SQL concerns; the storage layer maps them
// 2. **Months are dates**: every month field is a time.Time truncated to the first of the month, UTC
// 3. **Avoid circular references**: relationships use ID strings, not pointers
package models
