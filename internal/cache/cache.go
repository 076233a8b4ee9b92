// Package cache holds the materialized month-to-assignment schedule.
// It is a read-optimized derived view: built once at startup (and again
// on settings changes) from the rotation generator, never a source of
// truth. Regenerating with the same inputs yields the same map.
package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/movieclubhq/backend/internal/models"
	"github.com/movieclubhq/backend/internal/rotation"
)

// DefaultHorizonMonths is the nominal look-ahead of the schedule, five
// years. The generator extends past it as needed so the final phase
// completes.
const DefaultHorizonMonths = 60

// Cache is safe for concurrent readers. Initialize swaps the whole map
// under the lock, so readers never observe a partially built schedule.
type Cache struct {
	mu          sync.RWMutex
	assignments map[time.Time]rotation.Assignment
	initialized bool
}

func New() *Cache {
	return &Cache{}
}

// Initialize builds the full schedule from the rotation generator and
// swaps it in. Participants are snapshotted in rotation order. An empty
// participant list installs an empty schedule, not an error.
func (c *Cache) Initialize(
	participants []models.Participant,
	start time.Time,
	mode rotation.Mode,
	award models.AwardConfig,
) {
	ordered := make([]models.Participant, len(participants))
	copy(ordered, participants)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})
	names := make([]string, len(ordered))
	for i, p := range ordered {
		names[i] = p.Name
	}

	schedule := rotation.Generate(start, names, mode, 0, award, DefaultHorizonMonths)

	c.mu.Lock()
	c.assignments = schedule
	c.initialized = true
	c.mu.Unlock()
}

// Initialized reports whether a schedule has been installed.
func (c *Cache) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// Lookup returns the assignment for the month containing t, if one
// exists in the schedule.
func (c *Cache) Lookup(t time.Time) (rotation.Assignment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.assignments[rotation.FirstOfMonth(t)]
	return a, ok
}

// AllAssignments returns a snapshot copy of the schedule. Mutating the
// returned map does not affect the cache.
func (c *Cache) AllAssignments() map[time.Time]rotation.Assignment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make(map[time.Time]rotation.Assignment, len(c.assignments))
	for month, a := range c.assignments {
		snapshot[month] = a
	}
	return snapshot
}

// Size returns the number of cached assignments.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.assignments)
}
