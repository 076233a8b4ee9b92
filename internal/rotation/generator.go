package rotation

import (
	"math/rand"
	"time"

	"github.com/movieclubhq/backend/internal/models"
)

// drawSeed fixes the randomized mode's generator. Reproducibility is a
// correctness requirement, not a convenience: the cache must be able to
// regenerate the exact same schedule for the same inputs at any time.
const drawSeed int64 = 20240311

// Generate produces the month-to-assignment schedule from start
// (truncated to the first of its month) through at least horizonMonths
// calendar months. The schedule always runs to the end of the phase in
// progress at the nominal horizon, plus the awards month that phase
// completion triggers, if any; a horizon never cuts a phase in half.
//
// A phase is len(participants) consecutive non-award months. In
// sequential mode the host of event index i is
// participants[(monthsSinceStart+i) mod n]; event indexes count assigned
// months only, so awards months never shift the rotation. Randomized
// mode draws without replacement from a per-phase pool refilled in
// participant order, consuming exactly one draw per assigned month and
// none for awards months; monthsSinceStart is unused there, which keeps
// regeneration idempotent.
//
// After phase p completes, if awards are enabled and p is a multiple of
// award.PhasesBeforeAward, the next calendar month becomes "Awards
// Event k" (k counts awards emitted, starting at 1).
//
// Because the pool is refilled independently at each phase boundary, the
// last host of one phase may legitimately be drawn again as the first
// host of the next. That is an accepted outcome of independent per-phase
// sampling, not a bug.
//
// Empty participants yields an empty map.
func Generate(
	start time.Time,
	participants []string,
	mode Mode,
	monthsSinceStart int,
	award models.AwardConfig,
	horizonMonths int,
) map[time.Time]Assignment {
	schedule := make(map[time.Time]Assignment)
	n := len(participants)
	if n == 0 || horizonMonths <= 0 {
		return schedule
	}

	rng := rand.New(rand.NewSource(drawSeed))
	var pool []string

	month := FirstOfMonth(start)
	eventIdx := 0
	awardNum := 0
	pendingAward := false

	for cal := 0; cal < horizonMonths || eventIdx%n != 0 || pendingAward; cal++ {
		if pendingAward {
			awardNum++
			schedule[month] = Assignment{
				Month:       month,
				Kind:        KindAward,
				AwardNumber: awardNum,
				Phase:       eventIdx / n,
			}
			pendingAward = false
			month = month.AddDate(0, 1, 0)
			continue
		}

		var person string
		switch mode {
		case ModeSequential:
			idx := (monthsSinceStart + eventIdx) % n
			if idx < 0 {
				idx += n
			}
			person = participants[idx]
		case ModeRandomized:
			if len(pool) == 0 {
				pool = append(pool, participants...)
			}
			j := rng.Intn(len(pool))
			person = pool[j]
			pool = append(pool[:j], pool[j+1:]...)
		}

		schedule[month] = Assignment{
			Month:  month,
			Kind:   KindPerson,
			Person: person,
			Phase:  eventIdx/n + 1,
		}
		eventIdx++

		if eventIdx%n == 0 && award.Enabled && award.PhasesBeforeAward >= 1 &&
			(eventIdx/n)%award.PhasesBeforeAward == 0 {
			pendingAward = true
		}

		month = month.AddDate(0, 1, 0)
	}

	return schedule
}
