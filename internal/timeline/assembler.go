package timeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/movieclubhq/backend/internal/models"
	"github.com/movieclubhq/backend/internal/rotation"
)

// bucketKey identifies the timeline bucket a month belongs to. Awards
// months bucket alone, keyed by their event number.
type bucketKey struct {
	phase    int
	isAward  bool
	awardNum int
}

// BuildTimeline assembles the full rotation view: every month known to
// the cache or the event store becomes one item, persisted events win
// any conflict, and items group into phase buckets split around the
// current calendar month. Missing configuration degrades to an empty or
// partial timeline; only store failures surface as errors.
func (s *Service) BuildTimeline(ctx context.Context) (*models.Timeline, error) {
	s.metrics.TimelineBuilds.Inc()
	started := time.Now()
	defer func() {
		s.metrics.TimelineBuildDuration.Observe(time.Since(started).Seconds())
	}()

	assignments := s.cache.AllAssignments()

	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	nowMonth := rotation.FirstOfMonth(s.now())

	items := make(map[time.Time]models.TimelineItem)
	buckets := make(map[time.Time]bucketKey)

	for month, a := range assignments {
		item := models.TimelineItem{Month: month}
		if a.IsAward() {
			item.IsAwardsEvent = true
			item.AwardsEventNumber = a.AwardNumber
			buckets[month] = bucketKey{isAward: true, awardNum: a.AwardNumber}
		} else {
			item.Person = a.Person
			buckets[month] = bucketKey{phase: a.Phase}
		}
		items[month] = item
	}

	// Persisted events override cached assignments for display. The
	// phase attribution stays with the cache where one exists so the
	// grouping cannot drift from the generated schedule.
	for _, e := range events {
		month := rotation.FirstOfMonth(e.Month)
		item := models.TimelineItem{
			Month:            month,
			Person:           e.Person,
			ConfirmedEventID: e.ID,
			MovieTitle:       e.MovieTitle,
		}
		if key, ok := buckets[month]; !ok || key.isAward {
			buckets[month] = bucketKey{phase: e.PhaseNumber}
		}
		items[month] = item
	}

	months := make([]time.Time, 0, len(items))
	for month := range items {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	timeline := &models.Timeline{
		Past:   []models.TimelinePhase{},
		Future: []models.TimelinePhase{},
	}

	var phases []models.TimelinePhase
	var keys []bucketKey
	for _, month := range months {
		item := items[month]
		item.State = temporalState(month, nowMonth)

		key := buckets[month]
		if len(phases) == 0 || keys[len(keys)-1] != key {
			number := key.phase
			if key.isAward {
				number = 0
			}
			phases = append(phases, models.TimelinePhase{Number: number, IsAwards: key.isAward})
			keys = append(keys, key)
		}
		last := len(phases) - 1
		phases[last].Items = append(phases[last].Items, item)
	}

	for i := range phases {
		bucket := phases[i]
		first := bucket.Items[0].Month
		last := bucket.Items[len(bucket.Items)-1].Month
		switch {
		case last.Before(nowMonth):
			timeline.Past = append(timeline.Past, bucket)
		case first.After(nowMonth):
			timeline.Future = append(timeline.Future, bucket)
		default:
			timeline.Current = &bucket
		}
	}

	return timeline, nil
}

func temporalState(month, nowMonth time.Time) models.TemporalState {
	switch {
	case month.Before(nowMonth):
		return models.StatePast
	case month.After(nowMonth):
		return models.StateFuture
	default:
		return models.StateCurrent
	}
}
