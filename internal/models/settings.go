package models

import (
	"encoding/json"
	"time"
)

// Settings keys understood by the club. Values live in the settings store
// as plain strings; ParseClubSettings interprets them.
const (
	SettingClubStartDate        = "club_start_date"        // YYYY-MM-DD
	SettingRespectRotationOrder = "respect_rotation_order" // "true" / "false"
	SettingAwardConfig          = "award_config"           // JSON, see AwardConfig
)

// AwardConfig controls whether an awards pseudo-month is inserted after
// every N completed phases.
type AwardConfig struct {
	Enabled           bool `json:"enabled"`
	PhasesBeforeAward int  `json:"phases_before_award"`
}

// ClubSettings is the parsed form of the raw settings map.
type ClubSettings struct {
	// StartDate anchors all phase and rotation math. Zero when unset;
	// check HasStartDate before using.
	StartDate    time.Time
	HasStartDate bool

	// RespectOrder selects sequential rotation when true, randomized
	// pool draws when false.
	RespectOrder bool

	Award AwardConfig
}

// ParseClubSettings interprets the raw settings map, applying safe
// defaults: no start date (callers decide how to degrade), sequential
// rotation, awards disabled. Unparseable values fall back to the default
// for that key; callers log the degradation where it matters.
func ParseClubSettings(raw map[string]string) ClubSettings {
	cs := ClubSettings{RespectOrder: true}

	if v, ok := raw[SettingClubStartDate]; ok && v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			cs.StartDate = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
			cs.HasStartDate = true
		}
	}

	if v, ok := raw[SettingRespectRotationOrder]; ok {
		cs.RespectOrder = v != "false"
	}

	if v, ok := raw[SettingAwardConfig]; ok && v != "" {
		var ac AwardConfig
		if err := json.Unmarshal([]byte(v), &ac); err == nil && ac.PhasesBeforeAward >= 1 {
			cs.Award = ac
		}
	}

	return cs
}
