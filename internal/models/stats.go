package models

import "time"

// Assignment is the slice of an upstream assignment record the dashboard uses.
type Assignment struct {
	SrsStage    int    `json:"srs_stage"`
	SubjectType string `json:"subject_type"`
}

// LevelProgression is an upstream level record with raw, optional timestamps.
type LevelProgression struct {
	Level     int     `json:"level"`
	StartedAt *string `json:"started_at"`
	PassedAt  *string `json:"passed_at"`
}

// LevelProgress is a level's parsed timeline. Elapsed is nil when the level
// has not been started.
type LevelProgress struct {
	Level     int            `json:"level"`
	StartedAt *time.Time     `json:"started_at"`
	PassedAt  *time.Time     `json:"passed_at"`
	Elapsed   *time.Duration `json:"-"`
}

// Levels indexes LevelProgress by level number.
type Levels map[int]LevelProgress

// LevelUpStatistics summarises time-on-level in days. Every field is nil when
// no level has a defined elapsed time.
type LevelUpStatistics struct {
	Mean              *float64 `json:"mean"`
	Median            *float64 `json:"median"`
	Variance          *float64 `json:"variance"`
	StandardDeviation *float64 `json:"standard_deviation"`
	Min               *float64 `json:"min"`
	Max               *float64 `json:"max"`
}

// DeltaColorInverse tells the presentation layer that a negative delta is good.
const DeltaColorInverse = "inverse"

// LevelStats compares a level's duration with the level before it.
type LevelStats struct {
	Level               int      `json:"level"`
	TimeOnLevel         *float64 `json:"time_on_level"`
	PreviousLevel       *int     `json:"previous_level"`
	TimeOnPreviousLevel *float64 `json:"time_on_previous_level"`
	Delta               *float64 `json:"delta"`
	DeltaColor          string   `json:"delta_color"`
}

// LevelUpPoint is one bar of the level-up time chart.
type LevelUpPoint struct {
	Level int     `json:"level"`
	Days  float64 `json:"days"`
}

// BreakdownEntry is one long-form row: an item's count within a named stage.
type BreakdownEntry struct {
	Item  string `json:"item"`
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// BreakdownRow is one wide-form row, keyed by item label.
type BreakdownRow struct {
	Stage  string         `json:"stage"`
	Counts map[string]int `json:"counts"`
}

// StageBreakdown carries both table shapes derived from the same counts.
type StageBreakdown struct {
	Long []BreakdownEntry `json:"long"`
	Wide []BreakdownRow   `json:"wide"`
}

// LearnedTotal is the Guru-or-above count for one item.
type LearnedTotal struct {
	Item  Item   `json:"item"`
	Label string `json:"label"`
	Count int    `json:"count"`
}
