package models

// Overview bundles what the dashboard's landing view needs in one response.
type Overview struct {
	Profile      *UserProfile      `json:"profile"`
	Learned      []LearnedTotal    `json:"learned"`
	Statistics   LevelUpStatistics `json:"statistics"`
	CurrentLevel *LevelStats       `json:"current_level,omitempty"`
	Levels       []int             `json:"levels"`
}
