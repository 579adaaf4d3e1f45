package models

const (
	MinSrsStage = 1
	MaxSrsStage = 9
)

// SrsStage is a named bucket over a contiguous range of numeric SRS stages.
type SrsStage struct {
	Name  string
	Start int
	End   int
}

// Contains reports whether the numeric stage falls in the bucket.
func (s SrsStage) Contains(stage int) bool {
	return stage >= s.Start && stage <= s.End
}

var (
	Apprentice  = SrsStage{Name: "Apprentice", Start: 1, End: 4}
	Guru        = SrsStage{Name: "Guru", Start: 5, End: 6}
	Master      = SrsStage{Name: "Master", Start: 7, End: 7}
	Enlightened = SrsStage{Name: "Enlightened", Start: 8, End: 8}
	Burned      = SrsStage{Name: "Burned", Start: 9, End: 9}
)

// SrsStages lists the buckets in progression order. Together they cover
// MinSrsStage..MaxSrsStage exactly once.
var SrsStages = [...]SrsStage{Apprentice, Guru, Master, Enlightened, Burned}

// AllRowName labels the wide-form total row.
const AllRowName = "All"

// StageItemCounts maps numeric stage -> item -> count.
type StageItemCounts map[int]map[Item]int

// NewStageItemCounts returns a table with every stage and item present at zero.
func NewStageItemCounts() StageItemCounts {
	counts := make(StageItemCounts, MaxSrsStage)
	for stage := MinSrsStage; stage <= MaxSrsStage; stage++ {
		row := make(map[Item]int, len(Items))
		for _, item := range Items {
			row[item] = 0
		}
		counts[stage] = row
	}
	return counts
}

// Sum totals item over the numeric stage range [start, end].
func (c StageItemCounts) Sum(item Item, start, end int) int {
	total := 0
	for stage := start; stage <= end; stage++ {
		total += c[stage][item]
	}
	return total
}
