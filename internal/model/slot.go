package model

type DayPart int

const (
	DayPartMorning DayPart = iota
	DayPartAfternoon
	DayPartEvening
)

// CandidateSlot is a proposed meeting interval with its availability verdict
// and heuristic score. Discarded once the scheduling session ends.
type CandidateSlot struct {
	Interval         TimeInterval
	Available        map[int64]bool
	ConflictingNames []string
	Score            int
}
