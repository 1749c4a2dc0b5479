package model

// Participant is one side of a scheduling request, with busy intervals
// already materialized. Built per request, never persisted.
type Participant struct {
	ID            int64
	DisplayName   string
	BusyIntervals []TimeInterval
}
