package availability

import (
	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/ansokolv/social-calendar-backend/internal/pkg/interval"
)

// Verdict is the availability answer for one proposed interval: a per
// participant available flag plus the display names of everyone in conflict,
// in the order the participants were given.
type Verdict struct {
	Available        map[int64]bool
	ConflictingNames []string
}

// Check evaluates a proposed interval against every participant's busy
// intervals independently. A participant with no busy intervals is always
// available. The requester is just another participant in the list.
func Check(proposed model.TimeInterval, participants []*model.Participant) *Verdict {
	v := &Verdict{
		Available: make(map[int64]bool, len(participants)),
	}

	for _, p := range participants {
		conflict := interval.HasConflict(proposed, p.BusyIntervals)
		v.Available[p.ID] = !conflict
		if conflict {
			v.ConflictingNames = append(v.ConflictingNames, p.DisplayName)
		}
	}

	return v
}
