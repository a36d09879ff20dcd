// Package scorecard implements scorecard version lifecycle and comparison.
// Versions of an opportunity form an append-only history: a new version is
// a deep copy of the latest one, and older versions are never mutated.
package scorecard

import (
	"time"

	"github.com/truckline/bdm-console/internal/model"
)

// NewVersion derives the next version for current's opportunity key. The
// returned scorecard deep-copies current's answers (current is typically
// the latest version being edited), takes latest.Version+1, an empty ID
// (assigned at persist time), and fresh timestamps; latest itself is left
// untouched.
//
// If latest is nil (no prior version exists for the opportunity key), the
// current in-memory record is returned for an in-place update instead of
// failing; its answers are not copied and its version is unchanged.
func NewVersion(latest, current *model.Scorecard, now time.Time) *model.Scorecard {
	if latest == nil {
		current.UpdatedAt = now
		return current
	}
	next := current.Clone()
	next.ID = ""
	next.Version = latest.Version + 1
	next.CreatedAt = now
	next.UpdatedAt = now
	return next
}

// Latest returns the record with the maximum version number among cards
// sharing an opportunity key, or nil for an empty slice. Version numbers
// are unique per key, so ties cannot occur.
func Latest(cards []model.Scorecard) *model.Scorecard {
	var latest *model.Scorecard
	for i := range cards {
		if latest == nil || cards[i].Version > latest.Version {
			latest = &cards[i]
		}
	}
	return latest
}
