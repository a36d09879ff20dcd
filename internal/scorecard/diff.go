package scorecard

import (
	"fmt"

	"github.com/truckline/bdm-console/internal/model"
	"github.com/truckline/bdm-console/internal/scoring"
)

// QuestionChange records how one question differs between two versions.
type QuestionChange struct {
	Index        int  `json:"index"`
	StateChanged bool `json:"state_changed"`
	NoteChanged  bool `json:"note_changed"`
}

// Changed reports whether either the state or the note differs.
func (c QuestionChange) Changed() bool {
	return c.StateChanged || c.NoteChanged
}

// CategoryDiff aggregates question changes within one category.
type CategoryDiff struct {
	Category  model.Category   `json:"category"`
	Changed   int              `json:"changed"`
	Questions []QuestionChange `json:"questions"`
}

// Diff is the full comparison of two versions of the same opportunity.
type Diff struct {
	OldVersion       int            `json:"old_version"`
	NewVersion       int            `json:"new_version"`
	Categories       []CategoryDiff `json:"categories"`
	ChangedQuestions int            `json:"changed_questions"`
	PositiveDelta    int            `json:"positive_delta"`
	NegativeDelta    int            `json:"negative_delta"`
}

// Compare diffs two versions sharing an opportunity key. Callers must
// supply records known to share a key; mismatched keys are not a defined
// operation. Question lists are positionally aligned by construction.
func Compare(old, new_ *model.Scorecard) Diff {
	d := Diff{
		OldVersion: old.Version,
		NewVersion: new_.Version,
		Categories: make([]CategoryDiff, 0, len(model.Categories)),
	}
	for _, cat := range model.Categories {
		cd := diffCategory(cat, old.Component(cat), new_.Component(cat))
		d.Categories = append(d.Categories, cd)
		d.ChangedQuestions += cd.Changed
	}

	oldScore := scoring.Score(old)
	newScore := scoring.Score(new_)
	d.PositiveDelta = newScore.Positives - oldScore.Positives
	d.NegativeDelta = newScore.Negatives - oldScore.Negatives
	return d
}

func diffCategory(cat model.Category, old, new_ model.FAINTComponent) CategoryDiff {
	cd := CategoryDiff{Category: cat}
	n := len(old)
	if len(new_) > n {
		n = len(new_)
	}
	for i := 0; i < n; i++ {
		var oldQ, newQ model.QuestionData
		if i < len(old) {
			oldQ = old[i]
		}
		if i < len(new_) {
			newQ = new_[i]
		}
		qc := QuestionChange{
			Index:        i,
			StateChanged: oldQ.State != newQ.State,
			NoteChanged:  oldQ.Note != newQ.Note,
		}
		cd.Questions = append(cd.Questions, qc)
		if qc.Changed() {
			cd.Changed++
		}
	}
	return cd
}

// FormatDelta renders a count delta with an explicit sign for display:
// "+2", "-1", "0".
func FormatDelta(d int) string {
	if d > 0 {
		return fmt.Sprintf("+%d", d)
	}
	return fmt.Sprintf("%d", d)
}
