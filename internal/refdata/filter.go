// Package refdata filters dealership and BDM reference data for the
// dashboard's cascading selection controls.
package refdata

import (
	"sort"

	"github.com/truckline/bdm-console/internal/model"
)

// Selection is the dashboard's current filter state. Empty fields mean "no
// selection"; the three fields mutually refine each other.
type Selection struct {
	BDMID       string `json:"bdm_id,omitempty"`
	DealerGroup string `json:"dealer_group,omitempty"`
	DealerID    string `json:"dealer_id,omitempty"`
}

// regionRank orders dealer groups for display. Unknown regions sort after
// all known ones, keeping their original relative order.
var regionRank = map[string]int{
	"Metro":       0,
	"Regional":    1,
	"Independent": 2,
	"NZ":          3,
	"Internal":    4,
}

// visibleDealerships applies the BDM visibility rule: a selected
// non-manager BDM sees only their own dealerships; managers and empty
// selections see everything.
func visibleDealerships(dealerships []model.Dealership, bdms []model.BDM, sel Selection) []model.Dealership {
	if sel.BDMID == "" || isManager(bdms, sel.BDMID) {
		return dealerships
	}
	var out []model.Dealership
	for _, d := range dealerships {
		if d.BDMID == sel.BDMID {
			out = append(out, d)
		}
	}
	return out
}

func isManager(bdms []model.BDM, bdmID string) bool {
	for _, b := range bdms {
		if b.BDMID == bdmID {
			return b.IsManager
		}
	}
	return false
}

// DealerGroups returns the distinct non-empty dealer groups visible to the
// selection, sorted by region priority. Each group's region comes from the
// first dealership found carrying that group value.
func DealerGroups(dealerships []model.Dealership, bdms []model.BDM, sel Selection) []string {
	visible := visibleDealerships(dealerships, bdms, sel)

	regionByGroup := make(map[string]string)
	var groups []string
	for _, d := range visible {
		if d.DealerGroup == "" {
			continue
		}
		if _, seen := regionByGroup[d.DealerGroup]; !seen {
			regionByGroup[d.DealerGroup] = d.Region
			groups = append(groups, d.DealerGroup)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groupRank(regionByGroup[groups[i]]) < groupRank(regionByGroup[groups[j]])
	})
	return groups
}

func groupRank(region string) int {
	if r, ok := regionRank[region]; ok {
		return r
	}
	return len(regionRank)
}

// Dealerships returns the dealerships visible to the selection, further
// narrowed to the selected dealer group when one is set.
func Dealerships(dealerships []model.Dealership, bdms []model.BDM, sel Selection) []model.Dealership {
	visible := visibleDealerships(dealerships, bdms, sel)
	if sel.DealerGroup == "" {
		return visible
	}
	var out []model.Dealership
	for _, d := range visible {
		if d.DealerGroup == sel.DealerGroup {
			out = append(out, d)
		}
	}
	return out
}

// SoleCandidateBDM reports whether the current group/dealership selection
// narrows the candidate BDM set to exactly one, returning that BDM.
// Applying it to the selection is the caller's decision; the filter
// functions themselves never mutate selection state.
func SoleCandidateBDM(dealerships []model.Dealership, bdms []model.BDM, sel Selection) (model.BDM, bool) {
	if sel.DealerGroup == "" && sel.DealerID == "" {
		return model.BDM{}, false
	}

	candidates := map[string]bool{}
	for _, d := range Dealerships(dealerships, bdms, sel) {
		if sel.DealerID != "" && d.DealerID != sel.DealerID {
			continue
		}
		candidates[d.BDMID] = true
	}
	if len(candidates) != 1 {
		return model.BDM{}, false
	}
	for _, b := range bdms {
		if candidates[b.BDMID] {
			return b, true
		}
	}
	return model.BDM{}, false
}

// ResolveDealerIDs resolves a selection to the set of dealer IDs used for
// metric aggregation: the selected dealership, else the selected group's
// dealerships, else the selected BDM's dealerships, else all.
func ResolveDealerIDs(dealerships []model.Dealership, sel Selection) []string {
	if sel.DealerID != "" {
		return []string{sel.DealerID}
	}
	if sel.DealerGroup != "" {
		var ids []string
		for _, d := range dealerships {
			if d.DealerGroup == sel.DealerGroup {
				ids = append(ids, d.DealerID)
			}
		}
		return ids
	}
	if sel.BDMID != "" {
		var ids []string
		for _, d := range dealerships {
			if d.BDMID == sel.BDMID {
				ids = append(ids, d.DealerID)
			}
		}
		return ids
	}
	ids := make([]string, 0, len(dealerships))
	for _, d := range dealerships {
		ids = append(ids, d.DealerID)
	}
	return ids
}
