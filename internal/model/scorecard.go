package model

import "time"

// Category names the five FAINT qualification categories.
type Category string

const (
	CategoryFunds     Category = "funds"
	CategoryAuthority Category = "authority"
	CategoryInterest  Category = "interest"
	CategoryNeed      Category = "need"
	CategoryTiming    Category = "timing"
)

// Categories lists the five FAINT categories in display order.
var Categories = []Category{
	CategoryFunds,
	CategoryAuthority,
	CategoryInterest,
	CategoryNeed,
	CategoryTiming,
}

// Scorecard is one version of a FAINT qualification scorecard. Versions of
// the same opportunity share an OpportunityKey; each version is immutable
// once a newer version exists.
type Scorecard struct {
	ID                string   `json:"id"`
	Version           int      `json:"version"`
	AccountManager    string   `json:"account_manager"`
	CustomerName      string   `json:"customer_name"`
	OpportunityName   string   `json:"opportunity_name"`
	ExpectedOrderDate string   `json:"expected_order_date,omitempty"`
	ReviewDate        string   `json:"review_date,omitempty"`
	Archived          bool     `json:"archived,omitempty"`
	Pinned            bool     `json:"pinned,omitempty"`
	Tags              []string `json:"tags,omitempty"`

	Funds     FAINTComponent `json:"funds"`
	Authority FAINTComponent `json:"authority"`
	Interest  FAINTComponent `json:"interest"`
	Need      FAINTComponent `json:"need"`
	Timing    FAINTComponent `json:"timing"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OpportunityKey identifies the same deal across scorecard versions.
type OpportunityKey struct {
	OpportunityName string `json:"opportunity_name"`
	CustomerName    string `json:"customer_name"`
}

// Key returns the scorecard's opportunity key.
func (s *Scorecard) Key() OpportunityKey {
	return OpportunityKey{OpportunityName: s.OpportunityName, CustomerName: s.CustomerName}
}

// Component returns the answer list for the named category. Unknown
// categories return nil.
func (s *Scorecard) Component(c Category) FAINTComponent {
	switch c {
	case CategoryFunds:
		return s.Funds
	case CategoryAuthority:
		return s.Authority
	case CategoryInterest:
		return s.Interest
	case CategoryNeed:
		return s.Need
	case CategoryTiming:
		return s.Timing
	}
	return nil
}

// SetComponent replaces the answer list for the named category.
func (s *Scorecard) SetComponent(c Category, comp FAINTComponent) {
	switch c {
	case CategoryFunds:
		s.Funds = comp
	case CategoryAuthority:
		s.Authority = comp
	case CategoryInterest:
		s.Interest = comp
	case CategoryNeed:
		s.Need = comp
	case CategoryTiming:
		s.Timing = comp
	}
}

// NewScorecard returns a version-1 scorecard with every question blank.
func NewScorecard(accountManager, customerName, opportunityName string) *Scorecard {
	s := &Scorecard{
		Version:         1,
		AccountManager:  accountManager,
		CustomerName:    customerName,
		OpportunityName: opportunityName,
	}
	for _, c := range Categories {
		s.SetComponent(c, NewComponent())
	}
	return s
}

// Clone returns a deep copy of the scorecard; answer arrays are copied, not
// shared.
func (s *Scorecard) Clone() *Scorecard {
	out := *s
	if s.Tags != nil {
		out.Tags = append([]string(nil), s.Tags...)
	}
	for _, c := range Categories {
		out.SetComponent(c, s.Component(c).Clone())
	}
	return &out
}
