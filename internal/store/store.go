package store

import (
	"context"

	"github.com/truckline/bdm-console/internal/model"
)

// ScorecardFilter specifies criteria for listing scorecards.
type ScorecardFilter struct {
	AccountManager string `json:"account_manager,omitempty"`
	CustomerName   string `json:"customer_name,omitempty"`
	Archived       *bool  `json:"archived,omitempty"`
	Pinned         *bool  `json:"pinned,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	Offset         int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for scorecards and frameworks.
type Store interface {
	// Scorecards
	CreateScorecard(ctx context.Context, sc *model.Scorecard) error
	UpdateScorecard(ctx context.Context, sc *model.Scorecard) error
	GetScorecard(ctx context.Context, id string) (*model.Scorecard, error)
	ListScorecards(ctx context.Context, filter ScorecardFilter) ([]model.Scorecard, error)
	ListVersions(ctx context.Context, key model.OpportunityKey) ([]model.Scorecard, error)
	LatestVersion(ctx context.Context, key model.OpportunityKey) (*model.Scorecard, error)
	// CreateNextVersion persists a new version derived from the latest
	// record sharing current's opportunity key. With no prior version it
	// degrades to an in-place update of current.
	CreateNextVersion(ctx context.Context, current *model.Scorecard) (*model.Scorecard, error)

	// Frameworks
	ListFrameworks(ctx context.Context, activeOnly bool) ([]model.QualificationFramework, error)
	GetFramework(ctx context.Context, id string) (*model.QualificationFramework, error)
	UpsertFramework(ctx context.Context, f *model.QualificationFramework) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
