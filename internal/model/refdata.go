package model

// Dealership is one dealer location. Each dealership is owned by exactly
// one BDM.
type Dealership struct {
	DealerID   string `json:"dealer_id" yaml:"dealer_id"`
	Dealership string `json:"dealership" yaml:"dealership"`
	// DealerGroup is empty for dealerships outside any group.
	DealerGroup string `json:"dealer_group,omitempty" yaml:"dealer_group,omitempty"`
	BDMID       string `json:"bdm_id" yaml:"bdm_id"`
	State       string `json:"state" yaml:"state"`
	Region      string `json:"region" yaml:"region"`
}

// BDM is a business development manager. A manager-flagged BDM sees every
// dealer group and dealership, not only their own.
type BDM struct {
	BDMID     string `json:"bdm_id" yaml:"bdm_id"`
	FullName  string `json:"full_name" yaml:"full_name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	IsManager bool   `json:"is_manager" yaml:"is_manager"`
}
