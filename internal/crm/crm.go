// Package crm defines customer account records kept alongside the
// qualification scorecards: the company itself, its stakeholders, and
// the fleet it currently runs.
package crm

import (
	"time"
)

// Company is an account record for a fleet operator or prospect.
type Company struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	ABN      string `json:"abn,omitempty" db:"abn"`
	Industry string `json:"industry,omitempty" db:"industry"`

	// Contact
	Phone string `json:"phone,omitempty" db:"phone"`
	Email string `json:"email,omitempty" db:"email"`

	// Primary address (denormalized)
	Street  string `json:"street,omitempty" db:"street"`
	City    string `json:"city,omitempty" db:"city"`
	State   string `json:"state,omitempty" db:"state"`
	ZipCode string `json:"zip_code,omitempty" db:"zip_code"`

	// Owning business development manager, empty when unassigned.
	BDMID string `json:"bdm_id,omitempty" db:"bdm_id"`

	Notes string `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Stakeholder is a named contact inside a company.
type Stakeholder struct {
	ID        int64     `json:"id" db:"id"`
	CompanyID int64     `json:"company_id" db:"company_id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Title     string    `json:"title,omitempty" db:"title"`
	Email     string    `json:"email,omitempty" db:"email"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	IsPrimary bool      `json:"is_primary" db:"is_primary"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FleetItem records a truck type the company currently operates.
type FleetItem struct {
	ID        int64  `json:"id" db:"id"`
	CompanyID int64  `json:"company_id" db:"company_id"`
	Make      string `json:"make,omitempty" db:"make"`
	Model     string `json:"model,omitempty" db:"model"`
	BodyType  string `json:"body_type,omitempty" db:"body_type"`
	Quantity  int    `json:"quantity" db:"quantity"`
	Year      int    `json:"year,omitempty" db:"year"`
	// ReplaceDue is free text like "Q3 2027"; replacement timing is an
	// estimate the BDM records, not a computed date.
	ReplaceDue string    `json:"replace_due,omitempty" db:"replace_due"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
