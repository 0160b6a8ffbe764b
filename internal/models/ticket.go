package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ------------------------------------------------------------------------
// Status enumerates the ticket lifecycle states. Every state may
// transition to every other state; Pending is the default initial state
// and the one the duplicate-suppression check looks at.
// ------------------------------------------------------------------------
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusResolved
	StatusClosed
)

var statusLabels = [...]string{
	StatusPending:    "Pending",
	StatusInProgress: "In Progress",
	StatusResolved:   "Resolved",
	StatusClosed:     "Closed",
}

// Label returns the canonical human-readable label stored in the DB.
func (s Status) Label() string {
	if s < 0 || int(s) >= len(statusLabels) {
		return "unknown"
	}
	return statusLabels[s]
}

func (s Status) String() string { return s.Label() }

// ParseStatus maps a label to its Status. Matching is case-insensitive and
// tolerates underscores in place of spaces ("in_progress", "IN PROGRESS").
func ParseStatus(label string) (Status, error) {
	norm := strings.ReplaceAll(strings.TrimSpace(label), "_", " ")
	for i, l := range statusLabels {
		if strings.EqualFold(norm, l) {
			return Status(i), nil
		}
	}
	return -1, fmt.Errorf("invalid status: %q", label)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Label())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseStatus(label)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ------------------------------------------------------------------------
// Category enumerates the fixed set of ticket categories.
// ------------------------------------------------------------------------
type Category int

const (
	CategoryMaintenanceAndRepairs Category = iota
	CategorySecurityAndSafety
	CategoryUtilities
	CategoryPaymentAndBilling
	CategoryAmenitiesAndFacilities
	CategoryOthers
)

var categoryLabels = [...]string{
	CategoryMaintenanceAndRepairs:  "Maintenance & Repairs",
	CategorySecurityAndSafety:      "Security & Safety",
	CategoryUtilities:              "Utilities",
	CategoryPaymentAndBilling:      "Payment & Billing",
	CategoryAmenitiesAndFacilities: "Amenities & Facilities",
	CategoryOthers:                 "Others",
}

func (c Category) Label() string {
	if c < 0 || int(c) >= len(categoryLabels) {
		return "unknown"
	}
	return categoryLabels[c]
}

func (c Category) String() string { return c.Label() }

// ParseCategory maps a label to its Category, case-insensitively.
func ParseCategory(label string) (Category, error) {
	norm := strings.TrimSpace(label)
	for i, l := range categoryLabels {
		if strings.EqualFold(norm, l) {
			return Category(i), nil
		}
	}
	return -1, fmt.Errorf("invalid category: %q", label)
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Label())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseCategory(label)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ------------------------------------------------------------------------
// Ticket is a maintenance request. Unit and apartment fields are free
// text, not foreign keys: a ticket may reference a unit that was never
// registered in the units table.
// ------------------------------------------------------------------------
type Ticket struct {
	ID              int       `json:"id"`
	UnitNumber      string    `json:"unit_number"`
	ApartmentName   string    `json:"apartment_name"`
	Name            string    `json:"name"`
	PhoneNumber     string    `json:"phone_number"`
	Email           *string   `json:"email,omitempty"`
	MessengerLink   *string   `json:"messenger_link,omitempty"`
	Category        Category  `json:"category"`
	Subject         string    `json:"subject"`
	Body            string    `json:"body"`
	Status          Status    `json:"status"`
	SubmittedAt     time.Time `json:"submitted_at"`
	StatusUpdatedAt time.Time `json:"status_updated_at"`
	StatusUpdatedBy string    `json:"status_updated_by"`
}
