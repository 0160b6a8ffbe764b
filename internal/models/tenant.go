package models

import "time"

// Tenant is a primary occupant bound to exactly one unit. A tenant with a
// nil MoveOutDate is active; once MoveOutDate is set the row is historical
// and no longer counts toward occupancy or uniqueness checks.
type Tenant struct {
	ID            int        `json:"id"`
	LastName      string     `json:"last_name"`
	FirstName     string     `json:"first_name"`
	MiddleInitial *string    `json:"middle_initial,omitempty"`
	Email         string     `json:"email"`
	PhoneNumber   string     `json:"phone_number"`
	MessengerLink *string    `json:"messenger_link,omitempty"`
	UnitID        int        `json:"unit_id"`
	MoveInDate    time.Time  `json:"move_in_date"`
	MoveOutDate   *time.Time `json:"move_out_date,omitempty"`
}

// Active reports whether the tenant still occupies their unit.
func (t *Tenant) Active() bool { return t.MoveOutDate == nil }
