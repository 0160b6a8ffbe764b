package models

// SubTenant is a secondary occupant registered under a main tenant. Its
// lifecycle mirrors the main tenant's but the row is kept as a historical
// record when the main tenant moves out.
type SubTenant struct {
	ID            int     `json:"id"`
	LastName      string  `json:"last_name"`
	FirstName     string  `json:"first_name"`
	MiddleInitial *string `json:"middle_initial,omitempty"`
	PhoneNumber   string  `json:"phone_number"`
	MessengerLink *string `json:"messenger_link,omitempty"`
	MainTenantID  int     `json:"main_tenant_id"`
}
