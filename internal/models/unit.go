package models

// Unit is a rentable apartment unit. ActiveTenantID points at the tenant
// currently occupying the unit and is nil while the unit is vacant.
//
// NumOccupants is derived, never hand-maintained: it is 0 for a vacant
// unit and 1 + the active tenant's sub-tenant count otherwise. CurrOccupants
// carries the same derivation computed fresh at read time, so a reader can
// spot drift between the stored and the actual value.
type Unit struct {
	ID             int     `json:"id"`
	UnitNumber     string  `json:"unit_number"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	NumOccupants   int     `json:"num_occupants"`
	CurrOccupants  int     `json:"curr_occupants"`
	ActiveTenantID *int    `json:"active_tenant_id"`
}

// Occupied reports whether the unit currently has an active tenant.
func (u *Unit) Occupied() bool { return u.ActiveTenantID != nil }
