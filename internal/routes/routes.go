package routes

const (
	// Health
	Health = "/health"

	// Unit endpoints
	UnitsBase   = "/api/v1/units"
	UnitsSearch = "/api/v1/units/search"
	UnitsByID   = "/api/v1/units/{id}"

	// Tenant endpoints
	TenantsBase     = "/api/v1/tenants"
	TenantsMovedIn  = "/api/v1/tenants/moved-in"
	TenantsMovedOut = "/api/v1/tenants/moved-out"
	TenantsByUnit   = "/api/v1/tenants/unit/{unitId}"
	TenantsByID     = "/api/v1/tenants/{id}"
	TenantsMoveOut  = "/api/v1/tenants/{id}/move-out"

	// Sub-tenant endpoints
	SubTenantsBase     = "/api/v1/sub-tenants"
	SubTenantsByTenant = "/api/v1/sub-tenants/tenant/{tenantId}"
	SubTenantsByID     = "/api/v1/sub-tenants/{id}"

	// Ticket endpoints; submit is public (recaptcha-gated), the rest
	// sit behind auth.
	TicketsSubmit = "/api/v1/tickets/submit"
	TicketsBase   = "/api/v1/tickets"
	TicketsByID   = "/api/v1/tickets/{id}"
	TicketsStatus = "/api/v1/tickets/{id}/status"
)
