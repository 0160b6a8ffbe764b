package dtos

import (
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/models"
)

/*
CreateTenantRequest carries dates as strings; the service owns parsing so
that a malformed move_in_date is reported before any other field check.
*/
type CreateTenantRequest struct {
	LastName      string  `json:"last_name"`
	FirstName     string  `json:"first_name"`
	MiddleInitial *string `json:"middle_initial"`
	Email         string  `json:"email"`
	PhoneNumber   string  `json:"phone_number"`
	MessengerLink *string `json:"messenger_link"`
	UnitID        int     `json:"unit_id"`
	MoveInDate    string  `json:"move_in_date"`
}

type UpdateTenantRequest struct {
	LastName      string  `json:"last_name"`
	FirstName     string  `json:"first_name"`
	MiddleInitial *string `json:"middle_initial"`
	Email         string  `json:"email"`
	PhoneNumber   string  `json:"phone_number"`
	MessengerLink *string `json:"messenger_link"`
	UnitID        int     `json:"unit_id"`
	MoveInDate    string  `json:"move_in_date"`
	MoveOutDate   *string `json:"move_out_date"`
}

type MoveOutTenantRequest struct {
	MoveOutDate string `json:"move_out_date"`
}

/*
TenantWithSubTenantsDTO is the per-unit listing shape: the tenant plus
the sub-tenants registered under them.
*/
type TenantWithSubTenantsDTO struct {
	Tenant     *models.Tenant      `json:"tenant"`
	SubTenants []*models.SubTenant `json:"sub_tenants"`
}
