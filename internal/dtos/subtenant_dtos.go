package dtos

type CreateSubTenantRequest struct {
	LastName      string  `json:"last_name" validate:"required"`
	FirstName     string  `json:"first_name" validate:"required"`
	MiddleInitial *string `json:"middle_initial"`
	PhoneNumber   string  `json:"phone_number" validate:"required"`
	MessengerLink *string `json:"messenger_link"`
	MainTenantID  int     `json:"main_tenant_id" validate:"required,gt=0"`
}

type UpdateSubTenantRequest struct {
	LastName      string  `json:"last_name" validate:"required"`
	FirstName     string  `json:"first_name" validate:"required"`
	MiddleInitial *string `json:"middle_initial"`
	PhoneNumber   string  `json:"phone_number" validate:"required"`
	MessengerLink *string `json:"messenger_link"`
	MainTenantID  int     `json:"main_tenant_id" validate:"required,gt=0"`
}
