package dtos

/*
SubmitTicketRequest is the public intake payload. Category, status and
submitted_at arrive as strings and are parsed by the service; status and
status_updated_by are optional and default to Pending / the system
marker.
*/
type SubmitTicketRequest struct {
	RecaptchaToken  string  `json:"recaptcha_token"`
	UnitNumber      string  `json:"unit_number"`
	ApartmentName   string  `json:"apartment_name"`
	Name            string  `json:"name"`
	PhoneNumber     string  `json:"phone_number"`
	Email           *string `json:"email"`
	MessengerLink   *string `json:"messenger_link"`
	Category        string  `json:"category"`
	Subject         string  `json:"subject"`
	Body            string  `json:"body"`
	Status          *string `json:"status"`
	SubmittedAt     string  `json:"submitted_at"`
	StatusUpdatedBy *string `json:"status_updated_by"`
}

type SubmitTicketResponse struct {
	ID int `json:"id"`
}

type UpdateTicketStatusRequest struct {
	Status    string  `json:"status"`
	UpdatedAt string  `json:"status_updated_at"`
	UpdatedBy *string `json:"status_updated_by"`
}
