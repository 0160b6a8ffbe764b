package dtos

// ValidationErrorDetail is the per-field breakdown returned alongside a
// validation_error response.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}
