package common

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a validation error detail
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// StatusResponse is a bare status payload
type StatusResponse struct {
	Status string `json:"status"`
}

// SuccessResponse wraps a successful operation
type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Standard error messages
const (
	ErrMsgValidation      = "Validation failed"
	ErrMsgInternalServer  = "Internal server error"
	ErrMsgBodyTooLarge    = "Request body too large"
	ErrMsgOriginForbidden = "Origin not allowed"
)

// NewSuccessResponse creates a new successful API response
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates a new error API response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewValidationErrorResponse creates an error response listing offending fields
func NewValidationErrorResponse(errs []ValidationError) ErrorResponse {
	return ErrorResponse{
		Error:  ErrMsgValidation,
		Errors: errs,
	}
}
