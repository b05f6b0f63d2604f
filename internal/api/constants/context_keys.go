package constants

// Context keys for validated requests
const (
	ContextKeyContact = "contact"

	// Request metadata
	ContextKeyRequestID = "requestID"
)
