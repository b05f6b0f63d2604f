package contact

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,max=254,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactData echoes the accepted submission back to the sender
type ContactData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

// SuccessMessage is returned once the provider accepted the email
const SuccessMessage = "Your message has been sent successfully!"

// DispatchFailedMessage is returned when the provider call fails
const DispatchFailedMessage = "Failed to send email"
