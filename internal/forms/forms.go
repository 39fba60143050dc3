package forms

import "time"

// Kind identifies which of the site's forms produced a submission. The string
// value doubles as the formType field in webhook payloads.
type Kind string

const (
	KindConsultation Kind = "consultation-request"
	KindDemoCall     Kind = "demo-call-request"
	KindContact      Kind = "contact"
)

// ConsultationInput is the client-supplied body of a consultation request,
// before validation.
type ConsultationInput struct {
	BusinessName           string `json:"businessName" validate:"required"`
	ContactName            string `json:"contactName" validate:"required"`
	Email                  string `json:"email" validate:"required,email"`
	Phone                  string `json:"phone" validate:"required"`
	BusinessType           string `json:"businessType" validate:"required"`
	AutomationNeeds        string `json:"automationNeeds" validate:"required"`
	PreferredContactMethod string `json:"preferredContactMethod" validate:"required"`
}

// DemoCallInput is the client-supplied body of an immediate-callback request.
type DemoCallInput struct {
	Name         string `json:"name" validate:"required"`
	BusinessName string `json:"businessName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
}

// ContactInput is the client-supplied body of the contact form. Phone is
// optional; a missing or blank phone is stored as absent, never as "".
// CaptchaToken is only consulted when reCAPTCHA verification is enabled.
type ContactInput struct {
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        *string `json:"phone" validate:"-"`
	Message      string  `json:"message" validate:"required"`
	CaptchaToken string  `json:"g-recaptcha-response" validate:"-"`
}

// ConsultationRequest is a persisted consultation submission.
type ConsultationRequest struct {
	ID                     string    `json:"id"`
	BusinessName           string    `json:"businessName"`
	ContactName            string    `json:"contactName"`
	Email                  string    `json:"email"`
	Phone                  string    `json:"phone"`
	BusinessType           string    `json:"businessType"`
	AutomationNeeds        string    `json:"automationNeeds"`
	PreferredContactMethod string    `json:"preferredContactMethod"`
	CreatedAt              time.Time `json:"createdAt"`
}

// DemoCallRequest is a persisted demo-call submission.
type DemoCallRequest struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BusinessName string    `json:"businessName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ContactRequest is a persisted contact-form submission.
type ContactRequest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
