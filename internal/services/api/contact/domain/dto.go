package domain

import "devsolutions/internal/platform/net/http/bind"

// Client facing messages
const (
	MsgAccepted      = "Thank you for your message. We'll get back to you within 24 hours."
	MsgInvalidForm   = "Invalid form data"
	MsgTooManyTries  = "Too many requests. Please try again later."
	MsgUnexpectedErr = "An error occurred. Please try again later."
)

// Accepted is the 200 body
type Accepted struct {
	OK      bool   `json:"ok" example:"true"`
	Message string `json:"message" example:"Thank you for your message. We'll get back to you within 24 hours."`
}

// Rejected is the body for every non 200 outcome
type Rejected struct {
	Error   string           `json:"error" example:"Invalid form data"`
	Details []bind.Violation `json:"details,omitempty"`
}
