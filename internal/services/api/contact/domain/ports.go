package domain

import (
	"context"

	"devsolutions/internal/core/ratelimit"
)

// ServicePort is the contact workflow as seen by the transport
type ServicePort interface {
	// Admit records one submission attempt for clientID against its quota
	Admit(ctx context.Context, clientID string) ratelimit.Decision
	// Submit sanitizes, validates, gatekeeps, notifies and archives one submission
	Submit(ctx context.Context, req SubmissionRequest) (ValidatedSubmission, error)
}
