// Package domain holds the contact submission types shared by transport, service and repo
package domain

import (
	"context"
	"io"
	"time"
)

// SubmissionRequest is the raw form as received; it lives for one request
type SubmissionRequest struct {
	ClientID    string
	Name        string
	Email       string
	Company     string
	Website     string
	TrafficTier string
	UseCase     string
	Message     string
	Attachment  *Upload
}

// Upload describes a file part. Open is optional and only used for content sniffing
type Upload struct {
	Name         string
	Size         int64
	DeclaredType string
	Open         func() (io.ReadCloser, error)
}

// ValidatedSubmission is a submission that passed sanitization and validation.
// Optional fields are empty when absent; Email is lower-cased
type ValidatedSubmission struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company,omitempty"`
	Website     string `json:"website,omitempty"`
	TrafficTier string `json:"monthlyTraffic,omitempty"`
	UseCase     string `json:"useCase,omitempty"`
	Message     string `json:"message"`
}

// AttachmentInfo is the accepted file's metadata
type AttachmentInfo struct {
	Name    string
	Size    int64
	Type    string
	Summary string // "report.pdf (2048.00 KB)"
}

// Notification is the composed email for the site owner
type Notification struct {
	Subject string
	Body    string
	ReplyTo string
}

// DeliveryResult records how a notification left the process; it never reaches the client
type DeliveryResult struct {
	Channel   string
	Delivered bool
	Err       error
}

// Record is one archived submission for manual review
type Record struct {
	ID              string
	ClientID        string
	Submission      ValidatedSubmission
	Attachment      *AttachmentInfo
	DeliveryChannel string
	Delivered       bool
	CreatedAt       time.Time
}

// Deliverer sends a notification and reports the outcome instead of failing
type Deliverer interface {
	Deliver(ctx context.Context, n Notification) DeliveryResult
}

// Archive stores submissions for manual review
type Archive interface {
	Save(ctx context.Context, rec Record) error
}
