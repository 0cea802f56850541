package service

import (
	"fmt"
	"strings"

	str "devsolutions/internal/platform/strings"
	"devsolutions/internal/services/api/contact/domain"
)

const notProvided = "Not provided"

// Compose renders the owner notification. Output depends only on its inputs
func Compose(v domain.ValidatedSubmission, att *domain.AttachmentInfo) domain.Notification {
	var fileInfo string
	if att != nil {
		fileInfo = "\nAttachment: " + att.Summary
	}

	var b strings.Builder
	b.WriteString("New Contact Form Submission\n\n")
	fmt.Fprintf(&b, "Name: %s\n", v.Name)
	fmt.Fprintf(&b, "Email: %s\n", v.Email)
	fmt.Fprintf(&b, "Company: %s\n", str.Or(&v.Company, notProvided))
	fmt.Fprintf(&b, "Website: %s\n", str.Or(&v.Website, notProvided))
	fmt.Fprintf(&b, "Monthly Traffic: %s\n", str.Or(&v.TrafficTier, notProvided))
	fmt.Fprintf(&b, "Use Case: %s\n\n", str.Or(&v.UseCase, notProvided))
	fmt.Fprintf(&b, "Message:\n%s\n%s\n\n", v.Message, fileInfo)
	b.WriteString("---\nSent from DevSolutions Contact Form")

	return domain.Notification{
		Subject: fmt.Sprintf("New Contact: %s - %s", v.Name, str.Or(&v.UseCase, "General Inquiry")),
		Body:    b.String(),
		ReplyTo: v.Email,
	}
}
