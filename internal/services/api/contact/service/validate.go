package service

import (
	"regexp"
	"strings"
	"sync"

	"devsolutions/internal/platform/net/http/bind"
	"devsolutions/internal/services/api/contact/domain"
)

var personName = regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)

// reasons maps field.tag to the message shown to the submitter
var reasons = map[string]string{
	"name.min":           "Name must be at least 2 characters",
	"name.max":           "Name too long",
	"name.personname":    "Name contains invalid characters",
	"email.email":        "Invalid email address",
	"email.max":          "Email too long",
	"company.max":        "Company name too long",
	"website.url":        "Invalid website URL",
	"website.max":        "Website URL too long",
	"monthlyTraffic.max": "Traffic value too long",
	"useCase.max":        "Use case too long",
	"message.min":        "Message must be at least 10 characters",
	"message.max":        "Message too long",
}

var registerOnce sync.Once

func registerTags() {
	registerOnce.Do(func() {
		err := bind.RegisterValidation("personname", func(fl bind.FieldLevel) bool {
			return personName.MatchString(fl.Field().String())
		}, "{0} contains invalid characters")
		if err != nil {
			panic(err)
		}
	})
}

// Validate checks every rule of every field of an already sanitized request and
// collects all violations, so one field can report several. The error carries
// []bind.Violation as details
func Validate(req domain.SubmissionRequest) (domain.ValidatedSubmission, error) {
	registerTags()

	vs := bind.Check(
		bind.Rule{Field: "name", Value: req.Name, Tags: []string{"min=2", "max=100", "personname"}},
		bind.Rule{Field: "email", Value: req.Email, Tags: []string{"email", "max=255"}},
		bind.Rule{Field: "company", Value: req.Company, Tags: []string{"max=100"}},
		bind.Rule{Field: "website", Value: req.Website, Tags: []string{"omitempty,url", "omitempty,max=255"}},
		bind.Rule{Field: "monthlyTraffic", Value: req.TrafficTier, Tags: []string{"max=50"}},
		bind.Rule{Field: "useCase", Value: req.UseCase, Tags: []string{"max=200"}},
		bind.Rule{Field: "message", Value: req.Message, Tags: []string{"min=10", "max=2000"}},
	)
	for i := range vs {
		if r, ok := reasons[vs[i].Field+"."+vs[i].Tag]; ok {
			vs[i].Reason = r
		}
	}
	if err := bind.Fail(domain.MsgInvalidForm, vs); err != nil {
		return domain.ValidatedSubmission{}, err
	}

	return domain.ValidatedSubmission{
		Name:        req.Name,
		Email:       strings.ToLower(req.Email),
		Company:     req.Company,
		Website:     req.Website,
		TrafficTier: req.TrafficTier,
		UseCase:     req.UseCase,
		Message:     req.Message,
	}, nil
}
