// Package service contains the contact submission workflow
package service

import (
	"context"
	"time"

	"devsolutions/internal/core/attachment"
	"devsolutions/internal/core/ratelimit"
	"devsolutions/internal/core/sanitize"
	"devsolutions/internal/platform/logger"
	ptime "devsolutions/internal/platform/time"
	"devsolutions/internal/services/api/contact/domain"

	"github.com/google/uuid"
)

// Service defines the service contract for contact submissions
type Service interface{ domain.ServicePort }

// Options wires the collaborators; Archive is optional
type Options struct {
	Limiter   *ratelimit.Limiter
	Deliverer domain.Deliverer
	Archive   domain.Archive
	Clock     ptime.Clock
	NewID     func() string
}

// Svc implements the Service interface
type Svc struct {
	limiter   *ratelimit.Limiter
	deliverer domain.Deliverer
	archive   domain.Archive
	clock     ptime.Clock
	newID     func() string
}

// New creates a contact service
func New(o Options) *Svc {
	if o.Limiter == nil {
		panic("contact.Service requires a non nil Limiter")
	}
	if o.Deliverer == nil {
		panic("contact.Service requires a non nil Deliverer")
	}
	if o.Clock == nil {
		o.Clock = ptime.System
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return &Svc{
		limiter:   o.Limiter,
		deliverer: o.Deliverer,
		archive:   o.Archive,
		clock:     o.Clock,
		newID:     o.NewID,
	}
}

// Admit implements domain.ServicePort
func (s *Svc) Admit(ctx context.Context, clientID string) ratelimit.Decision {
	return s.limiter.Allow(ctx, clientID)
}

// Submit implements domain.ServicePort. Only validation and attachment errors are
// returned; delivery and archive failures are logged and otherwise ignored
func (s *Svc) Submit(ctx context.Context, req domain.SubmissionRequest) (domain.ValidatedSubmission, error) {
	log := logger.C(ctx)

	clean := Sanitize(req)
	v, err := Validate(clean)
	if err != nil {
		log.Info().Err(err).Msg("contact submission rejected")
		return domain.ValidatedSubmission{}, err
	}

	var att *domain.AttachmentInfo
	if up := clean.Attachment; up != nil && up.Size > 0 {
		sum, err := attachment.Check(attachment.File{Name: up.Name, Size: up.Size, DeclaredType: up.DeclaredType})
		if err != nil {
			log.Info().Err(err).Str("file", up.Name).Int64("size", up.Size).Str("type", up.DeclaredType).
				Msg("contact attachment rejected")
			return domain.ValidatedSubmission{}, err
		}
		sniffUpload(ctx, up)
		att = &domain.AttachmentInfo{Name: up.Name, Size: up.Size, Type: up.DeclaredType, Summary: string(sum)}
	}

	res := s.deliverer.Deliver(ctx, Compose(v, att))
	if res.Err != nil {
		// the submitter still gets a success response
		log.Error().Err(res.Err).Str("channel", res.Channel).Msg("contact notification failed")
	} else {
		log.Info().Str("channel", res.Channel).Msg("contact notification sent")
	}

	if s.archive != nil {
		rec := domain.Record{
			ID:              s.newID(),
			ClientID:        req.ClientID,
			Submission:      v,
			Attachment:      att,
			DeliveryChannel: res.Channel,
			Delivered:       res.Delivered,
			CreatedAt:       s.clock.Now().UTC().Truncate(time.Microsecond),
		}
		if err := s.archive.Save(ctx, rec); err != nil {
			log.Error().Err(err).Str("submission_id", rec.ID).Msg("contact archive failed")
		}
	}
	return v, nil
}

// Sanitize cleans every text field of req. The attachment metadata is kept;
// its file name also loses control characters since it lands in the mail body
func Sanitize(req domain.SubmissionRequest) domain.SubmissionRequest {
	out := req
	out.Name = sanitize.Field(req.Name)
	out.Email = sanitize.Field(req.Email)
	out.Company = sanitize.Field(req.Company)
	out.Website = sanitize.Field(req.Website)
	out.TrafficTier = sanitize.Field(req.TrafficTier)
	out.UseCase = sanitize.Field(req.UseCase)
	out.Message = sanitize.Field(req.Message)
	if req.Attachment != nil {
		up := *req.Attachment
		up.Name = sanitize.Strict(up.Name)
		out.Attachment = &up
	}
	return out
}

// sniffUpload logs when the content does not look like the declared type
func sniffUpload(ctx context.Context, up *domain.Upload) {
	if up.Open == nil {
		return
	}
	rc, err := up.Open()
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("file", up.Name).Msg("attachment open failed")
		return
	}
	defer rc.Close()

	got, err := attachment.Sniff(rc)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("file", up.Name).Msg("attachment sniff failed")
		return
	}
	if !attachment.Matches(up.DeclaredType, got) {
		logger.C(ctx).Warn().Str("file", up.Name).Str("declared", up.DeclaredType).Str("detected", got).
			Msg("attachment content does not match declared type")
	}
}
