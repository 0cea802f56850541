// Package http provides http transport for contact submissions
package http

import (
	"io"
	stdhttp "net/http"
	"runtime/debug"

	"devsolutions/internal/core/attachment"
	"devsolutions/internal/modkit/httpkit"
	perr "devsolutions/internal/platform/errors"
	"devsolutions/internal/platform/logger"
	pnet "devsolutions/internal/platform/net"
	"devsolutions/internal/platform/net/http/bind"
	"devsolutions/internal/platform/net/middleware"
	"devsolutions/internal/services/api/contact/domain"
	svc "devsolutions/internal/services/api/contact/service"
)

// maxBody leaves room for the text fields and multipart framing around a maximal file
const maxBody = attachment.MaxSize + 1<<20

// Register mounts contact endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	r.Post("/", httpkit.HandleW(h.submit))
}

type handlers struct{ svc svc.Service }

// swagger:route POST /contact Contact contactSubmit
// @Summary Submit the contact form
// @Tags Contact
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Full name"
// @Param email formData string true "Email address"
// @Param company formData string false "Company"
// @Param website formData string false "Website URL"
// @Param monthlyTraffic formData string false "Monthly traffic tier"
// @Param useCase formData string false "Use case"
// @Param message formData string true "Message"
// @Param file formData file false "PDF, DOC, DOCX, JPG or PNG up to 10MB"
// @Success 200 {object} domain.Accepted
// @Failure 400 {object} domain.Rejected
// @Failure 429 {object} middleware.ThrottledBody
// @Failure 500 {object} domain.Rejected
// @Router /contact [post]
func (h *handlers) submit(w stdhttp.ResponseWriter, r *stdhttp.Request) (resp httpkit.Response) {
	ctx := r.Context()
	defer func() {
		if rec := recover(); rec != nil {
			if rec == stdhttp.ErrAbortHandler {
				panic(rec)
			}
			logger.C(ctx).Error().Interface("panic", rec).Bytes("stack", debug.Stack()).Msg("contact submission panicked")
			resp = unexpected()
		}
	}()

	client := pnet.ClientID(ctx)
	if client == "" {
		client = pnet.ClientIdentity(r)
	}
	if d := h.svc.Admit(ctx, client); !d.Allowed {
		logger.C(ctx).Warn().Int("count", d.Count).Dur("retry_after", d.RetryAfter).Msg("contact rate limited")
		return middleware.Throttled(middleware.ThrottledError(domain.MsgTooManyTries, d.RetryAfter))
	}

	form, err := bind.ParseForm(w, r, bind.FormOptions{MaxBytes: maxBody})
	if err != nil {
		if bind.IsBodyTooLarge(err) {
			return httpkit.Bare(stdhttp.StatusBadRequest, domain.Rejected{Error: attachment.ErrTooLarge.Error()})
		}
		logger.C(ctx).Error().Err(err).Msg("contact form unreadable")
		return unexpected()
	}
	defer func() { _ = form.Close() }()

	req := domain.SubmissionRequest{
		ClientID:    client,
		Name:        form.Value("name"),
		Email:       form.Value("email"),
		Company:     form.Value("company"),
		Website:     form.Value("website"),
		TrafficTier: form.Value("monthlyTraffic", "trafficTier"),
		UseCase:     form.Value("useCase"),
		Message:     form.Value("message"),
	}
	// an empty file part counts as no file
	if fh := form.File("file"); fh != nil && fh.Size > 0 {
		req.Attachment = &domain.Upload{
			Name:         fh.Filename,
			Size:         fh.Size,
			DeclaredType: fh.Header.Get("Content-Type"),
			Open:         func() (io.ReadCloser, error) { return fh.Open() },
		}
	}

	_, err = h.svc.Submit(ctx, req)
	switch {
	case err == nil:
		return httpkit.Bare(stdhttp.StatusOK, domain.Accepted{OK: true, Message: domain.MsgAccepted})
	case perr.IsCode(err, perr.ErrorCodeValidation):
		return httpkit.Bare(stdhttp.StatusBadRequest, domain.Rejected{Error: domain.MsgInvalidForm, Details: bind.ViolationsOf(err)})
	case perr.IsCode(err, perr.ErrorCodeAttachment):
		e, _ := perr.As(err)
		return httpkit.Bare(stdhttp.StatusBadRequest, domain.Rejected{Error: e.Message()})
	default:
		logger.C(ctx).Error().Err(err).Msg("contact submission failed")
		return unexpected()
	}
}

func unexpected() httpkit.Response {
	return httpkit.Bare(stdhttp.StatusInternalServerError, domain.Rejected{Error: domain.MsgUnexpectedErr})
}
