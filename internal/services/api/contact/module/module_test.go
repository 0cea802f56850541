package module_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"devsolutions/internal/adapters/mail"
	modkit "devsolutions/internal/modkit"
	"devsolutions/internal/platform/config"
	phttp "devsolutions/internal/platform/net/http"
	"devsolutions/internal/platform/testkit"
	"devsolutions/internal/services/api/contact/domain"
	contactmod "devsolutions/internal/services/api/contact/module"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	mu   sync.Mutex
	msgs []mail.Message
}

func (r *recordingTransport) Name() string { return "recording" }

func (r *recordingTransport) Send(_ context.Context, m mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, m)
	return nil
}

func post(h http.Handler) *httptest.ResponseRecorder {
	form := url.Values{"name": {"Jane Doe"}, "email": {"jane@example.com"}, "message": {"Please get in touch"}}
	return testkit.Serve(h, testkit.URLEncoded("/contact", form))
}

func TestModuleWiresQuotaAndTransport(t *testing.T) {
	tr := &recordingTransport{}
	m := contactmod.NewWithOptions(modkit.Deps{Cfg: config.New()}, contactmod.Options{
		Window:    time.Minute,
		Max:       2,
		Transport: tr,
		Archive:   true, // no postgres: disabled with a warning
	})
	require.Equal(t, "contact", m.Name())
	_, ok := m.Ports().(domain.ServicePort)
	require.True(t, ok)

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	assert.Equal(t, http.StatusOK, post(mux).Code)
	assert.Equal(t, http.StatusOK, post(mux).Code)
	assert.Equal(t, http.StatusTooManyRequests, post(mux).Code)

	require.Len(t, tr.msgs, 2)
	assert.Equal(t, "jane@example.com", tr.msgs[0].ReplyTo)
	assert.Equal(t, "New Contact: Jane Doe - General Inquiry", tr.msgs[0].Subject)
}

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_API_CONTACT_RATE_WINDOW", "30m")
	t.Setenv("CORE_API_CONTACT_RATE_MAX", "3")
	t.Setenv("CORE_API_CONTACT_ARCHIVE", "true")
	t.Setenv("CORE_API_SMTP_TO", "sales@devsolutions.com")

	o := contactmod.FromConfig(config.New().Prefix("CORE_API_"))
	assert.Equal(t, 30*time.Minute, o.Window)
	assert.Equal(t, 3, o.Max)
	assert.Equal(t, 10_000, o.MaxEntries)
	assert.True(t, o.Archive)
	assert.Equal(t, "sales@devsolutions.com", o.Mail.To)
	assert.False(t, o.Mail.Configured())
}

func TestModuleFromEnvFallsBackToLogTransport(t *testing.T) {
	m := contactmod.New(modkit.Deps{Cfg: config.New().Prefix("NOPE_")}, modkit.WithPrefix("/contact"))
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	assert.Equal(t, http.StatusOK, post(mux).Code)
}
