package bind

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	perr "devsolutions/internal/platform/errors"
)

// FormOptions controls form parsing
type FormOptions struct {
	MaxBytes  int64 // whole-body cap, default 11 MiB
	MaxMemory int64 // multipart bytes kept in memory before spilling to disk, default 1 MiB
}

func (o FormOptions) withDefaults() FormOptions {
	if o.MaxBytes <= 0 {
		o.MaxBytes = 11 << 20
	}
	if o.MaxMemory <= 0 {
		o.MaxMemory = 1 << 20
	}
	return o
}

// Form is a parsed urlencoded or multipart body
type Form struct {
	r *http.Request
}

// ParseForm caps the body at MaxBytes and parses multipart/form-data or
// application/x-www-form-urlencoded bodies. Callers must Close the form
func ParseForm(w http.ResponseWriter, r *http.Request, opts ...FormOptions) (*Form, error) {
	var o FormOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	o = o.withDefaults()

	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeForm, "unreadable content type")
	}
	r.Body = http.MaxBytesReader(w, r.Body, o.MaxBytes)

	switch mt {
	case "multipart/form-data":
		err = r.ParseMultipartForm(o.MaxMemory)
	case "application/x-www-form-urlencoded":
		err = r.ParseForm()
	default:
		return nil, perr.Formf("unsupported content type %q", mt)
	}
	if err != nil {
		if IsBodyTooLarge(err) {
			return nil, perr.Wrap(err, perr.ErrorCodeForm, "request body too large")
		}
		return nil, perr.Wrap(err, perr.ErrorCodeForm, "malformed form body")
	}
	return &Form{r: r}, nil
}

// Value returns the first non-empty value among keys (aliases), or ""
func (f *Form) Value(keys ...string) string {
	for _, k := range keys {
		if v := f.r.PostFormValue(k); v != "" {
			return v
		}
	}
	return ""
}

// File returns the first uploaded file for key, or nil
func (f *Form) File(key string) *multipart.FileHeader {
	mf := f.r.MultipartForm
	if mf == nil {
		return nil
	}
	if fhs := mf.File[key]; len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}

// Close removes any temporary files spilled by multipart parsing
func (f *Form) Close() error {
	if f == nil || f.r.MultipartForm == nil {
		return nil
	}
	return f.r.MultipartForm.RemoveAll()
}

// IsBodyTooLarge reports whether err came from the MaxBytes cap
func IsBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	// multipart parsing does not always wrap the reader error
	return err != nil && strings.Contains(err.Error(), "request body too large")
}
