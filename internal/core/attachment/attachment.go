// Package attachment decides whether an uploaded file may travel with a contact submission
package attachment

import (
	"fmt"
	"io"

	perr "devsolutions/internal/platform/errors"

	"github.com/gabriel-vasile/mimetype"
)

// MaxSize is the largest accepted upload, inclusive
const MaxSize int64 = 10 << 20

// Rejection reasons, returned verbatim to the client
var (
	ErrTooLarge        = perr.Attachmentf("File size must be less than 10MB")
	ErrUnsupportedType = perr.Attachmentf("Invalid file type. Only PDF, DOC, DOCX, JPG, and PNG are allowed.")
)

var allowed = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"image/jpeg": {},
	"image/png":  {},
}

// File is what the client told us about an upload
type File struct {
	Name         string
	Size         int64
	DeclaredType string
}

// Summary is the accepted file line used in notifications, e.g. "report.pdf (2048.00 KB)"
type Summary string

// Allowed reports whether the declared MIME type is on the allow list
func Allowed(mimeType string) bool {
	_, ok := allowed[mimeType]
	return ok
}

// Check applies the size limit and then the type allow list.
// The declared type is trusted; see Sniff for a content check
func Check(f File) (Summary, error) {
	if f.Size > MaxSize {
		return "", ErrTooLarge
	}
	if !Allowed(f.DeclaredType) {
		return "", ErrUnsupportedType
	}
	return Summary(fmt.Sprintf("%s (%.2f KB)", f.Name, float64(f.Size)/1024)), nil
}

// Sniff detects the content type from the leading bytes of r. It never rejects;
// callers compare the result with the declared type and log mismatches
func Sniff(r io.Reader) (string, error) {
	m, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// Matches reports whether a sniffed type agrees with the declared one.
// DOCX sniffs as a zip container on some inputs, so that pair counts as a match
func Matches(declared, sniffed string) bool {
	if sniffed == "" {
		return true
	}
	m := mimetype.Lookup(sniffed)
	if m == nil {
		return declared == sniffed
	}
	for p := m; p != nil; p = p.Parent() {
		if p.Is(declared) {
			return true
		}
	}
	return declared == "application/vnd.openxmlformats-officedocument.wordprocessingml.document" && m.Is("application/zip")
}
