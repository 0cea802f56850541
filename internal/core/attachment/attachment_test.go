package attachment_test

import (
	"bytes"
	"testing"

	"devsolutions/internal/core/attachment"
	perr "devsolutions/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		file    attachment.File
		want    attachment.Summary
		wantErr error
	}{
		{"pdf", attachment.File{Name: "report.pdf", Size: 2 << 20, DeclaredType: "application/pdf"}, "report.pdf (2048.00 KB)", nil},
		{"exactly the limit", attachment.File{Name: "big.png", Size: attachment.MaxSize, DeclaredType: "image/png"}, "big.png (10240.00 KB)", nil},
		{"one byte over", attachment.File{Name: "big.png", Size: attachment.MaxSize + 1, DeclaredType: "image/png"}, "", attachment.ErrTooLarge},
		{"zip", attachment.File{Name: "a.zip", Size: 10, DeclaredType: "application/zip"}, "", attachment.ErrUnsupportedType},
		{"size checked before type", attachment.File{Name: "a.zip", Size: attachment.MaxSize + 1, DeclaredType: "application/zip"}, "", attachment.ErrTooLarge},
		{"docx", attachment.File{Name: "cv.docx", Size: 1536, DeclaredType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"}, "cv.docx (1.50 KB)", nil},
		{"jpeg", attachment.File{Name: "p.jpg", Size: 100, DeclaredType: "image/jpeg"}, "p.jpg (0.10 KB)", nil},
		{"doc", attachment.File{Name: "old.doc", Size: 512, DeclaredType: "application/msword"}, "old.doc (0.50 KB)", nil},
		{"empty type", attachment.File{Name: "x", Size: 1}, "", attachment.ErrUnsupportedType},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := attachment.Check(c.file)
			if c.wantErr != nil {
				require.ErrorIs(t, err, c.wantErr)
				assert.True(t, perr.IsCode(err, perr.ErrorCodeAttachment))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestRejectionMessages(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "File size must be less than 10MB", attachment.ErrTooLarge.Error())
	assert.Equal(t, "Invalid file type. Only PDF, DOC, DOCX, JPG, and PNG are allowed.", attachment.ErrUnsupportedType.Error())
}

func TestSniffIsAdvisory(t *testing.T) {
	t.Parallel()

	got, err := attachment.Sniff(bytes.NewReader([]byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", got)
	assert.True(t, attachment.Matches("application/pdf", got))

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	got, err = attachment.Sniff(bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, "image/png", got)
	assert.False(t, attachment.Matches("application/pdf", got))

	// a mismatch never changes the verdict of Check
	_, err = attachment.Check(attachment.File{Name: "x.pdf", Size: int64(len(png)), DeclaredType: "application/pdf"})
	assert.NoError(t, err)
}

func TestMatchesUnknownSniff(t *testing.T) {
	t.Parallel()
	assert.True(t, attachment.Matches("image/png", ""))
	assert.True(t, attachment.Matches("application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"))
}
