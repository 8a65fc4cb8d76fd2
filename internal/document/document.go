// Package document describes files received by the upload form before they
// are forwarded to the extraction backend.
package document

import (
	"bytes"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// MaxUploadSize is the largest document the upload form accepts.
const MaxUploadSize = 32 << 20 // 32MB

const pdfContentType = "application/pdf"

// Info describes an uploaded document.
type Info struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	// Pages is the PDF page count, 0 for other types or unreadable PDFs.
	Pages int `json:"pages,omitempty"`
}

// IsPDF reports whether the document was detected as a PDF.
func (i Info) IsPDF() bool {
	return i.ContentType == pdfContentType
}

// LogValue implements slog.LogValuer.
func (i Info) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("name", i.Name),
		slog.Int64("size", i.Size),
		slog.String("content_type", i.ContentType),
	}
	if i.Pages > 0 {
		attrs = append(attrs, slog.Int("pages", i.Pages))
	}
	return slog.GroupValue(attrs...)
}

// Inspect sniffs the content type of data and counts PDF pages.
// It never fails; fields it cannot determine are left empty.
func Inspect(name string, data []byte) Info {
	info := Info{
		Name:        filepath.Base(name),
		Size:        int64(len(data)),
		ContentType: contentType(data),
	}
	if info.IsPDF() {
		info.Pages = pageCount(data)
	}
	return info
}

func contentType(data []byte) string {
	ct := http.DetectContentType(data)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

func pageCount(data []byte) int {
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0
	}
	return n
}
