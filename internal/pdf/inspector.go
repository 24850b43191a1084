package pdf

import (
	"errors"
	"fmt"

	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
)

// ErrNoPages is returned for documents that open but contain nothing
var ErrNoPages = errors.New("pdf: document has no pages")

// Inspector opens uploaded resumes to confirm they are readable PDFs
type Inspector struct {
	maxPages int
}

// NewInspector creates an inspector. maxPages <= 0 disables the page limit.
func NewInspector(maxPages int) *Inspector {
	return &Inspector{maxPages: maxPages}
}

// Inspect returns the page count of a PDF held in memory
func (i *Inspector) Inspect(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, ErrNoPages
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages == 0 {
		return 0, ErrNoPages
	}
	if i.maxPages > 0 && pages > i.maxPages {
		return pages, fmt.Errorf("pdf: %d pages exceeds limit of %d", pages, i.maxPages)
	}
	return pages, nil
}
