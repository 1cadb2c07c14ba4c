package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfText extracts text from all pages in order. Tokens within a page are
// joined with single spaces, pages with newlines.
func pdfText(data []byte) (text string, err error) {
	// The pdf package panics on some malformed files; convert that into the
	// package's single extraction-failure signal.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		var tokens []string
		for _, t := range page.Content().Text {
			if s := strings.TrimSpace(t.S); s != "" {
				tokens = append(tokens, s)
			}
		}
		pages = append(pages, strings.Join(tokens, " "))
	}

	return strings.Join(pages, "\n"), nil
}
