// Package extract converts uploaded resume documents (PDF, DOCX, plain text,
// HTML, or images) into a plain-text resume body.
package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
)

// OCRClient extracts text from an image payload. The AI client satisfies it.
type OCRClient interface {
	ExtractTextFromImage(ctx context.Context, base64Data, mimeType string) (string, error)
}

// Error represents a document extraction failure. Callers surface it as a
// single "extraction failed, paste manually" signal; raw parser errors never
// escape this package.
type Error struct {
	Filename string
	Cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Filename, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// imageMIMETypes maps recognized image suffixes to their MIME types.
var imageMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Extract dispatches on the lowercase file suffix and returns the extracted
// text, trimmed. An unrecognized suffix yields empty output and no error.
// Image extraction requires ocr; passing nil makes image files fail like any
// other extraction error.
func Extract(ctx context.Context, filename string, data []byte, ocr OCRClient) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)

	switch {
	case ext == ".pdf":
		text, err = pdfText(data)
	case ext == ".docx":
		text, err = docxText(data)
	case ext == ".txt":
		text = string(data)
	case ext == ".html" || ext == ".htm":
		text, err = htmlText(string(data))
	case imageMIMETypes[ext] != "":
		text, err = imageText(ctx, data, imageMIMETypes[ext], ocr)
	default:
		return "", nil
	}

	if err != nil {
		return "", &Error{Filename: filename, Cause: err}
	}

	return strings.TrimSpace(text), nil
}

// imageText forwards the image to the AI endpoint's OCR operation.
func imageText(ctx context.Context, data []byte, mimeType string, ocr OCRClient) (string, error) {
	if ocr == nil {
		return "", fmt.Errorf("no OCR client available for image input")
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return ocr.ExtractTextFromImage(ctx, encoded, mimeType)
}
