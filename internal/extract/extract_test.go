package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOCR records the forwarded payload and returns canned text.
type stubOCR struct {
	text     string
	err      error
	gotData  string
	gotMIME  string
	numCalls int
}

func (s *stubOCR) ExtractTextFromImage(_ context.Context, base64Data, mimeType string) (string, error) {
	s.numCalls++
	s.gotData = base64Data
	s.gotMIME = mimeType
	return s.text, s.err
}

// docxFixture builds a minimal DOCX archive in memory.
func docxFixture(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestExtract_PlainText(t *testing.T) {
	text, err := Extract(context.Background(), "resume.txt", []byte("  Jane Doe\nSoftware Engineer \n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSoftware Engineer", text)
}

func TestExtract_UnknownExtension(t *testing.T) {
	for _, name := range []string{"resume.exe", "resume", "archive.tar.gz"} {
		text, err := Extract(context.Background(), name, []byte("whatever"), nil)
		assert.NoError(t, err, name)
		assert.Empty(t, text, name)
	}
}

func TestExtract_SuffixCaseInsensitive(t *testing.T) {
	text, err := Extract(context.Background(), "RESUME.TXT", []byte("Jane Doe"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", text)
}

func TestExtract_DOCX(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Software</w:t></w:r><w:r><w:t xml:space="preserve"> Engineer</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := Extract(context.Background(), "resume.docx", docxFixture(t, doc), nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSoftware Engineer", text)
}

func TestExtract_DOCX_NotAnArchive(t *testing.T) {
	_, err := Extract(context.Background(), "resume.docx", []byte("this is not a zip"), nil)
	require.Error(t, err)

	var exErr *Error
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, "resume.docx", exErr.Filename)
}

func TestExtract_DOCX_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = Extract(context.Background(), "resume.docx", buf.Bytes(), nil)
	assert.Error(t, err)
}

func TestExtract_PDF_Malformed(t *testing.T) {
	_, err := Extract(context.Background(), "resume.pdf", []byte("%PDF-1.4 garbage"), nil)
	require.Error(t, err)

	var exErr *Error
	assert.ErrorAs(t, err, &exErr)
}

func TestExtract_HTML(t *testing.T) {
	page := `<html><head><script>alert(1)</script><style>p{}</style></head>
<body><nav>Home</nav><main><h1>Jane Doe</h1><p>Software Engineer</p></main><footer>contact</footer></body></html>`

	text, err := Extract(context.Background(), "resume.html", []byte(page), nil)
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Software Engineer")
	assert.NotContains(t, text, "alert(1)")
	assert.NotContains(t, text, "Home")
}

func TestExtract_Image(t *testing.T) {
	tests := []struct {
		filename string
		wantMIME string
	}{
		{"scan.jpg", "image/jpeg"},
		{"scan.jpeg", "image/jpeg"},
		{"scan.png", "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			ocr := &stubOCR{text: " Jane Doe "}
			payload := []byte{0x01, 0x02, 0x03}

			text, err := Extract(context.Background(), tt.filename, payload, ocr)
			require.NoError(t, err)
			assert.Equal(t, "Jane Doe", text)
			assert.Equal(t, 1, ocr.numCalls)
			assert.Equal(t, tt.wantMIME, ocr.gotMIME)
			assert.Equal(t, base64.StdEncoding.EncodeToString(payload), ocr.gotData)
		})
	}
}

func TestExtract_Image_OCRFailure(t *testing.T) {
	ocr := &stubOCR{err: fmt.Errorf("model unavailable")}

	_, err := Extract(context.Background(), "scan.png", []byte{0x01}, ocr)
	require.Error(t, err)

	var exErr *Error
	assert.ErrorAs(t, err, &exErr)
}

func TestExtract_Image_NoOCRClient(t *testing.T) {
	_, err := Extract(context.Background(), "scan.png", []byte{0x01}, nil)
	assert.Error(t, err)
}
