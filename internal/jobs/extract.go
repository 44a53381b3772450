package jobs

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is one extracted unit of text with its source label. A PDF
// yields one document per page ("name.pdf:pN"); plain text and markdown
// yield a single document labeled with the file name.
type Document struct {
	Source string
	Text   string
}

// ExtractDocuments converts raw file bytes into documents ready for
// chunking.
func ExtractDocuments(name string, data []byte) ([]Document, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return extractPDF(name, data)
	default:
		return []Document{{Source: path.Base(name), Text: string(data)}}, nil
	}
}

// extractPDF pulls plain text page by page. Extraction is best-effort:
// a page that fails to decode is logged and skipped rather than failing
// the whole document.
func extractPDF(name string, data []byte) ([]Document, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", name, err)
	}

	base := path.Base(name)
	docs := make([]Document, 0, reader.NumPage())

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("skipping page %d of %s: %v", i, base, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		docs = append(docs, Document{
			Source: fmt.Sprintf("%s:p%d", base, i),
			Text:   text,
		})
	}

	if len(docs) == 0 {
		// fall back to whole-document extraction before giving up
		if text := wholePDFText(reader); strings.TrimSpace(text) != "" {
			docs = append(docs, Document{Source: base, Text: text})
		}
	}

	return docs, nil
}

func wholePDFText(reader *pdf.Reader) string {
	r, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return ""
	}
	return buf.String()
}
