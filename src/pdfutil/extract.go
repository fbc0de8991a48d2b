package pdfutil

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"pdfchat/src/log"
)

// Document is one uploaded PDF, held in memory only until its text has been
// extracted.
type Document struct {
	Name string
	Data []byte
}

// Extract parses every document and concatenates the plain text of all pages
// in upload order. A document that cannot be parsed contributes nothing and
// adds one warning to the returned list; extraction itself never fails, so
// all documents failing yields an empty string and one warning each.
func Extract(docs []Document) (string, []string) {
	var text strings.Builder
	var warnings []string
	for _, doc := range docs {
		content, err := extractOne(doc)
		if err != nil {
			log.Info("failed to read PDF", "name", doc.Name, "error", err.Error())
			warnings = append(warnings, fmt.Sprintf("Error reading PDF %s: %v", doc.Name, err))
			continue
		}
		text.WriteString(content)
	}
	return text.String(), warnings
}

func extractOne(doc Document) (content string, err error) {
	// The parser panics on some malformed files; treat those like any other
	// parse error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Pages with no extractable text (scanned images, unsupported
			// encodings) contribute an empty string.
			continue
		}
		text.WriteString(pageText)
	}
	return text.String(), nil
}
