// Package document extracts text from uploaded resumes and renders
// generated letters as PDF.
package document

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/msomdec/careerforge/internal/domain"
	"github.com/nguyenthenguyen/docx"
)

// MaxResumeSize is the largest resume upload accepted.
const MaxResumeSize = 5 * 1024 * 1024 // 5MB

const (
	MimePDF   = "application/pdf"
	MimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePlain = "text/plain"
)

// ExtractResumeText returns the plain text of a resume file.
func ExtractResumeText(mime string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: resume file is empty", domain.ErrInvalidInput)
	}
	if len(data) > MaxResumeSize {
		return "", fmt.Errorf("%w: resume exceeds 5MB limit", domain.ErrInvalidInput)
	}

	var (
		text string
		err  error
	)
	switch mime {
	case MimePlain:
		text = string(data)
	case MimePDF:
		text, err = extractPDFText(data)
	case MimeDOCX:
		text, err = extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: unsupported file type %s", domain.ErrInvalidInput, mime)
	}
	if err != nil {
		return "", err
	}

	text = strings.ToValidUTF8(strings.TrimSpace(text), "�")
	if text == "" {
		return "", fmt.Errorf("%w: no text found in resume", domain.ErrInvalidInput)
	}
	return text, nil
}

// DetectMime resolves the resume type from the declared content type,
// falling back to the file extension.
func DetectMime(contentType, filename string) string {
	switch contentType {
	case MimePDF, MimeDOCX, MimePlain:
		return contentType
	}
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return MimePDF
	case strings.HasSuffix(lower, ".docx"):
		return MimeDOCX
	case strings.HasSuffix(lower, ".txt"):
		return MimePlain
	}
	return contentType
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: read pdf: %v", domain.ErrInvalidInput, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parse docx: %v", domain.ErrInvalidInput, err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}
