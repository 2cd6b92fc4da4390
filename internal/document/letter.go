package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// WriteLetterPDF renders a markdown letter as a plain A4 PDF.
func WriteLetterPDF(w io.Writer, title, markdown string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Core fonts are cp1252.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(markdown, "\n") {
		text, heading := plainLine(line)
		if heading {
			pdf.SetFont("Helvetica", "B", 13)
		} else {
			pdf.SetFont("Helvetica", "", 11)
		}
		if text == "" {
			pdf.Ln(4)
			continue
		}
		pdf.MultiCell(0, 6, tr(text), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// plainLine strips the markdown markers a letter typically contains.
func plainLine(line string) (string, bool) {
	line = strings.TrimRight(line, " \t\r")
	heading := strings.HasPrefix(line, "#")
	line = strings.TrimLeft(line, "# ")
	line = strings.NewReplacer("**", "", "__", "", "`", "").Replace(line)
	if strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- ") {
		line = "• " + line[2:]
	}
	return line, heading
}
