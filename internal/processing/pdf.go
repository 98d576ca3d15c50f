package processing

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/utils"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// RenderPDF lays out the title and paragraphs of text on A4 pages and
// returns the document base64 encoded.
func RenderPDF(title, text string) (models.PDFRecord, error) {
	paragraphs := utils.Paragraphs(text)
	if len(paragraphs) == 0 {
		return models.PDFRecord{}, errors.New("no text available for PDF generation")
	}
	if strings.TrimSpace(title) == "" {
		title = "Document"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(6, 95, 70)
	pdf.MultiCell(0, 10, tr(title), "", "C", false)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	for _, p := range paragraphs {
		pdf.MultiCell(0, 6, tr(p), "", "J", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return models.PDFRecord{}, fmt.Errorf("failed to render pdf: %w", err)
	}

	return models.PDFRecord{
		FileName: PDFFileName(title),
		FileSize: humanize.Bytes(uint64(buf.Len())),
		Content:  base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

func PDFFileName(title string) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ReplaceAll(title, " ", "_"), ""), "._-")
	if name == "" {
		name = "Document"
	}
	if len(name) > 80 {
		name = name[:80]
	}
	return name + ".pdf"
}
