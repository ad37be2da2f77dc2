package book

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page-break and numbering rules are output contracts; fonts and spacing
// below are cosmetic.
//
//   - Title and author open the document on their own page.
//   - The prologue, when present, starts on a new page.
//   - Every chapter starts on a new page; the final chapter adds no
//     trailing page break.
//   - Every physical page carries a 1-based sequential page number
//     centered near the bottom margin.

const (
	bodyFont     = "Times"
	bodySize     = 12.0
	headingSize  = 18.0
	titleSize    = 26.0
	lineHeight   = 6.0
	footerMargin = 15.0
)

// RenderPDF produces the paginated form of a book.
func RenderPDF(b *Book) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(b.Title, true)
	pdf.SetAuthor(b.Author, true)
	pdf.SetAutoPageBreak(true, footerMargin+5)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-footerMargin)
		pdf.SetFont(bodyFont, "", 10)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	// Title page.
	pdf.AddPage()
	pdf.SetY(100)
	pdf.SetFont(bodyFont, "B", titleSize)
	pdf.MultiCell(0, 12, latin1(b.Title), "", "C", false)
	pdf.Ln(8)
	pdf.SetFont(bodyFont, "I", bodySize+2)
	pdf.MultiCell(0, lineHeight, latin1("by "+b.Author), "", "C", false)

	// Prologue page, only when a generated introduction exists.
	if strings.TrimSpace(b.Prologue) != "" {
		section(pdf, "Introduction", b.Prologue)
	}

	for i, c := range b.Chapters {
		section(pdf, fmt.Sprintf("Chapter %d", i+1), c.Content)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// section starts a new page with a heading followed by justified body text.
func section(pdf *fpdf.Fpdf, heading, body string) {
	pdf.AddPage()
	pdf.SetFont(bodyFont, "B", headingSize)
	pdf.MultiCell(0, 10, latin1(heading), "", "C", false)
	pdf.Ln(6)
	pdf.SetFont(bodyFont, "", bodySize)
	for _, para := range strings.Split(strings.TrimSpace(body), "\n\n") {
		pdf.MultiCell(0, lineHeight, latin1(strings.TrimSpace(para)), "", "J", false)
		pdf.Ln(3)
	}
}

// latin1 maps text into the core fonts' cp1252 space, replacing characters
// that cannot be represented.
func latin1(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			sb.WriteRune(r)
		case r == '‘' || r == '’':
			sb.WriteByte('\'')
		case r == '“' || r == '”':
			sb.WriteByte('"')
		case r == '–' || r == '—':
			sb.WriteByte('-')
		case r <= 0xFF:
			sb.WriteByte(byte(r))
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}
