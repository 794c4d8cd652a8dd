package shoplist

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	header  = "Shopping list:"
	closing = "Thank you for using Foodgram."
)

// Page geometry in points.
const (
	fontSize     = 14
	firstLineY   = 42
	lineStep     = 20
	bottomMargin = 70
	closingGap   = 30
	closingSpace = 80
	marginLeft   = 40
)

func itemLine(n int, it Item) string {
	return fmt.Sprintf("%d. %s - %d %s", n, it.Name, it.Amount, it.MeasurementUnit)
}

// WriteText writes the list as plain UTF-8 text, one entry per line.
func WriteText(w io.Writer, items []Item) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, header)
	for i, it := range items {
		fmt.Fprintln(bw, itemLine(i+1, it))
	}
	fmt.Fprintln(bw, closing)
	return bw.Flush()
}

// PDFOptions configures WritePDF. With an empty FontPath the core Helvetica
// font is used and text is transliterated to cp1252.
type PDFOptions struct {
	FontPath string
}

func WritePDF(w io.Writer, items []Item, opts PDFOptions) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Shopping list", true)

	translate := func(s string) string { return s }
	if opts.FontPath != "" {
		pdf.AddUTF8Font("shoplist", "", opts.FontPath)
		pdf.SetFont("shoplist", "", fontSize)
	} else {
		pdf.SetFont("Helvetica", "", fontSize)
		translate = pdf.UnicodeTranslatorFromDescriptor("")
	}

	_, pageHeight := pdf.GetPageSize()
	lines := make([]string, 0, len(items)+2)
	lines = append(lines, header)
	for i, it := range items {
		lines = append(lines, itemLine(i+1, it))
	}
	lines = append(lines, closing)

	page := 0
	for i, pos := range layout(len(items), pageHeight) {
		for page <= pos.page {
			pdf.AddPage()
			page++
		}
		pdf.Text(marginLeft, pos.y, translate(lines[i]))
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

type position struct {
	page int
	y    float64
}

// layout places the header, n item lines and the closing line on pages of
// the given height.
func layout(n int, pageHeight float64) []position {
	out := make([]position, 0, n+2)
	cur := position{page: 0, y: firstLineY}
	out = append(out, cur)

	for i := 0; i < n; i++ {
		cur.y += lineStep
		if cur.y > pageHeight-bottomMargin {
			cur = position{page: cur.page + 1, y: firstLineY}
		}
		out = append(out, cur)
	}

	if pageHeight-cur.y < closingSpace {
		cur = position{page: cur.page + 1, y: firstLineY}
	} else {
		cur.y += closingGap
	}
	return append(out, cur)
}
