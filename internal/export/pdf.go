package export

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// Page geometry in millimetres
const (
	pageWidth     = 210.0
	pageMargin    = 15.0
	sidebarWidth  = 70.0
	sidebarPad    = 8.0
	classicMargin = 25.0
	lineHeight    = 5.0
	fontFamily    = "Helvetica"
)

// PDFPrinter lays out render trees directly with fpdf
type PDFPrinter struct {
	logger   *zap.Logger
	compress bool
}

// NewPDFPrinter creates a PDF printer
func NewPDFPrinter(log *zap.Logger) *PDFPrinter {
	return &PDFPrinter{logger: logger.OrNop(log), compress: true}
}

// Print renders the tree into PDF bytes
func (p *PDFPrinter) Print(ctx context.Context, tree rendering.Tree) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ExportError{Engine: EnginePDF, Message: "export cancelled", Cause: err}
	}

	pdf := p.layout(tree)
	if err := pdf.Error(); err != nil {
		return nil, &ExportError{Engine: EnginePDF, Message: "failed to lay out document", Cause: err}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &ExportError{Engine: EnginePDF, Message: "failed to write PDF output", Cause: err}
	}

	p.logger.Debug("PDF generated",
		zap.String("template", string(tree.Template)),
		zap.Int("pages", pdf.PageCount()),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (p *PDFPrinter) layout(tree rendering.Tree) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(p.compress)
	pdf.SetTitle(tree.Header.Name, true)
	pdf.SetCreator("resume-builder", false)

	w := &pdfWriter{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		theme: parseHexColor(rendering.SafeThemeColor(tree.ThemeColor)),
	}

	if tree.Template == types.TemplateClassic {
		w.classic(tree)
	} else {
		w.modern(tree)
	}
	return pdf
}

type rgb struct{ r, g, b int }

func parseHexColor(hex string) rgb {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return rgb{37, 99, 235}
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

type pdfWriter struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	theme rgb

	// inSidebar routes automatic page breaks to the pages the main column already created
	inSidebar bool
	// plainRules draws section rules in the text color instead of the theme color
	plainRules bool
}

func (w *pdfWriter) modern(tree rendering.Tree) {
	pdf := w.pdf
	mainLeft := sidebarWidth + 10

	pdf.SetHeaderFuncMode(func() {
		pdf.SetFillColor(w.theme.r, w.theme.g, w.theme.b)
		pdf.Rect(0, 0, sidebarWidth, 297, "F")
	}, false)
	pdf.SetAcceptPageBreakFunc(func() bool {
		if w.inSidebar && pdf.PageNo() < pdf.PageCount() {
			pdf.SetPage(pdf.PageNo() + 1)
			pdf.SetY(pageMargin)
			return false
		}
		return true
	})
	pdf.SetMargins(mainLeft, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pdf.SetTextColor(31, 41, 55)
	if tree.Summary != nil {
		w.sectionHeading(tree.Summary.Label, true)
		w.paragraphs(tree.Summary.Paragraphs)
		pdf.Ln(4)
	}
	if main, ok := tree.Column(rendering.ColumnMain); ok {
		for _, block := range main.Blocks {
			w.block(block, true)
		}
	}

	w.inSidebar = true
	pdf.SetPage(1)
	pdf.SetLeftMargin(sidebarPad)
	pdf.SetRightMargin(pageWidth - sidebarWidth + sidebarPad)
	pdf.SetXY(sidebarPad, pageMargin)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(255, 255, 255)

	pdf.SetFont(fontFamily, "B", 16)
	pdf.MultiCell(0, 7, w.tr(strings.ToUpper(tree.Header.Name)), "", "L", false)
	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(0, lineHeight, w.tr(tree.Header.Title), "", "L", false)
	pdf.Ln(6)

	pdf.SetFont(fontFamily, "", 8)
	for _, c := range tree.Header.Contacts {
		pdf.MultiCell(0, 4.5, w.tr(c.Text), "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(6)

	if sidebar, ok := tree.Column(rendering.ColumnSidebar); ok {
		for _, block := range sidebar.Blocks {
			w.block(block, false)
		}
	}
	w.inSidebar = false
}

func (w *pdfWriter) classic(tree rendering.Tree) {
	pdf := w.pdf
	w.plainRules = true
	pdf.SetMargins(classicMargin, classicMargin, classicMargin)
	pdf.SetAutoPageBreak(true, classicMargin)
	pdf.AddPage()
	pdf.SetTextColor(31, 41, 55)
	pdf.SetDrawColor(31, 41, 55)

	pdf.SetFont("Times", "B", 24)
	pdf.CellFormat(0, 11, w.tr(strings.ToUpper(tree.Header.Name)), "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "I", 13)
	pdf.CellFormat(0, 7, w.tr(tree.Header.Title), "", 1, "C", false, 0, "")

	contacts := make([]string, 0, len(tree.Header.Contacts))
	for _, c := range tree.Header.Contacts {
		contacts = append(contacts, c.Text)
	}
	pdf.SetFont("Times", "", 10)
	pdf.MultiCell(0, lineHeight, w.tr(strings.Join(contacts, "  •  ")), "", "C", false)

	y := pdf.GetY() + 3
	pdf.SetLineWidth(0.4)
	pdf.Line(classicMargin, y, pageWidth-classicMargin, y)
	pdf.Line(classicMargin, y+1, pageWidth-classicMargin, y+1)
	pdf.SetLineWidth(0.2)
	pdf.SetY(y + 8)

	if tree.Summary != nil {
		w.sectionHeading(tree.Summary.Label, true)
		w.paragraphs(tree.Summary.Paragraphs)
		pdf.Ln(4)
	}
	if single, ok := tree.Column(rendering.ColumnSingle); ok {
		for _, block := range single.Blocks {
			w.block(block, true)
		}
	}
}

func (w *pdfWriter) sectionHeading(title string, themed bool) {
	pdf := w.pdf
	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(0, 7, w.tr(strings.ToUpper(title)), "", 1, "L", false, 0, "")

	left, _, right, _ := pdf.GetMargins()
	if themed && !w.plainRules {
		pdf.SetDrawColor(w.theme.r, w.theme.g, w.theme.b)
	}
	y := pdf.GetY()
	pdf.Line(left, y, pageWidth-right, y)
	pdf.Ln(3)
}

func (w *pdfWriter) block(block rendering.Block, onWhite bool) {
	w.sectionHeading(block.Title, onWhite)

	switch block.Kind {
	case rendering.BlockTags:
		w.tags(block.Tags, onWhite)
	case rendering.BlockGrid:
		w.grid(block.Tags, block.GridColumns)
	default:
		for _, entry := range block.Entries {
			w.entry(entry)
		}
	}
	w.pdf.Ln(4)
}

func (w *pdfWriter) entry(e rendering.Entry) {
	pdf := w.pdf
	left, _, right, _ := pdf.GetMargins()
	width := pageWidth - left - right

	dateWidth := 0.0
	if e.Date != "" {
		pdf.SetFont(fontFamily, "", 8)
		dateWidth = pdf.GetStringWidth(w.tr(e.Date)) + 2
		y := pdf.GetY()
		pdf.SetXY(left+width-dateWidth, y)
		pdf.CellFormat(dateWidth, 6, w.tr(e.Date), "", 0, "R", false, 0, "")
		pdf.SetXY(left, pdf.GetY())
	}
	pdf.SetFont(fontFamily, "B", 10)
	pdf.MultiCell(width-dateWidth, 6, w.tr(e.Title), "", "L", false)

	if e.Subtitle != "" {
		pdf.SetFont(fontFamily, "B", 9)
		pdf.MultiCell(0, lineHeight, w.tr(e.Subtitle), "", "L", false)
	}
	w.paragraphs(e.Paragraphs)
	pdf.Ln(2)
}

func (w *pdfWriter) paragraphs(paragraphs []string) {
	w.pdf.SetFont(fontFamily, "", 9)
	for _, p := range paragraphs {
		w.pdf.MultiCell(0, lineHeight, w.tr(p), "", "J", false)
	}
}

func (w *pdfWriter) tags(tags []string, onWhite bool) {
	pdf := w.pdf
	left, _, right, _ := pdf.GetMargins()
	limit := pageWidth - right

	pdf.SetFont(fontFamily, "", 8)
	if onWhite {
		pdf.SetFillColor(229, 231, 235)
	} else {
		pdf.SetFillColor(lighten(w.theme))
	}
	pdf.SetX(left)
	for _, tag := range tags {
		text := w.tr(tag)
		width := pdf.GetStringWidth(text) + 4
		if pdf.GetX()+width > limit && pdf.GetX() > left {
			pdf.Ln(7)
			pdf.SetX(left)
		}
		pdf.CellFormat(width, 5.5, text, "", 0, "C", true, 0, "")
		pdf.SetX(pdf.GetX() + 2)
	}
	pdf.Ln(7)
}

func (w *pdfWriter) grid(tags []string, columns int) {
	pdf := w.pdf
	if columns <= 0 {
		columns = 1
	}
	left, _, right, _ := pdf.GetMargins()
	cellWidth := (pageWidth - left - right) / float64(columns)

	pdf.SetFont(fontFamily, "", 9)
	for i, tag := range tags {
		ln := 0
		if (i+1)%columns == 0 || i == len(tags)-1 {
			ln = 1
		}
		pdf.CellFormat(cellWidth, 6, w.tr("• "+tag), "", ln, "L", false, 0, "")
	}
}

// lighten mixes c with white so tags stay readable on the sidebar band
func lighten(c rgb) (int, int, int) {
	mix := func(v int) int { return v + (255-v)/4 }
	return mix(c.r), mix(c.g), mix(c.b)
}
