// Package export renders generated contracts as printable documents.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/rpggio/qontract/internal/domain/contract"
)

const (
	fontFamily = "Times"

	maxFontSize  = 11.0
	minFontSize  = 6.0
	fontSizeStep = 0.5
	// Past minFontSize the body scales down by shrinkFactor per step,
	// stopping at floorFontSize.
	shrinkFactor  = 0.9
	floorFontSize = 1.0

	marginMM        = 20.0
	signatureHeight = 52.0
	padHeight       = 28.0
	columnGap       = 12.0

	// points to millimetres, times line spacing
	lineFactor = 0.3528 * 1.45
)

// ErrDoesNotFit reports a draft too long to print on one page even at the
// smallest font size.
var ErrDoesNotFit = errors.New("contract does not fit on one page")

type block struct {
	text  string
	style string
	align string
	scale float64
	gap   float64
}

// Renderer draws contract drafts onto a single A4 page.
type Renderer struct {
	pageSize string
}

// NewRenderer returns an A4 renderer.
func NewRenderer() *Renderer {
	return &Renderer{pageSize: "A4"}
}

// Render returns the PDF bytes for doc with the captured signatures. The
// body font shrinks until everything fits on one page.
func (r *Renderer) Render(doc contract.GeneratedContract, sigs contract.Signatures) ([]byte, error) {
	pdf, err := r.draw(doc, sigs)
	if err != nil {
		return nil, err
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) draw(doc contract.GeneratedContract, sigs contract.Signatures) (*fpdf.Fpdf, error) {
	blocks := layout(doc)
	var size float64
	for {
		pdf := fpdf.New("P", "mm", r.pageSize, "")
		pdf.SetMargins(marginMM, marginMM, marginMM)
		pdf.SetAutoPageBreak(false, 0)
		pdf.SetTitle(doc.Title, true)
		pdf.AddPage()

		tr := pdf.UnicodeTranslatorFromDescriptor("")
		pageW, pageH := pdf.GetPageSize()
		width := pageW - 2*marginMM
		signatureTop := pageH - marginMM - signatureHeight

		if size == 0 {
			var err error
			size, err = fitFontSize(pdf, tr, blocks, width, signatureTop-marginMM)
			if err != nil {
				return nil, err
			}
		}

		// MultiCell can wrap a line more than SplitText did; redraw smaller
		// rather than clip.
		if bottom := drawBody(pdf, tr, blocks, width, size); bottom > signatureTop {
			if size <= floorFontSize {
				return nil, fmt.Errorf("%w: body ends at %.1fmm, signatures start at %.1fmm", ErrDoesNotFit, bottom, signatureTop)
			}
			size = math.Max(size*shrinkFactor, floorFontSize)
			continue
		}

		drawSignatures(pdf, tr, doc, sigs, signatureTop, width, math.Max(size, minFontSize))
		return pdf, nil
	}
}

func drawBody(pdf *fpdf.Fpdf, tr func(string) string, blocks []block, width, size float64) float64 {
	y := marginMM
	for _, b := range blocks {
		pdf.SetFont(fontFamily, b.style, size*b.scale)
		pdf.SetXY(marginMM, y)
		pdf.MultiCell(width, size*b.scale*lineFactor, tr(b.text), "", b.align, false)
		y = pdf.GetY() + b.gap*size*lineFactor
	}
	return pdf.GetY()
}

// fitFontSize returns the largest body size at which blocks fit into
// height. Sizes step down by fontSizeStep to minFontSize, then shrink
// geometrically so long drafts scale down instead of being cut off.
func fitFontSize(pdf *fpdf.Fpdf, tr func(string) string, blocks []block, width, height float64) (float64, error) {
	size := maxFontSize
	for size > minFontSize && measure(pdf, tr, blocks, width, size) > height {
		size -= fontSizeStep
	}
	for measure(pdf, tr, blocks, width, size) > height {
		if size <= floorFontSize {
			return 0, fmt.Errorf("%w: %d blocks", ErrDoesNotFit, len(blocks))
		}
		size = math.Max(size*shrinkFactor, floorFontSize)
	}
	return size, nil
}

func layout(doc contract.GeneratedContract) []block {
	var blocks []block
	add := func(b block) {
		if strings.TrimSpace(b.text) != "" {
			blocks = append(blocks, b)
		}
	}

	add(block{text: strings.ToUpper(doc.Title), style: "B", align: "C", scale: 1.3, gap: 1})
	add(block{text: doc.Opening, align: "J", scale: 1, gap: 0.5})
	for _, p := range doc.Parties {
		add(block{text: p.ID, style: "B", align: "L", scale: 1})
		add(block{text: p.Details, align: "J", scale: 1, gap: 0.5})
	}
	add(block{text: doc.Preamble, align: "J", scale: 1, gap: 0.5})
	for _, c := range doc.Clauses {
		add(block{text: c.Title, style: "B", align: "C", scale: 1, gap: 0.2})
		add(block{text: c.Content, align: "J", scale: 1, gap: 0.5})
	}
	add(block{text: doc.Closing, align: "J", scale: 1})
	return blocks
}

func measure(pdf *fpdf.Fpdf, tr func(string) string, blocks []block, width, size float64) float64 {
	var h float64
	for _, b := range blocks {
		pdf.SetFont(fontFamily, b.style, size*b.scale)
		lines := pdf.SplitText(tr(b.text), width)
		h += float64(len(lines))*size*b.scale*lineFactor + b.gap*size*lineFactor
	}
	return h
}

func drawSignatures(pdf *fpdf.Fpdf, tr func(string) string, doc contract.GeneratedContract, sigs contract.Signatures, top, width, size float64) {
	colW := (width - columnGap) / 2
	pads := []contract.Pad{contract.PadPartyOne, contract.PadPartyTwo}

	for i, pad := range pads {
		line := doc.SignatureAt(i)
		x := marginMM + float64(i)*(colW+columnGap)
		lh := size * lineFactor

		pdf.SetFont(fontFamily, "B", size)
		pdf.SetXY(x, top)
		pdf.CellFormat(colW, lh, tr(line.Party), "", 0, "C", false, 0, "")

		boxY := top + lh + 2
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetLineWidth(0.2)
		pdf.Rect(x, boxY, colW, padHeight, "D")

		pdf.SetDrawColor(20, 20, 60)
		pdf.SetLineWidth(0.5)
		for _, stroke := range sigs.Strokes(pad) {
			drawStroke(pdf, stroke, x, boxY, colW, padHeight)
		}

		ruleY := boxY + padHeight + 2
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Line(x+colW*0.1, ruleY, x+colW*0.9, ruleY)

		pdf.SetFont(fontFamily, "", size)
		pdf.SetXY(x, ruleY+1)
		pdf.CellFormat(colW, lh, tr(line.Name), "", 0, "C", false, 0, "")
	}
}

func drawStroke(pdf *fpdf.Fpdf, stroke contract.Stroke, x, y, w, h float64) {
	if len(stroke.Points) == 1 {
		p := stroke.Points[0]
		pdf.Circle(x+p.X*w, y+p.Y*h, 0.3, "F")
		return
	}
	for i := 1; i < len(stroke.Points); i++ {
		a, b := stroke.Points[i-1], stroke.Points[i]
		pdf.Line(x+a.X*w, y+a.Y*h, x+b.X*w, y+b.Y*h)
	}
}
