// Package labels renders the scannable labels that go on the game boxes.
// The QR payload is the game's barcode when one is assigned, otherwise the
// name — exactly the token the scan pathway resolves.
package labels

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"Gin_boardgame_lending_tool/models"
)

func payload(g models.BoardGame) string {
	if g.Barcode != "" {
		return g.Barcode
	}
	return g.Name
}

// PNG renders a single label image.
func PNG(g models.BoardGame, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(payload(g), qrcode.Medium, size)
}

// SheetPDF lays every game out on A4 pages, 3 columns by 8 rows, QR above
// the game name.
func SheetPDF(games []models.BoardGame) ([]byte, error) {
	const (
		cols       = 3
		rows       = 8
		pageW      = 210.0
		pageH      = 297.0
		margin     = 10.0
		qrSide     = 24.0
		labelsPage = cols * rows
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 9)

	cellW := (pageW - 2*margin) / cols
	cellH := (pageH - 2*margin) / rows

	for i, g := range games {
		if i%labelsPage == 0 {
			pdf.AddPage()
		}
		pos := i % labelsPage
		x := margin + float64(pos%cols)*cellW
		y := margin + float64(pos/cols)*cellH

		png, err := qrcode.Encode(payload(g), qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("qr for %q: %w", g.Name, err)
		}
		name := fmt.Sprintf("qr-%d", g.ID)
		pdf.RegisterImageOptionsReader(name,
			gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		pdf.ImageOptions(name,
			x+(cellW-qrSide)/2, y+2, qrSide, qrSide, false,
			gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

		// core fonts are latin-1 only; names that translate to nothing
		// (e.g. Thai) fall back to the scan payload
		text := strings.TrimSpace(pdf.UnicodeTranslatorFromDescriptor("")(g.Name))
		if text == "" {
			text = payload(g)
		}
		pdf.SetXY(x, y+qrSide+3)
		pdf.CellFormat(cellW, 5, text, "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
