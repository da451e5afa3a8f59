package labels

import (
	"bytes"
	"testing"

	"Gin_boardgame_lending_tool/models"
)

func TestPNGUsesBarcodeWhenSet(t *testing.T) {
	png, err := PNG(models.BoardGame{ID: 1, Name: "Catan", Barcode: "001"}, 0)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if len(png) == 0 || !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("not a png (%d bytes)", len(png))
	}
}

func TestPNGFallsBackToName(t *testing.T) {
	if _, err := PNG(models.BoardGame{ID: 2, Name: "Splendor"}, 128); err != nil {
		t.Fatalf("png: %v", err)
	}
}

func TestSheetPDF(t *testing.T) {
	games := []models.BoardGame{
		{ID: 1, Name: "Catan", Barcode: "001"},
		{ID: 2, Name: "Splendor", Barcode: "002"},
		{ID: 3, Name: "UNO", Barcode: "003"},
	}
	pdf, err := SheetPDF(games)
	if err != nil {
		t.Fatalf("sheet: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("output is not a pdf")
	}
}
