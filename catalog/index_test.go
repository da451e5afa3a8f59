package catalog

import (
	"testing"

	"Gin_boardgame_lending_tool/models"
)

func testIndex() *Index {
	return NewIndex([]models.BoardGame{
		{ID: 1, Name: "Catan", Barcode: "007"},
		{ID: 2, Name: "Splendor", Barcode: "008"},
		{ID: 3, Name: "007"}, // name collides with Catan's barcode
		{ID: 4, Name: "อูโน่"},
	})
}

func TestResolveBarcodeBeforeName(t *testing.T) {
	idx := testIndex()
	g, ok := idx.Resolve("007")
	if !ok {
		t.Fatal("no match")
	}
	// barcode equality outranks the name match on game 3
	if g.ID != 1 {
		t.Fatalf("resolved game %d, want 1", g.ID)
	}
}

func TestResolveNameCaseInsensitive(t *testing.T) {
	idx := testIndex()
	g, ok := idx.Resolve("cAtAn")
	if !ok || g.ID != 1 {
		t.Fatalf("got %+v ok=%v", g, ok)
	}
}

func TestResolveLayoutVariant(t *testing.T) {
	idx := testIndex()
	// "catan" scanned while the Thai layout was active
	g, ok := idx.Resolve("แฟะฟื")
	if !ok || g.Name != "Catan" {
		t.Fatalf("got %+v ok=%v", g, ok)
	}
}

func TestResolveMiss(t *testing.T) {
	idx := testIndex()
	if _, ok := idx.Resolve("no such game"); ok {
		t.Fatal("expected miss")
	}
}

func TestCartLifecycle(t *testing.T) {
	idx := testIndex()
	if on, ok := idx.ToggleSelect(2); !ok || !on {
		t.Fatalf("toggle: on=%v ok=%v", on, ok)
	}
	if on, ok := idx.ToggleSelect(1); !ok || !on {
		t.Fatalf("toggle: on=%v ok=%v", on, ok)
	}
	names := idx.SelectedNames()
	if len(names) != 2 || names[0] != "Catan" || names[1] != "Splendor" {
		t.Fatalf("cart %v", names)
	}
	if _, ok := idx.ToggleSelect(99); ok {
		t.Fatal("toggled unknown id")
	}
	idx.ClearSelection()
	if len(idx.SelectedNames()) != 0 {
		t.Fatal("cart not cleared")
	}
}

func TestReloadDropsStaleCartEntries(t *testing.T) {
	idx := testIndex()
	idx.ToggleSelect(3)
	idx.Reload([]models.BoardGame{{ID: 1, Name: "Catan", Barcode: "007"}})
	if len(idx.SelectedNames()) != 0 {
		t.Fatalf("stale cart entry survived reload: %v", idx.SelectedNames())
	}
}
