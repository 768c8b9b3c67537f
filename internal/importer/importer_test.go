package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestImportCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cards.csv")
	content := "deck,front,back,notes\n" +
		"spanish,hola,hello,greeting\n" +
		",bonjour,hello,\n" +
		"spanish,,missing front,\n" +
		"spanish,adios,goodbye\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	result, err := ImportFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}

	if result.Processed != 4 {
		t.Errorf("Processed = %d, want 4", result.Processed)
	}
	if len(result.Cards) != 3 {
		t.Fatalf("Cards = %d, want 3", len(result.Cards))
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %d, want 1", len(result.Errors))
	}

	first := result.Cards[0]
	if first.Deck != "spanish" || first.Front != "hola" || first.Back != "hello" || first.Notes != "greeting" {
		t.Errorf("first card = %+v", first)
	}
	// Blank deck cell falls back to the default deck.
	if result.Cards[1].Deck != "imported" {
		t.Errorf("fallback deck = %q, want %q", result.Cards[1].Deck, "imported")
	}
	// Short row without a notes column still imports.
	if result.Cards[2].Front != "adios" || result.Cards[2].Notes != "" {
		t.Errorf("short row card = %+v", result.Cards[2])
	}
}

func TestImportCSVNoHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cards.csv")
	content := "spanish,uno,one,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	opts := DefaultOptions()
	opts.SkipHeader = false
	result, err := ImportFile(path, opts)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(result.Cards) != 1 {
		t.Fatalf("Cards = %d, want 1", len(result.Cards))
	}
}

func TestImportExcel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cards.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Deck", "Front", "Back", "Notes"},
		{"go", "goroutine", "a lightweight thread managed by the runtime", ""},
		{"go", "channel", "a typed conduit for goroutine communication", "see sync"},
		{"go", "", "no front", ""},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("setting row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving workbook: %v", err)
	}

	result, err := ImportFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}

	if len(result.Cards) != 2 {
		t.Fatalf("Cards = %d, want 2", len(result.Cards))
	}
	if result.Cards[0].Front != "goroutine" {
		t.Errorf("first front = %q, want %q", result.Cards[0].Front, "goroutine")
	}
	if result.Cards[1].Notes != "see sync" {
		t.Errorf("second notes = %q, want %q", result.Cards[1].Notes, "see sync")
	}
	if len(result.Errors) != 1 {
		t.Errorf("Errors = %d, want 1", len(result.Errors))
	}
}

func TestImportMissingFile(t *testing.T) {
	if _, err := ImportFile(filepath.Join(t.TempDir(), "absent.xlsx"), DefaultOptions()); err == nil {
		t.Error("ImportFile on a missing file should return an error")
	}
}
