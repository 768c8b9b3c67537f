// Package importer reads bulk card batches from spreadsheet files.
// Both .xlsx and .csv files are supported, laid out as one card per row
// in Deck | Front | Back | Notes column order.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zlatanpham/ankigo/internal/domain"
)

// Options configures an import run.
type Options struct {
	Sheet      string // xlsx sheet name; empty means the first sheet
	SkipHeader bool   // drop the first row
	Deck       string // deck for rows with a blank deck cell
}

// DefaultOptions returns the stock import configuration: first sheet,
// header row skipped, blank decks filed under "imported".
func DefaultOptions() Options {
	return Options{
		SkipHeader: true,
		Deck:       "imported",
	}
}

// Result holds the outcome of an import: the parsed cards plus
// per-row errors for everything that could not be read.
type Result struct {
	Cards     []domain.Card
	Processed int
	Skipped   int
	Errors    []string
}

// ImportFile parses the spreadsheet at path into cards. The format is
// chosen by file extension: .csv is read as CSV, anything else is
// treated as an xlsx workbook. Scheduling state is not assigned here;
// that happens when the cards are registered.
func ImportFile(path string, opts Options) (*Result, error) {
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		return importCSV(path, opts)
	}
	return importExcel(path, opts)
}

func importExcel(path string, opts Options) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	result := &Result{}
	for i, row := range rows {
		if i == 0 && opts.SkipHeader {
			continue
		}
		collectRow(result, row, i+1, opts.Deck)
	}
	return result, nil
}

func importCSV(path string, opts Options) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &Result{}
	rowNum := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv %s: %w", path, err)
		}
		rowNum++
		if rowNum == 1 && opts.SkipHeader {
			continue
		}
		collectRow(result, row, rowNum, opts.Deck)
	}
	return result, nil
}

// collectRow converts one spreadsheet row into a card, recording a
// row-scoped error instead of failing the whole import.
func collectRow(result *Result, row []string, rowNum int, fallbackDeck string) {
	result.Processed++
	card, err := rowToCard(row, fallbackDeck)
	if err != nil {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
		return
	}
	result.Cards = append(result.Cards, card)
}

func rowToCard(row []string, fallbackDeck string) (domain.Card, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	card := domain.Card{
		Deck:  cell(0),
		Front: cell(1),
		Back:  cell(2),
		Notes: cell(3),
	}
	if card.Deck == "" {
		card.Deck = fallbackDeck
	}
	if card.Front == "" {
		return domain.Card{}, errors.New("front must not be empty")
	}
	if card.Back == "" {
		return domain.Card{}, errors.New("back must not be empty")
	}
	return card, nil
}
