package adapters

import (
	"context"
	"encoding/csv"
	"fmt"
	"ledger/src/schemas"
	"ledger/src/utils"
	"strings"
	"time"
)

// CSVAdapter extracts rows from CSV files and from free-form pasted
// statement text.
type CSVAdapter struct{}

func NewCSVAdapter() *CSVAdapter {
	return &CSVAdapter{}
}

func (a *CSVAdapter) Extract(ctx context.Context, payload Payload) (*schemas.RawExtraction, error) {
	normalized := utils.NormalizeContent(payload.Content)
	if len(normalized) == 0 {
		return nil, &ExtractionError{Filename: payload.Filename, Reason: "empty content"}
	}

	reader := csv.NewReader(strings.NewReader(string(normalized)))
	reader.Comma = sniffDelimiter(string(normalized))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ExtractionError{Filename: payload.Filename, Reason: "malformed tabular content", Err: err}
	}
	if len(records) == 0 {
		return nil, &ExtractionError{Filename: payload.Filename, Reason: "no rows found"}
	}

	profile := profileFor(payload.Institution)

	columns, dataRecords := splitHeader(records)
	kind := guessKind(columns, profile.Kind)

	rows := make([]schemas.RawRow, 0, len(dataRecords))
	for _, record := range dataRecords {
		cells := padCells(record, len(columns))
		rows = append(rows, schemas.RawRow{
			Cells:            cells,
			IncludeByDefault: !isEmptyRow(cells),
		})
	}

	return &schemas.RawExtraction{
		Columns:            columns,
		Rows:               rows,
		DetectedMapping:    guessMapping(columns, kind),
		ContentFingerprint: utils.FingerprintContent(payload.Content),
		SuggestedDate:      suggestDate(records),
		Kind:               kind,
		Institution:        payload.Institution,
		DefaultCategory:    profile.DefaultCategory,
	}, nil
}

// sniffDelimiter picks the separator occurring most often in the first
// non-empty line.
func sniffDelimiter(text string) rune {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		best, count := ',', strings.Count(line, ",")
		if n := strings.Count(line, ";"); n > count {
			best, count = ';', n
		}
		if n := strings.Count(line, "\t"); n > count {
			best = '\t'
		}
		return best
	}
	return ','
}

// splitHeader separates the header row from data rows, skipping leading
// banner rows (report title, statement date). Headerless exports get
// synthetic "Column N" names so the mapping stays index-based.
func splitHeader(records [][]string) ([]string, [][]string) {
	limit := len(records)
	if limit > 5 {
		limit = 5
	}
	for k := 0; k < limit; k++ {
		if !looksLikeHeader(records[k]) {
			continue
		}
		columns := make([]string, len(records[k]))
		for i, cell := range records[k] {
			columns[i] = strings.TrimSpace(cell)
		}
		return columns, records[k+1:]
	}

	width := 0
	for _, record := range records {
		if len(record) > width {
			width = len(record)
		}
	}
	columns := make([]string, width)
	for i := range columns {
		columns[i] = fmt.Sprintf("Column %d", i+1)
	}
	return columns, records
}

func padCells(record []string, width int) []string {
	cells := make([]string, width)
	for i := 0; i < width; i++ {
		if i < len(record) {
			cells[i] = strings.TrimSpace(record[i])
		}
	}
	return cells
}

// suggestDate looks for a statement date in banner rows, i.e. rows with a
// single parsable date and at most two non-empty cells.
func suggestDate(records [][]string) *time.Time {
	limit := len(records)
	if limit > 5 {
		limit = 5
	}
	for _, record := range records[:limit] {
		var nonEmpty int
		var found *time.Time
		for _, cell := range record {
			trimmed := strings.TrimSpace(cell)
			if trimmed == "" {
				continue
			}
			nonEmpty++
			if parsed, err := utils.ParseStatementDate(strings.TrimPrefix(trimmed, "Statement Date: ")); err == nil {
				date := parsed
				found = &date
			}
		}
		if found != nil && nonEmpty <= 2 {
			return found
		}
	}
	return nil
}
