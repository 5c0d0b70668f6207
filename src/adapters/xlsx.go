package adapters

import (
	"bytes"
	"context"
	"ledger/src/schemas"
	"ledger/src/utils"
	"time"

	"github.com/xuri/excelize/v2"
)

// XLSXAdapter extracts rows from spreadsheet exports via excelize. Broker
// and retirement exports are usually holdings-shaped; bank exports stay
// transactions-shaped.
type XLSXAdapter struct{}

func NewXLSXAdapter() *XLSXAdapter {
	return &XLSXAdapter{}
}

func (a *XLSXAdapter) Extract(ctx context.Context, payload Payload) (*schemas.RawExtraction, error) {
	file, err := excelize.OpenReader(bytes.NewReader(payload.Content))
	if err != nil {
		return nil, &ExtractionError{Filename: payload.Filename, Reason: "unreadable spreadsheet", Err: err}
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ExtractionError{Filename: payload.Filename, Reason: "workbook has no sheets"}
	}

	records, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, &ExtractionError{Filename: payload.Filename, Reason: "failed to read sheet rows", Err: err}
	}

	// Leading banner rows (report title, statement date) come before the
	// actual header in most institution exports.
	var suggested *time.Time
	start := 0
	for start < len(records) && !looksLikeHeader(records[start]) {
		if date := bannerDate(records[start]); date != nil {
			suggested = date
		}
		start++
	}
	if start >= len(records) {
		return nil, &ExtractionError{Filename: payload.Filename, Reason: "no header row found"}
	}

	profile := profileFor(payload.Institution)

	columns := padCells(records[start], len(records[start]))
	kind := guessKind(columns, profile.Kind)

	rows := make([]schemas.RawRow, 0, len(records)-start-1)
	for _, record := range records[start+1:] {
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
		ContentFingerprint: utils.FingerprintBytes(payload.Content),
		SuggestedDate:      suggested,
		Kind:               kind,
		Institution:        payload.Institution,
		DefaultCategory:    profile.DefaultCategory,
	}, nil
}

// bannerDate extracts a date from a pre-header banner row, when present.
func bannerDate(record []string) *time.Time {
	var nonEmpty int
	var found *time.Time
	for _, cell := range record {
		if cell == "" {
			continue
		}
		nonEmpty++
		if parsed, err := utils.ParseStatementDate(cell); err == nil {
			date := parsed
			found = &date
		}
	}
	if found != nil && nonEmpty <= 2 {
		return found
	}
	return nil
}
