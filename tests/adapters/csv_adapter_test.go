package adapters_test

import (
	"context"
	"testing"

	"ledger/src/adapters"
	"ledger/src/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractCSV(t *testing.T, content, filename, institution string) *schemas.RawExtraction {
	t.Helper()
	registry := adapters.NewRegistry()
	adapter, err := registry.ForFile(filename)
	require.NoError(t, err)

	extraction, err := adapter.Extract(context.Background(), adapters.Payload{
		Filename:    filename,
		Institution: institution,
		Content:     []byte(content),
	})
	require.NoError(t, err)
	return extraction
}

func TestCSVExtractDetectsHeaderAndRoles(t *testing.T) {
	content := "Date,Description,Amount,Balance\n2024-03-01,Coffee,-4.50,995.50\n2024-03-02,Salary,2500.00,3495.50\n"
	extraction := extractCSV(t, content, "statement.csv", "chase")

	assert.Equal(t, []string{"Date", "Description", "Amount", "Balance"}, extraction.Columns)
	assert.Equal(t, schemas.KindTransactions, extraction.Kind)
	assert.Equal(t, schemas.RoleDate, extraction.DetectedMapping[0])
	assert.Equal(t, schemas.RoleDescription, extraction.DetectedMapping[1])
	assert.Equal(t, schemas.RoleAmount, extraction.DetectedMapping[2])
	assert.Equal(t, schemas.RoleBalance, extraction.DetectedMapping[3])
	require.Len(t, extraction.Rows, 2)
	assert.Equal(t, []string{"2024-03-01", "Coffee", "-4.50", "995.50"}, extraction.Rows[0].Cells)
	assert.True(t, extraction.Rows[0].IncludeByDefault)
}

func TestCSVExtractHeaderlessGetsSyntheticColumns(t *testing.T) {
	content := "2024-03-01,Coffee,-4.50\n2024-03-02,Salary,2500.00\n"
	extraction := extractCSV(t, content, "statement.csv", "")

	assert.Equal(t, []string{"Column 1", "Column 2", "Column 3"}, extraction.Columns)
	require.Len(t, extraction.Rows, 2)
	assert.Empty(t, extraction.DetectedMapping)
}

func TestCSVExtractSniffsDelimiters(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"semicolon", "Date;Description;Amount\n2024-03-01;Coffee;-4.50\n"},
		{"tab", "Date\tDescription\tAmount\n2024-03-01\tCoffee\t-4.50\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			extraction := extractCSV(t, tc.content, "statement.txt", "")
			assert.Equal(t, []string{"Date", "Description", "Amount"}, extraction.Columns)
			require.Len(t, extraction.Rows, 1)
			assert.Equal(t, "-4.50", extraction.Rows[0].Cells[2])
		})
	}
}

func TestCSVExtractFingerprintIgnoresLineEndings(t *testing.T) {
	unix := "Date,Amount\n2024-03-01,-4.50\n"
	windows := "Date,Amount\r\n2024-03-01,-4.50\r\n"
	trailing := "Date,Amount\n2024-03-01,-4.50\n\n\n"

	first := extractCSV(t, unix, "a.csv", "")
	second := extractCSV(t, windows, "b.csv", "")
	third := extractCSV(t, trailing, "c.csv", "")

	assert.Equal(t, first.ContentFingerprint, second.ContentFingerprint)
	assert.Equal(t, first.ContentFingerprint, third.ContentFingerprint)
}

func TestCSVExtractSuggestsStatementDate(t *testing.T) {
	content := "Statement Date: 2024-03-31\nTicker,Shares,Market Value\nVTI,10,2500.00\n"
	extraction := extractCSV(t, content, "positions.csv", "")

	require.NotNil(t, extraction.SuggestedDate)
	assert.Equal(t, "2024-03-31", extraction.SuggestedDate.Format("2006-01-02"))
}

func TestCSVExtractUpgradesKindFromHeaders(t *testing.T) {
	content := "Ticker,Shares,Market Value\nVTI,10,2500.00\n"
	extraction := extractCSV(t, content, "positions.csv", "")

	assert.Equal(t, schemas.KindHoldings, extraction.Kind)
	assert.Equal(t, schemas.RoleHolder, extraction.DetectedMapping[0])
	assert.Equal(t, schemas.RoleShares, extraction.DetectedMapping[1])
	assert.Equal(t, schemas.RoleValue, extraction.DetectedMapping[2])
}

func TestCSVExtractInstitutionProfile(t *testing.T) {
	content := "Fund,Units,Value\nTarget 2050,12.5,4300.00\n"
	extraction := extractCSV(t, content, "retirement.csv", "Fidelity")

	assert.Equal(t, schemas.KindHoldings, extraction.Kind)
	assert.Equal(t, "Retirement Plans", extraction.DefaultCategory)
	assert.Equal(t, "Fidelity", extraction.Institution)
}

func TestCSVExtractEmptyContentFails(t *testing.T) {
	registry := adapters.NewRegistry()
	adapter, err := registry.ForFile("empty.csv")
	require.NoError(t, err)

	_, err = adapter.Extract(context.Background(), adapters.Payload{Filename: "empty.csv", Content: []byte("\n\n")})

	var extractionErr *adapters.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}

func TestRegistryRejectsUnknownExtension(t *testing.T) {
	registry := adapters.NewRegistry()

	_, err := registry.ForFile("statement.pdf")

	var extractionErr *adapters.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}
