package servicestest

import (
	"context"
	"testing"

	"ledger/src/adapters"
	"ledger/src/schemas"
	"ledger/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatement = `Date,Description,Amount
2024-03-01,Coffee Shop,-4.50
2024-03-02,Salary,2500.00
2024-03-05,Groceries,-82.10
`

const holdingsStatement = `Ticker,Shares,Price,Value
VTI,10,250.00,2500.00
BND,20,75.50,1510.00
`

func newImportService(ledger *FakeLedger) *services.ImportService {
	return services.NewImportService(
		adapters.NewRegistry(),
		services.NewMappingService(),
		ledger,
		ledger.CategoryRepo(),
	)
}

func previewSingle(t *testing.T, service *services.ImportService, content, filename, institution, portfolioID string) *schemas.PreviewDraft {
	t.Helper()
	response, err := service.Preview(context.Background(), []adapters.Payload{
		{Filename: filename, Institution: institution, Content: []byte(content)},
	}, portfolioID)
	require.NoError(t, err)
	require.Len(t, response.Drafts, 1)
	require.Empty(t, response.FileWarnings)
	return response.Drafts[0]
}

func TestPreviewBuildsEditableDraft(t *testing.T) {
	ledger := NewFakeLedger()
	service := newImportService(ledger)

	draft := previewSingle(t, service, sampleStatement, "statement.csv", "", "p1")

	assert.Equal(t, []string{"Date", "Description", "Amount"}, draft.Columns)
	assert.Equal(t, schemas.RoleDate, draft.Mapping[0])
	assert.Equal(t, schemas.RoleDescription, draft.Mapping[1])
	assert.Equal(t, schemas.RoleAmount, draft.Mapping[2])
	require.Len(t, draft.Rows, 3)
	for _, row := range draft.Rows {
		assert.True(t, row.Include)
	}
	assert.Empty(t, draft.Warnings)
	assert.NotEmpty(t, draft.Fingerprint)
	assert.Nil(t, draft.DuplicateOf)

	// Preview never writes.
	assert.Empty(t, ledger.Imports)
	assert.Empty(t, ledger.Transactions)
}

func TestPreviewFlagsUnparseableRows(t *testing.T) {
	ledger := NewFakeLedger()
	service := newImportService(ledger)

	statement := "Date,Description,Amount\n2024-03-01,Coffee,-4.50\nnot-a-date,Mystery,oops\n"
	draft := previewSingle(t, service, statement, "statement.csv", "", "p1")

	require.Len(t, draft.Rows, 2)
	assert.True(t, draft.Rows[0].Include)
	assert.False(t, draft.Rows[1].Include)
	require.Len(t, draft.Warnings, 1)
	assert.Equal(t, 1, draft.Warnings[0].Row)
}

func TestPreviewBatchIsolatesFailures(t *testing.T) {
	ledger := NewFakeLedger()
	service := newImportService(ledger)

	response, err := service.Preview(context.Background(), []adapters.Payload{
		{Filename: "good.csv", Content: []byte(sampleStatement)},
		{Filename: "bad.pdf", Content: []byte("%PDF-1.4")},
	}, "p1")
	require.NoError(t, err)

	require.Len(t, response.Drafts, 1)
	require.Len(t, response.FileWarnings, 1)
	assert.Equal(t, "bad.pdf", response.FileWarnings[0].Filename)
	assert.Equal(t, schemas.WarnExtractionFailed, response.FileWarnings[0].Code)
}

func TestCommitPersistsAtomically(t *testing.T) {
	ctx := context.Background()
	ledger := NewFakeLedger()
	service := newImportService(ledger)

	draft := previewSingle(t, service, sampleStatement, "statement.csv", "", "p1")
	for i := range draft.Rows {
		draft.Rows[i].Category = "Everyday"
	}

	record, err := service.Commit(ctx, draft, "p1")
	require.NoError(t, err)

	assert.Equal(t, 3, record.RowCount)
	assert.InDelta(t, -4.50+2500.00-82.10, record.TotalAmount, 0.001)

	require.Len(t, ledger.Transactions, 3)
	for _, transaction := range ledger.Transactions {
		assert.Equal(t, record.ID, transaction.ImportID)
		assert.Equal(t, "Everyday", transaction.Category)
	}
	require.Len(t, ledger.Categories, 1)
	assert.Equal(t, "Everyday", ledger.Categories[0].Label)

	stored, err := ledger.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.Fingerprint, stored.ContentFingerprint)
}

func TestCommitPersistsOnlyCleanRowsOfMixedBatch(t *testing.T) {
	ctx := context.Background()
	ledger := NewFakeLedger()
	service := newImportService(ledger)

	// 10 rows, 3 with unparseable dates.
	statement := "Date,Description,Amount\n" +
		"2024-03-01,Coffee,-4.50\n" +
		"not-a-date,Mystery,-1.00\n" +
		"2024-03-02,Salary,2500.00\n" +
		"2024-03-03,Groceries,-82.10\n" +
		"??,Mystery,-2.00\n" +
		"2024-03-04,Gas,-40.00\n" +
		"2024-03-05,Rent,-900.00\n" +
		"someday,Mystery,-3.00\n" +
		"2024-03-06,Books,-25.00\n" +
		"2024-03-07,Refund,12.00\n"

	draft := previewSingle(t, service, statement, "statement.csv", "", "p1")
	require.Len(t, draft.Rows, 10)
	require.Len(t, draft.Warnings, 3)

	record, err := service.Commit(ctx, draft, "p1")
	require.NoError(t, err)

	assert.Equal(t, 7, record.RowCount)
	require.Len(t, ledger.Transactions, 7)
	for _, transaction := range ledger.Transactions {
		assert.Equal(t, record.ID, transaction.ImportID)
	}
}

func TestCommitLeavesNothingBehindOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	ledger := NewFakeLedger()
	ledger.FailCreateWithRows = true
	service := newImportService(ledger)

	draft := previewSingle(t, service, sampleStatement, "statement.csv", "", "p1")

	_, err := service.Commit(ctx, draft, "p1")

	var writeErr *services.LedgerWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Empty(t, ledger.Imports)
	assert.Empty(t, ledger.Transactions)
	assert.Empty(t, ledger.Categories)
}

func TestCommitRejectsIncompleteMapping(t *testing.T) {
	ledger := NewFakeLedger()
	service := newImportService(ledger)

	draft := previewSingle(t, service, sampleStatement, "statement.csv", "", "p1")
	draft.Mapping[0] = schemas.RoleIgnore

	_, err := service.Commit(context.Background(), draft, "p1")

	var mappingErr *services.IncompleteMappingError
	require.ErrorAs(t, err, &mappingErr)
	assert.Contains(t, mappingErr.Missing, schemas.RoleDate)
	assert.Empty(t, ledger.Imports)
}

func TestCommitRejectsDegenerateBatch(t *testing.T) {
	ledger := NewFakeLedger()
	service := newImportService(ledger)

	statement := "Date,Description,Amount\nnope,junk,---\nalso bad,junk,n/a\n"
	draft := previewSingle(t, service, statement, "statement.csv", "", "p1")

	_, err := service.Commit(context.Background(), draft, "p1")

	var noRows *services.NoValidRowsError
	require.ErrorAs(t, err, &noRows)
	assert.Empty(t, ledger.Imports)
}

func TestCommitRejectsAllRowsExcluded(t *testing.T) {
	ledger := NewFakeLedger()
	service := newImportService(ledger)

	draft := previewSingle(t, service, sampleStatement, "statement.csv", "", "p1")
	for i := range draft.Rows {
		draft.Rows[i].Include = false
	}

	_, err := service.Commit(context.Background(), draft, "p1")

	var noRows *services.NoValidRowsError
	require.ErrorAs(t, err, &noRows)
}

func TestDuplicatePreviewIsInformationalNotBlocking(t *testing.T) {
	ctx := context.Background()
	ledger := NewFakeLedger()
	service := newImportService(ledger)

	first := previewSingle(t, service, sampleStatement, "statement.csv", "", "p1")
	record, err := service.Commit(ctx, first, "p1")
	require.NoError(t, err)

	second := previewSingle(t, service, sampleStatement, "statement.csv", "", "p1")
	require.NotNil(t, second.DuplicateOf)
	assert.Equal(t, record.ID, *second.DuplicateOf)
	require.Len(t, second.Warnings, 1)
	assert.Equal(t, schemas.WarnDuplicateContent, second.Warnings[0].Code)
	assert.Equal(t, -1, second.Warnings[0].Row)

	// Same bytes, different portfolio: no duplicate flagged.
	other := previewSingle(t, service, sampleStatement, "statement.csv", "", "p2")
	assert.Nil(t, other.DuplicateOf)
}

func TestCommitHoldingsSnapshot(t *testing.T) {
	ctx := context.Background()
	ledger := NewFakeLedger()
	service := newImportService(ledger)

	draft := previewSingle(t, service, holdingsStatement, "positions.csv", "fidelity", "p1")
	require.Equal(t, schemas.KindHoldings, draft.Kind)

	record, err := service.Commit(ctx, draft, "p1")
	require.NoError(t, err)

	assert.Equal(t, 2, record.RowCount)
	assert.InDelta(t, 4010.00, record.TotalValue, 0.001)
	require.Len(t, ledger.Holdings, 2)
	assert.Equal(t, "VTI", ledger.Holdings[0].Holder)
	require.NotNil(t, ledger.Holdings[0].Shares)
	assert.InDelta(t, 10, *ledger.Holdings[0].Shares, 0.001)
	assert.Equal(t, "Retirement Plans", ledger.Holdings[0].Category)
}

func TestDeleteImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	ledger := NewFakeLedger()
	service := newImportService(ledger)

	draft := previewSingle(t, service, sampleStatement, "statement.csv", "", "p1")
	record, err := service.Commit(ctx, draft, "p1")
	require.NoError(t, err)
	require.NotEmpty(t, ledger.Transactions)

	require.NoError(t, service.Delete(ctx, record.ID))
	assert.Empty(t, ledger.Imports)
	assert.Empty(t, ledger.Transactions)

	err = service.Delete(ctx, record.ID)
	assert.Error(t, err)
}
