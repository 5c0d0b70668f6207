package services

import (
	"strings"
	"time"

	"ledger/src/models"
	"ledger/src/schemas"
	"ledger/src/utils"

	"github.com/google/uuid"
)

// cellFor returns the cell under the column holding role, if any column does.
func cellFor(mapping schemas.ColumnMapping, cells []string, role schemas.Role) (string, bool) {
	for i, r := range mapping {
		if r == role && i >= 0 && i < len(cells) {
			return strings.TrimSpace(cells[i]), true
		}
	}
	return "", false
}

type parsedTransaction struct {
	date        time.Time
	amount      float64
	description string
	currency    string
}

// parseTransactionCells checks and parses one row under the given mapping.
// Checks only apply to roles the mapping actually assigns; mapping
// completeness itself is enforced separately at commit.
func parseTransactionCells(mapping schemas.ColumnMapping, cells []string) (parsedTransaction, string, string) {
	var parsed parsedTransaction

	if isBlankRow(cells) {
		return parsed, schemas.WarnEmptyRow, "row has no content"
	}

	if raw, ok := cellFor(mapping, cells, schemas.RoleDate); ok {
		date, err := utils.ParseStatementDate(raw)
		if err != nil {
			return parsed, schemas.WarnUnparseableDate, err.Error()
		}
		parsed.date = date
	}

	if raw, ok := cellFor(mapping, cells, schemas.RoleAmount); ok {
		amount, err := utils.ParseAmount(raw)
		if err != nil {
			return parsed, schemas.WarnUnparseableAmount, err.Error()
		}
		parsed.amount = amount
	} else {
		debitRaw, debitOK := cellFor(mapping, cells, schemas.RoleDebit)
		creditRaw, creditOK := cellFor(mapping, cells, schemas.RoleCredit)
		if debitOK || creditOK {
			if debitRaw == "" && creditRaw == "" {
				return parsed, schemas.WarnUnparseableAmount, "row has neither a debit nor a credit amount"
			}
			if debitRaw != "" {
				debit, err := utils.ParseAmount(debitRaw)
				if err != nil {
					return parsed, schemas.WarnUnparseableAmount, err.Error()
				}
				parsed.amount -= debit
			}
			if creditRaw != "" {
				credit, err := utils.ParseAmount(creditRaw)
				if err != nil {
					return parsed, schemas.WarnUnparseableAmount, err.Error()
				}
				parsed.amount += credit
			}
		}
	}

	parsed.description, _ = cellFor(mapping, cells, schemas.RoleDescription)
	parsed.currency, _ = cellFor(mapping, cells, schemas.RoleCurrency)
	return parsed, "", ""
}

type parsedHolding struct {
	holder   string
	value    float64
	shares   *float64
	price    *float64
	invested *float64
	date     *time.Time
}

func parseHoldingCells(mapping schemas.ColumnMapping, cells []string) (parsedHolding, string, string) {
	var parsed parsedHolding

	if isBlankRow(cells) {
		return parsed, schemas.WarnEmptyRow, "row has no content"
	}

	if holder, ok := cellFor(mapping, cells, schemas.RoleHolder); ok {
		if holder == "" {
			return parsed, schemas.WarnMissingHolder, "row has no holder or ticker"
		}
		parsed.holder = holder
	}

	if raw, ok := cellFor(mapping, cells, schemas.RoleValue); ok {
		value, err := utils.ParseAmount(raw)
		if err != nil {
			return parsed, schemas.WarnUnparseableAmount, err.Error()
		}
		parsed.value = value
	}

	// Optional numeric columns degrade to absent rather than warning.
	parsed.shares = optionalAmount(mapping, cells, schemas.RoleShares)
	parsed.price = optionalAmount(mapping, cells, schemas.RolePrice)
	parsed.invested = optionalAmount(mapping, cells, schemas.RoleInvested)

	if raw, ok := cellFor(mapping, cells, schemas.RoleDate); ok && raw != "" {
		if date, err := utils.ParseStatementDate(raw); err == nil {
			parsed.date = &date
		}
	}
	return parsed, "", ""
}

// rowProblem reports the first per-row diagnostic for a draft row, or empty
// strings when the row is usable.
func rowProblem(mapping schemas.ColumnMapping, cells []string, kind schemas.ExtractionKind) (string, string) {
	if kind == schemas.KindHoldings {
		_, code, message := parseHoldingCells(mapping, cells)
		return code, message
	}
	_, code, message := parseTransactionCells(mapping, cells)
	return code, message
}

func buildTransaction(draft *schemas.PreviewDraft, row schemas.DraftRow, parsed parsedTransaction, portfolioID string, importID uuid.UUID) models.Transaction {
	return models.Transaction{
		PortfolioID: portfolioID,
		ImportID:    importID,
		TxDate:      parsed.date,
		Description: parsed.description,
		Amount:      parsed.amount,
		Currency:    parsed.currency,
		Institution: draft.SourceInstitution,
		Category:    row.Category,
		Subcategory: row.Subcategory,
	}
}

func buildHolding(draft *schemas.PreviewDraft, row schemas.DraftRow, parsed parsedHolding, portfolioID string, importID uuid.UUID) models.HoldingEntry {
	snapshot := time.Now().UTC()
	if parsed.date != nil {
		snapshot = *parsed.date
	} else if draft.SuggestedDate != nil {
		snapshot = *draft.SuggestedDate
	}
	return models.HoldingEntry{
		PortfolioID:  portfolioID,
		ImportID:     importID,
		Holder:       parsed.holder,
		Shares:       parsed.shares,
		Price:        parsed.price,
		CurrentValue: parsed.value,
		Invested:     parsed.invested,
		Category:     row.Category,
		SnapshotDate: snapshot,
	}
}

func optionalAmount(mapping schemas.ColumnMapping, cells []string, role schemas.Role) *float64 {
	raw, ok := cellFor(mapping, cells, role)
	if !ok || raw == "" {
		return nil
	}
	value, err := utils.ParseAmount(raw)
	if err != nil {
		return nil
	}
	return &value
}

func isBlankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
