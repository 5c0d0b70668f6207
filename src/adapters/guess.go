package adapters

import (
	"ledger/src/schemas"
	"ledger/src/utils"
	"strings"
)

// headerRoleHints maps header-name fragments to column roles. Ordering
// matters: the first matching hint wins, so more specific fragments come
// first.
var transactionHints = []struct {
	fragment string
	role     schemas.Role
}{
	{"date", schemas.RoleDate},
	{"fecha", schemas.RoleDate},
	{"description", schemas.RoleDescription},
	{"narrative", schemas.RoleDescription},
	{"details", schemas.RoleDescription},
	{"memo", schemas.RoleDescription},
	{"payee", schemas.RoleDescription},
	{"concepto", schemas.RoleDescription},
	{"debit", schemas.RoleDebit},
	{"withdrawal", schemas.RoleDebit},
	{"money out", schemas.RoleDebit},
	{"credit", schemas.RoleCredit},
	{"deposit", schemas.RoleCredit},
	{"money in", schemas.RoleCredit},
	{"balance", schemas.RoleBalance},
	{"saldo", schemas.RoleBalance},
	{"currency", schemas.RoleCurrency},
	{"ccy", schemas.RoleCurrency},
	{"moneda", schemas.RoleCurrency},
	{"amount", schemas.RoleAmount},
	{"importe", schemas.RoleAmount},
}

var holdingHints = []struct {
	fragment string
	role     schemas.Role
}{
	{"ticker", schemas.RoleHolder},
	{"symbol", schemas.RoleHolder},
	{"fund", schemas.RoleHolder},
	{"holding", schemas.RoleHolder},
	{"holder", schemas.RoleHolder},
	{"name", schemas.RoleHolder},
	{"shares", schemas.RoleShares},
	{"units", schemas.RoleShares},
	{"quantity", schemas.RoleShares},
	{"price", schemas.RolePrice},
	{"cost basis", schemas.RoleInvested},
	{"invested", schemas.RoleInvested},
	{"cost", schemas.RoleInvested},
	{"market value", schemas.RoleValue},
	{"current value", schemas.RoleValue},
	{"value", schemas.RoleValue},
	{"date", schemas.RoleDate},
	{"category", schemas.RoleIgnore},
}

// guessMapping derives a best-effort partial role mapping from column
// headers. Roles already claimed by an earlier column are not assigned
// twice; the mapping resolver owns uniqueness for overrides.
func guessMapping(columns []string, kind schemas.ExtractionKind) schemas.ColumnMapping {
	hints := transactionHints
	if kind == schemas.KindHoldings {
		hints = holdingHints
	}

	mapping := schemas.ColumnMapping{}
	claimed := map[schemas.Role]bool{}
	for i, column := range columns {
		header := strings.ToLower(strings.TrimSpace(column))
		if header == "" {
			continue
		}
		for _, hint := range hints {
			if !strings.Contains(header, hint.fragment) {
				continue
			}
			if hint.role != schemas.RoleIgnore && claimed[hint.role] {
				break
			}
			mapping[i] = hint.role
			claimed[hint.role] = true
			break
		}
	}
	return mapping
}

// guessKind inspects headers for holdings-shaped columns (ticker/shares/
// value) and upgrades the extraction kind accordingly.
func guessKind(columns []string, fallback schemas.ExtractionKind) schemas.ExtractionKind {
	if fallback == schemas.KindHoldings {
		return fallback
	}
	var holdingish int
	for _, column := range columns {
		header := strings.ToLower(column)
		for _, fragment := range []string{"ticker", "symbol", "shares", "units", "market value", "cost basis"} {
			if strings.Contains(header, fragment) {
				holdingish++
				break
			}
		}
	}
	if holdingish >= 2 {
		return schemas.KindHoldings
	}
	return fallback
}

// looksLikeHeader reports whether a row reads as column titles rather than
// data: at least two titles and no cell parsing as an amount or a date.
// Single-cell banner rows ("Q1 Retirement Statement") are not headers.
func looksLikeHeader(cells []string) bool {
	var nonEmpty int
	for _, cell := range cells {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if _, err := utils.ParseAmount(trimmed); err == nil {
			return false
		}
		if _, err := utils.ParseStatementDate(trimmed); err == nil {
			return false
		}
	}
	return nonEmpty >= 2
}

func isEmptyRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
