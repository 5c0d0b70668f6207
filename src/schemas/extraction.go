package schemas

import (
	"time"
)

// Role is the semantic meaning assigned to a raw statement column.
type Role string

const (
	RoleIgnore      Role = "ignore"
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleAmount      Role = "amount"
	RoleDebit       Role = "debit"
	RoleCredit      Role = "credit"
	RoleBalance     Role = "balance"
	RoleCurrency    Role = "currency"

	// Holdings-kind extractions use these in addition to the ones above.
	RoleHolder   Role = "holder"
	RoleShares   Role = "shares"
	RolePrice    Role = "price"
	RoleValue    Role = "value"
	RoleInvested Role = "invested"
)

// ExtractionKind tells the pipeline whether rows become transactions or
// holding snapshots.
type ExtractionKind string

const (
	KindTransactions ExtractionKind = "transactions"
	KindHoldings     ExtractionKind = "holdings"
)

// ColumnMapping is a total assignment of a role to every column index. At
// most one column holds any non-ignore role.
type ColumnMapping map[int]Role

// RawRow is one extracted tabular row with its default inclusion flag.
type RawRow struct {
	Cells            []string `json:"cells"`
	IncludeByDefault bool     `json:"includeByDefault"`
}

// RawExtraction is the adapter output the pipeline consumes. Immutable once
// produced; its lifetime ends when a draft is built from it.
type RawExtraction struct {
	Columns            []string       `json:"columns"`
	Rows               []RawRow       `json:"rows"`
	DetectedMapping    ColumnMapping  `json:"detectedMapping"`
	ContentFingerprint string         `json:"contentFingerprint"`
	SuggestedDate      *time.Time     `json:"suggestedDate,omitempty"`
	Kind               ExtractionKind `json:"kind"`
	Institution        string         `json:"institution"`
	// DefaultCategory is the institution-specific category assigned to rows
	// that the classifier leaves untouched, e.g. "Retirement Plans".
	DefaultCategory string `json:"defaultCategory,omitempty"`
}
