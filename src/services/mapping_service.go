package services

import (
	"ledger/src/schemas"
	"sort"
)

type MappingServiceI interface {
	Resolve(detected, override schemas.ColumnMapping, columnCount int) schemas.ColumnMapping
	Validate(mapping schemas.ColumnMapping, kind schemas.ExtractionKind) error
}

// MappingService turns the adapter's best-effort role guess plus an optional
// caller override into a validated, total role assignment per column.
type MappingService struct{}

func NewMappingService() *MappingService {
	return &MappingService{}
}

// Resolve always succeeds and produces a total mapping: override wins where
// present, the detected guess fills the rest, remaining columns are ignored.
// Uniqueness is enforced throughout. Detected roles never steal a role an
// earlier column already claimed; override assignments do steal, clearing
// the previous holder to ignore (last write wins, ascending column order).
func (s *MappingService) Resolve(detected, override schemas.ColumnMapping, columnCount int) schemas.ColumnMapping {
	result := make(schemas.ColumnMapping, columnCount)
	for i := 0; i < columnCount; i++ {
		result[i] = schemas.RoleIgnore
	}

	for _, i := range sortedColumns(detected) {
		if i < 0 || i >= columnCount {
			continue
		}
		role := detected[i]
		if role == schemas.RoleIgnore || roleHolder(result, role) >= 0 {
			continue
		}
		result[i] = role
	}

	for _, i := range sortedColumns(override) {
		if i < 0 || i >= columnCount {
			continue
		}
		role := override[i]
		if role != schemas.RoleIgnore {
			if holder := roleHolder(result, role); holder >= 0 {
				result[holder] = schemas.RoleIgnore
			}
		}
		result[i] = role
	}

	return result
}

// Validate reports the roles a commit requires but the mapping lacks.
// Transactions need a date and either an amount or both debit and credit.
// Holdings need a holder and a value; their snapshot date may come from the
// extraction's suggested date instead of a column.
func (s *MappingService) Validate(mapping schemas.ColumnMapping, kind schemas.ExtractionKind) error {
	assigned := map[schemas.Role]bool{}
	for _, role := range mapping {
		assigned[role] = true
	}

	var missing []schemas.Role
	if kind == schemas.KindHoldings {
		if !assigned[schemas.RoleHolder] {
			missing = append(missing, schemas.RoleHolder)
		}
		if !assigned[schemas.RoleValue] {
			missing = append(missing, schemas.RoleValue)
		}
	} else {
		if !assigned[schemas.RoleDate] {
			missing = append(missing, schemas.RoleDate)
		}
		if !assigned[schemas.RoleAmount] && !(assigned[schemas.RoleDebit] && assigned[schemas.RoleCredit]) {
			missing = append(missing, schemas.RoleAmount)
		}
	}

	if len(missing) > 0 {
		return &IncompleteMappingError{Missing: missing}
	}
	return nil
}

func sortedColumns(mapping schemas.ColumnMapping) []int {
	columns := make([]int, 0, len(mapping))
	for i := range mapping {
		columns = append(columns, i)
	}
	sort.Ints(columns)
	return columns
}

func roleHolder(mapping schemas.ColumnMapping, role schemas.Role) int {
	for i, r := range mapping {
		if r == role {
			return i
		}
	}
	return -1
}
