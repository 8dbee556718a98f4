package ports

import "datasuite/domain/table"

// TableReader loads a raw table from some tabular source (CSV, XLSX).
type TableReader interface {
	ReadTable() (table.RawTable, error)
}
