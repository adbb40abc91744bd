package models

// TableColumnInfo describes one typed column of a table.
type TableColumnInfo struct {
	// ColumnIndex is the zero-based column offset within the table.
	ColumnIndex int `json:"columnIndex"`
	// ColumnName is the header text of the column.
	ColumnName string `json:"columnName"`
	// ColumnType is the provider's column type (e.g., TEXT, DOUBLE, DATE).
	ColumnType string `json:"columnType"`
}

// TableInfo represents a structured range with typed columns.
type TableInfo struct {
	// Name is the table name.
	Name string `json:"name"`
	// Range is the A1 address covered by the table, header row included.
	Range string `json:"range"`
	// Columns lists the table columns in order.
	Columns []TableColumnInfo `json:"columns"`
}
