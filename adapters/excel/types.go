package excel

// ExcelData represents one sheet as a header row plus positional data rows.
// Every row has exactly len(Headers) cells.
type ExcelData struct {
	Sheet   string     // Sheet the data was read from, empty for CSV
	Headers []string   // Column headers, repaired to be non-empty and unique
	Rows    [][]string // Data rows
}

// ColumnCount returns the number of columns
func (d *ExcelData) ColumnCount() int {
	return len(d.Headers)
}

// RowCount returns the number of data rows
func (d *ExcelData) RowCount() int {
	return len(d.Rows)
}

