// Package table holds an uploaded survey sheet as a string-typed data frame
// and exposes the column and row operations the report needs.
package table

import (
	"errors"
	"fmt"

	"incosedss/adapters/excel"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// nanToken is the cell value gota marks as not available.
const nanToken = "NaN"

var (
	ErrColumnNotFound = errors.New("column not found")
	ErrNoRows         = errors.New("no rows match")
)

// Table is a data frame with display column names kept apart from the frame's
// positional keys, so repeated or reshaped names never collide inside gota.
type Table struct {
	frame dataframe.DataFrame
	names []string
	keys  []string
}

// FromExcel builds a table from parsed sheet data
func FromExcel(data *excel.ExcelData, cfg excel.ReaderConfig) (*Table, error) {
	return FromRecords(data.Headers, data.Rows, cfg.MissingTokens)
}

// FromRecords builds a table from a header and positional rows. Cells equal to
// one of missingTokens are stored as not available.
func FromRecords(headers []string, rows [][]string, missingTokens []string) (*Table, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("table has no columns")
	}

	missing := make(map[string]struct{}, len(missingTokens))
	for _, token := range missingTokens {
		missing[token] = struct{}{}
	}

	keys := make([]string, len(headers))
	for i := range headers {
		keys[i] = fmt.Sprintf("c%d", i)
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, keys)
	for r, row := range rows {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", r+1, len(row), len(headers))
		}
		record := make([]string, len(row))
		for i, cell := range row {
			if _, ok := missing[cell]; ok {
				cell = nanToken
			}
			record[i] = cell
		}
		records = append(records, record)
	}

	frame := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{nanToken}),
	)
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to build data frame: %w", frame.Err)
	}

	names := make([]string, len(headers))
	copy(names, headers)
	return &Table{frame: frame, names: names, keys: keys}, nil
}

// Len returns the number of rows in the table
func (t *Table) Len() int {
	return t.frame.Nrow()
}

// Columns returns the display column names in sheet order
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Normalize returns a table sharing the same rows with normalized column names
func (t *Table) Normalize() *Table {
	return &Table{frame: t.frame, names: NormalizeColumnNames(t.names), keys: t.keys}
}

// Series returns the string-coerced values of the first column named name
func (t *Table) Series(name string) (*Series, error) {
	key, ok := t.key(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return newSeries(name, t.frame.Col(key)), nil
}

// Where returns the rows whose non-missing value in column equals value exactly.
// ErrNoRows is returned instead of an empty table.
func (t *Table) Where(column, value string) (*Table, error) {
	s, err := t.Series(column)
	if err != nil {
		return nil, err
	}

	var indexes []int
	for i := 0; i < s.Len(); i++ {
		if !s.IsMissing(i) && s.Value(i) == value {
			indexes = append(indexes, i)
		}
	}
	if len(indexes) == 0 {
		return nil, fmt.Errorf("%w: %s = %q", ErrNoRows, column, value)
	}

	frame := t.frame.Subset(indexes)
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to subset rows: %w", frame.Err)
	}
	return &Table{frame: frame, names: t.names, keys: t.keys}, nil
}

// Records returns the header followed by every row, with missing cells blank
func (t *Table) Records() [][]string {
	records := make([][]string, 0, t.Len()+1)
	records = append(records, t.Columns())

	columns := make([]*Series, len(t.keys))
	for i, key := range t.keys {
		columns[i] = newSeries(t.names[i], t.frame.Col(key))
	}
	for r := 0; r < t.Len(); r++ {
		row := make([]string, len(columns))
		for c, s := range columns {
			if !s.IsMissing(r) {
				row[c] = s.Value(r)
			}
		}
		records = append(records, row)
	}
	return records
}

func (t *Table) key(name string) (string, bool) {
	for i, n := range t.names {
		if n == name {
			return t.keys[i], true
		}
	}
	return "", false
}
