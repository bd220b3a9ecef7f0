package rows

import (
	"fmt"
	"strconv"
	"strings"
)

// Result is a parsed query result: an ordered list of rows sharing one set
// of columns.
type Result struct {
	columns []string
	index   map[string]int
	records [][]string
}

// Row is a view into one row of a Result.
type Row struct {
	result *Result
	fields []string
}

// --------------------------------------------------------------------------
// Parsing
// --------------------------------------------------------------------------

// Parse parses the row-oriented query result text. An empty text yields an
// empty result with no columns. Every row must have exactly as many fields
// as the header declares.
func Parse(text string) (*Result, error) {
	r := &Result{index: make(map[string]int)}

	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return r, nil
	}

	lines := strings.Split(text, "\n")
	r.columns = strings.Split(lines[0], "\t")
	for i, col := range r.columns {
		if _, exists := r.index[col]; exists {
			return nil, fmt.Errorf("duplicate column %q", col)
		}
		r.index[col] = i
	}

	for n, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		if len(fields) != len(r.columns) {
			return nil, fmt.Errorf("row %d has %d fields, header declares %d columns", n, len(fields), len(r.columns))
		}
		r.records = append(r.records, fields)
	}

	return r, nil
}

// --------------------------------------------------------------------------
// Result Access
// --------------------------------------------------------------------------

// Columns returns the column names in declaration order.
func (r *Result) Columns() []string {
	return r.columns
}

// Len returns the number of rows.
func (r *Result) Len() int {
	return len(r.records)
}

// Row returns the i-th row. It panics if i is out of range, mirroring slice
// indexing.
func (r *Result) Row(i int) Row {
	return Row{result: r, fields: r.records[i]}
}

// Each calls fn for every row in order until fn returns false.
func (r *Result) Each(fn func(Row) bool) {
	for _, fields := range r.records {
		if !fn(Row{result: r, fields: fields}) {
			return
		}
	}
}

// --------------------------------------------------------------------------
// Row Access
// --------------------------------------------------------------------------

// Get returns the field of the named column and whether the column exists.
func (row Row) Get(col string) (string, bool) {
	i, ok := row.result.index[col]
	if !ok {
		return "", false
	}
	return row.fields[i], true
}

// Field returns the i-th field of the row.
func (row Row) Field(i int) string {
	return row.fields[i]
}

// String returns the field of the named column, or the empty string if the
// column does not exist.
func (row Row) String(col string) string {
	v, _ := row.Get(col)
	return v
}

// Int parses the named column as a signed 64-bit integer.
func (row Row) Int(col string) (int64, error) {
	v, ok := row.Get(col)
	if !ok {
		return 0, fmt.Errorf("no column %q", col)
	}
	return strconv.ParseInt(v, 10, 64)
}

// Float parses the named column as a 64-bit float.
func (row Row) Float(col string) (float64, error) {
	v, ok := row.Get(col)
	if !ok {
		return 0, fmt.Errorf("no column %q", col)
	}
	return strconv.ParseFloat(v, 64)
}

// Bool parses the named column as a boolean.
func (row Row) Bool(col string) (bool, error) {
	v, ok := row.Get(col)
	if !ok {
		return false, fmt.Errorf("no column %q", col)
	}
	return strconv.ParseBool(v)
}
