// Package rows parses the row-oriented text format that StrataDB query
// responses carry. The format is line-based UTF-8: the first line holds the
// tab-separated column names, every following line holds the tab-separated
// field values of one row.
//
// The parser produces a Result that supports column lookup by name and typed
// field access:
//
//	result, _ := rows.Parse(text)
//	result.Each(func(row rows.Row) bool {
//		name, _ := row.Get("name")
//		age, _ := row.Int("age")
//		...
//		return true
//	})
package rows
