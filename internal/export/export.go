// Package export renders tabular reports as CSV or PDF.
package export

// Table is one titled block of rows.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Report is an ordered set of tables under a title.
type Report struct {
	Title  string
	Tables []Table
}
