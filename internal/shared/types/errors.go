package types

import (
	"errors"
	"fmt"
)

var (
	ErrNoDataSource  = errors.New("no data source configured. Provide a SQLite database (--db) or a CSV directory (--csv-dir)")
	ErrUnknownReport = errors.New("unknown report name")
	ErrNoReportData  = errors.New("no report data to export")
)

// SchemaError reports a structural problem with an input table: a missing
// table or required column, or a value that cannot be read as the column's
// type. Schema errors are fatal; the run aborts before any report is produced.
type SchemaError struct {
	Table  string
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in table %q: %s", e.Table, e.Detail)
}
