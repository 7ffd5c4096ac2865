package sqlite

import "database/sql"

// Queryable allows the query functions defined in this package to work against all the queryable types exposed by the
// 'sql' module for example, '*sql.DB' and '*sql.Tx'.
type Queryable interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Executable allows the execute functions defined in this package to work against all the executable types exposed by
// the 'sql' module for example, '*sql.DB' and '*sql.Tx'.
type Executable interface {
	Exec(query string, args ...any) (sql.Result, error)
}
