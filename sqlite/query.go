package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
)

// Query encapsulates a query and its arguments and is used by all the SQLite utility functions in this package.
type Query struct {
	Query     string
	Arguments []any
}

// ScanCallback is a readability wrapper around the SQL 'Scan' function.
type ScanCallback func(dest ...any) error

// RowCallback is a readability callback which will be run for each row returned by an SQLite query.
type RowCallback func(scan ScanCallback) error

// ExecuteQuery executes the provided query against the SQLite database and return the number of rows affected.
func ExecuteQuery(db Executable, query Query) (int64, error) {
	res, err := db.Exec(query.Query, query.Arguments...)
	if err != nil {
		return 0, handleError(err)
	}

	return res.RowsAffected()
}

// QueryRow executes a query that is only expected to return a single row (or where we only care about the first
// returned row). It's the callers job to ensure the destination types are valid for the expected return value from the
// query.
func QueryRow(db Queryable, query Query, dest ...any) error {
	err := db.QueryRow(query.Query, query.Arguments...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrQueryReturnedNoRows
	}

	return handleError(err)
}

// QueryRows execute a query which is expected to return one or more results. The provided callback will be run for each
// row returned by the query.
func QueryRows(db Queryable, query Query, callback RowCallback) error {
	rows, err := db.Query(query.Query, query.Arguments...)
	if err != nil {
		return handleError(err)
	}
	defer rows.Close()

	var containedRows bool

	for rows.Next() {
		err = callback(rows.Scan)
		if err != nil {
			return err
		}

		containedRows = true
	}

	err = rows.Err()
	if err != nil {
		return handleError(err)
	}

	if !containedRows {
		return ErrQueryReturnedNoRows
	}

	return nil
}

// WithTransaction runs the given function inside a transaction, committing if it returns successfully and rolling back
// otherwise.
func WithTransaction(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", handleError(err))
	}

	err = fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", handleError(err))
	}

	return nil
}
