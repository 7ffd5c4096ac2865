package sqlite

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// ErrQueryReturnedNoRows is returned when the provided query returned no rows when executed.
var ErrQueryReturnedNoRows = errors.New("query returned no rows")

// ErrDBLocked is returned when attempting to query/execute a query against an SQLite database/transaction which is
// already locked by another thread/process.
var ErrDBLocked = errors.New("SQLite database file is locked by another thread/process")

// handleError adds more context to an error where necessary. If the provided error is of an unknown/unhandled type, it
// will be returned as is.
func handleError(err error) error {
	var sqliteError sqlite3.Error
	if errors.As(err, &sqliteError) && (sqliteError.Code == sqlite3.ErrBusy || sqliteError.Code == sqlite3.ErrLocked) {
		return ErrDBLocked
	}

	return err
}
