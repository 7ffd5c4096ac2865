// Package sqlite provides helpers for opening, and querying, SQLite databases using 'github.com/mattn/go-sqlite3'.
package sqlite

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// barrier ensures that a single goroutine performs initialization of the SQLite library.
//
// NOTE: Multiple stores may be opened concurrently, concurrent first calls to 'sql.Open' have been observed to cause a
// SIGSEGV whilst the SQLite library is being initialized.
var barrier = newInitBarrier()

// Open a new SQLite database on disk whilst ensuring that the first time this function is called the SQLite library is
// initialized by a single goroutine.
func Open(path string) (*sql.DB, error) {
	first := barrier.wait()

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		if first {
			barrier.failed()
		}

		return nil, err
	}

	// Another goroutine already initialized the library, there's nothing more to do.
	if !first {
		return db, nil
	}

	// 'sql.Open' is lazy, 'Ping' forces the first connection (and therefore library initialization) to happen now.
	err = db.Ping()
	if err != nil {
		db.Close()
		barrier.failed()

		return nil, err
	}

	barrier.success()

	return db, nil
}
