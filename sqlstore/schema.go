package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/couchbase/priority-store/sqlite"
)

// schemaVersion is recorded in the databases 'user_version' pragma.
const schemaVersion = 1

const createItemsTable = `
create table if not exists items (
	priority integer not null,
	seqno    integer not null,
	payload  blob not null,
	primary key (priority, seqno)
);`

// migrate creates the schema in a new database, or validates the schema of an existing one.
func migrate(db *sql.DB) error {
	var version int

	err := sqlite.GetPragma(db, sqlite.PragmaUserVersion, &version)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	switch {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return fmt.Errorf("%w: database has version %d, expected at most %d", ErrUnsupportedSchema, version,
			schemaVersion)
	}

	return sqlite.WithTransaction(db, func(tx *sql.Tx) error {
		_, err := sqlite.ExecuteQuery(tx, sqlite.Query{Query: createItemsTable})
		if err != nil {
			return fmt.Errorf("failed to create items table: %w", err)
		}

		err = sqlite.SetPragma(tx, sqlite.PragmaUserVersion, schemaVersion)
		if err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}

		return nil
	})
}
