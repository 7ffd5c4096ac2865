package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "sqlite.db"))
	require.Nil(t, err)

	defer db.Close()

	query := Query{
		Query: `
		create table if not exists items (
			seqno integer not null primary key
		);`,
	}

	affected, err := ExecuteQuery(db, query)
	require.Nil(t, err)
	require.Zero(t, affected)

	query.Query = "select seqno from items where seqno = 128;"

	var value uint64
	err = QueryRow(db, query, &value)
	require.ErrorIs(t, err, ErrQueryReturnedNoRows)

	query.Query = "select seqno from items order by seqno;"

	var seqnos []uint64

	callback := func(scan ScanCallback) error {
		var seqno uint64
		err := scan(&seqno)
		seqnos = append(seqnos, seqno)

		return err
	}

	err = QueryRows(db, query, callback)
	require.ErrorIs(t, err, ErrQueryReturnedNoRows)

	for _, seqno := range []int{256, 128} {
		affected, err = ExecuteQuery(db, Query{Query: "insert into items (seqno) values (?);", Arguments: []any{seqno}})
		require.Nil(t, err)
		require.Equal(t, int64(1), affected)
	}

	err = QueryRow(db, Query{Query: "select seqno from items where seqno = 128;"}, &value)
	require.Nil(t, err)
	require.Equal(t, uint64(128), value)

	err = QueryRows(db, query, callback)
	require.Nil(t, err)
	require.Equal(t, []uint64{128, 256}, seqnos)
}

func TestQueryRowsCallbackError(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "sqlite.db"))
	require.Nil(t, err)

	defer db.Close()

	_, err = ExecuteQuery(db, Query{Query: "create table items (seqno integer not null primary key);"})
	require.Nil(t, err)

	_, err = ExecuteQuery(db, Query{Query: "insert into items (seqno) values (1), (2);"})
	require.Nil(t, err)

	var calls int

	err = QueryRows(db, Query{Query: "select seqno from items;"}, func(_ ScanCallback) error {
		calls++
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	require.Equal(t, 1, calls)
}

func TestWithTransaction(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "sqlite.db"))
	require.Nil(t, err)

	defer db.Close()

	_, err = ExecuteQuery(db, Query{Query: "create table items (seqno integer not null primary key);"})
	require.Nil(t, err)

	count := func() int {
		var n int
		require.Nil(t, QueryRow(db, Query{Query: "select count(*) from items;"}, &n))

		return n
	}

	err = WithTransaction(db, func(tx *sql.Tx) error {
		_, err := ExecuteQuery(tx, Query{Query: "insert into items (seqno) values (1);"})
		require.Nil(t, err)

		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	require.Zero(t, count())

	err = WithTransaction(db, func(tx *sql.Tx) error {
		_, err := ExecuteQuery(tx, Query{Query: "insert into items (seqno) values (1), (2);"})
		return err
	})
	require.Nil(t, err)
	require.Equal(t, 2, count())
}

func TestExecuteQueryLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlite.db")

	writer, err := Open(path)
	require.Nil(t, err)

	defer writer.Close()

	writer.SetMaxOpenConns(1)

	_, err = ExecuteQuery(writer, Query{Query: "create table items (seqno integer not null primary key);"})
	require.Nil(t, err)

	tx, err := writer.Begin()
	require.Nil(t, err)

	defer tx.Rollback() //nolint:errcheck

	_, err = ExecuteQuery(tx, Query{Query: "insert into items (seqno) values (1);"})
	require.Nil(t, err)

	other, err := Open(path)
	require.Nil(t, err)

	defer other.Close()

	other.SetMaxOpenConns(1)
	require.Nil(t, SetPragma(other, PragmaBusyTimeout, 0))

	_, err = ExecuteQuery(other, Query{Query: "insert into items (seqno) values (2);"})
	require.ErrorIs(t, err, ErrDBLocked)
}
