package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/couchbase/priority-store/sqlite"
	"github.com/couchbase/priority-store/storage"
	"github.com/couchbase/priority-store/storage/storagetest"
)

func open(t *testing.T, path string, options Options) *Store {
	store, err := Open(path, options)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, store.db.Close()) })

	return store
}

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return open(t, filepath.Join(t.TempDir(), "store.sqlite3"), Options{})
	})
}

func TestStoreDurable(t *testing.T) {
	storagetest.RunDurable(t, func(t *testing.T) func() storage.Storage {
		path := filepath.Join(t.TempDir(), "store.sqlite3")
		return func() storage.Storage { return open(t, path, Options{}) }
	})
}

func TestStoreDurableSmallInsertBatch(t *testing.T) {
	storagetest.RunDurable(t, func(t *testing.T) func() storage.Storage {
		path := filepath.Join(t.TempDir(), "store.sqlite3")
		return func() storage.Storage { return open(t, path, Options{InsertBatch: 3}) }
	})
}

func TestOpenCreatesSchema(t *testing.T) {
	store := open(t, filepath.Join(t.TempDir(), "store.sqlite3"), Options{})

	var version int

	require.NoError(t, sqlite.GetPragma(store.db, sqlite.PragmaUserVersion, &version))
	require.Equal(t, schemaVersion, version)

	var count int

	require.NoError(t, sqlite.QueryRow(store.db, sqlite.Query{Query: "select count(*) from items;"}, &count))
	require.Zero(t, count)
}

func TestOpenUnsupportedSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.sqlite3")

	db, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, sqlite.SetPragma(db, sqlite.PragmaUserVersion, schemaVersion+1))
	require.NoError(t, db.Close())

	_, err = Open(path, Options{})
	require.ErrorIs(t, err, ErrUnsupportedSchema)
}

func TestPersistWritesRows(t *testing.T) {
	store := open(t, filepath.Join(t.TempDir(), "store.sqlite3"), Options{InsertBatch: 2})

	store.Push(1, []byte("a"))
	store.Push(5, nil)
	store.Push(1, []byte("b"))
	store.Push(5, []byte("c"))
	store.Push(3, []byte("d"))

	require.NoError(t, store.Persist(context.Background()))

	type row struct {
		priority storage.Priority
		seqno    int
		payload  []byte
	}

	var rows []row

	err := sqlite.QueryRows(
		store.db,
		sqlite.Query{Query: "select priority, seqno, payload from items order by seqno;"},
		func(scan sqlite.ScanCallback) error {
			var r row

			err := scan(&r.priority, &r.seqno, &r.payload)
			if err != nil {
				return err
			}

			rows = append(rows, r)

			return nil
		},
	)
	require.NoError(t, err)

	expected := []row{
		{priority: 5, seqno: 0, payload: []byte{}},
		{priority: 5, seqno: 1, payload: []byte("c")},
		{priority: 3, seqno: 2, payload: []byte("d")},
		{priority: 1, seqno: 3, payload: []byte("a")},
		{priority: 1, seqno: 4, payload: []byte("b")},
	}

	require.Equal(t, expected, rows)
}

func TestPersistLargeInsertBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.sqlite3")

	store := open(t, path, Options{InsertBatch: 20000})
	require.Equal(t, MaxInsertBatch, store.options.InsertBatch)

	for i := 0; i < 1000; i++ {
		store.Push(storage.Priority(i%3), []byte{byte(i)})
	}

	require.NoError(t, store.Persist(context.Background()))

	reopened := open(t, path, Options{})
	require.NoError(t, reopened.Restore(context.Background()))
	require.Equal(t, 1000, reopened.Len())
}

func TestRestoreCancelled(t *testing.T) {
	store := open(t, filepath.Join(t.TempDir(), "store.sqlite3"), Options{})
	store.Push(1, []byte{1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Restore(ctx), context.Canceled)
	require.Equal(t, 1, store.Len())
}

func TestClosePersistOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.sqlite3")

	store, err := Open(path, Options{PersistOnClose: true})
	require.NoError(t, err)

	store.Push(4, []byte{4})
	store.Push(8, []byte{8})

	require.NoError(t, store.Close())

	reopened := open(t, path, Options{})
	require.NoError(t, reopened.Restore(context.Background()))

	items, ok := reopened.Pop(2)
	require.True(t, ok)
	require.Equal(t, []storage.Item{{Priority: 8, Payload: []byte{8}}, {Priority: 4, Payload: []byte{4}}}, items)
}

func TestCloseWithoutPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.sqlite3")

	store, err := Open(path, Options{})
	require.NoError(t, err)

	store.Push(4, []byte{4})

	require.NoError(t, store.Close())

	reopened := open(t, path, Options{})
	require.NoError(t, reopened.Restore(context.Background()))
	require.Zero(t, reopened.Len())
}

func TestOptionsDefaults(t *testing.T) {
	type test struct {
		name     string
		env      map[string]string
		options  Options
		expected Options
	}

	tests := []test{
		{
			name:     "Defaults",
			expected: Options{MaxRetries: DefaultMaxRetries, RetryDelay: DefaultRetryDelay, InsertBatch: DefaultInsertBatch},
		},
		{
			name: "Environment",
			env: map[string]string{
				"PQSTORE_SQLITE_MAX_RETRIES":  "10",
				"PQSTORE_SQLITE_RETRY_DELAY":  "1s",
				"PQSTORE_SQLITE_INSERT_BATCH": "16",
			},
			expected: Options{MaxRetries: 10, RetryDelay: time.Second, InsertBatch: 16},
		},
		{
			name: "ExplicitWins",
			env: map[string]string{
				"PQSTORE_SQLITE_MAX_RETRIES":  "10",
				"PQSTORE_SQLITE_RETRY_DELAY":  "1s",
				"PQSTORE_SQLITE_INSERT_BATCH": "16",
			},
			options:  Options{MaxRetries: 1, RetryDelay: time.Millisecond, InsertBatch: 8, PersistOnClose: true},
			expected: Options{MaxRetries: 1, RetryDelay: time.Millisecond, InsertBatch: 8, PersistOnClose: true},
		},
		{
			name:     "ExplicitInsertBatchCapped",
			options:  Options{InsertBatch: 20000},
			expected: Options{MaxRetries: DefaultMaxRetries, RetryDelay: DefaultRetryDelay, InsertBatch: MaxInsertBatch},
		},
		{
			name: "InvalidEnvironmentIgnored",
			env: map[string]string{
				"PQSTORE_SQLITE_MAX_RETRIES":  "lots",
				"PQSTORE_SQLITE_RETRY_DELAY":  "-1s",
				"PQSTORE_SQLITE_INSERT_BATCH": "100000",
			},
			expected: Options{MaxRetries: DefaultMaxRetries, RetryDelay: DefaultRetryDelay, InsertBatch: DefaultInsertBatch},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for key, value := range test.env {
				t.Setenv(key, value)
			}

			test.options.defaults()
			require.Equal(t, test.expected, test.options)
		})
	}
}

func TestPlaceholders(t *testing.T) {
	require.Equal(t, "(?, ?, ?)", placeholders(1))
	require.Equal(t, "(?, ?, ?), (?, ?, ?), (?, ?, ?)", placeholders(3))
}
