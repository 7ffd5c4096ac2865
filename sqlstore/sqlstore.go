// Package sqlstore implements a priority store whose items may be persisted to, and restored from, an SQLite database.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/couchbase/priority-store/errutil"
	"github.com/couchbase/priority-store/log"
	"github.com/couchbase/priority-store/memstore"
	"github.com/couchbase/priority-store/retry"
	"github.com/couchbase/priority-store/sqlite"
	"github.com/couchbase/priority-store/storage"
)

// Store keeps its live items in memory, 'Persist' writes a snapshot of them to the database replacing the previous
// snapshot and 'Restore' replaces the live items with the last snapshot.
type Store struct {
	*memstore.Store

	path    string
	db      *sql.DB
	options Options
	retryer retry.Retryer[struct{}]
}

var _ storage.Storage = (*Store)(nil)

// Open opens (creating if required) the SQLite database at the given path, the returned store is empty until
// 'Restore' is called.
func Open(path string, options Options) (*Store, error) {
	options.defaults()

	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A store owns its database, a single connection means our own statements never contend for the file lock.
	db.SetMaxOpenConns(1)

	err = migrate(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	store := &Store{
		Store:   memstore.New(),
		path:    path,
		db:      db,
		options: options,
	}

	store.retryer = retry.NewRetryer[struct{}](retry.RetryerOptions[struct{}]{
		Algorithm:   retry.AlgorithmExponential,
		MaxRetries:  options.MaxRetries,
		MinDelay:    options.RetryDelay,
		ShouldRetry: func(_ *retry.Context, _ struct{}, err error) bool { return errors.Is(err, sqlite.ErrDBLocked) },
		Log: func(ctx *retry.Context, _ struct{}, err error) {
			log.Warnf("(SQLite Store) Attempt %d against '%s' failed, retrying: %s", ctx.Attempt(), path, err)
		},
	})

	return store, nil
}

// Persist replaces the snapshot in the database with the current live items.
func (s *Store) Persist(ctx context.Context) error {
	items := make([]storage.Item, 0, s.Len())

	s.Iter(func(item storage.Item) { items = append(items, item) })

	_, err := s.retryer.DoWithContext(ctx, func(_ *retry.Context) (struct{}, error) {
		return struct{}{}, sqlite.WithTransaction(s.db, func(tx *sql.Tx) error { return s.write(tx, items) })
	})
	if err != nil {
		return fmt.Errorf("failed to persist items: %w", err)
	}

	log.Debugf("(SQLite Store) Persisted %d item(s) to '%s'", len(items), s.path)

	return nil
}

// write replaces the contents of the items table, the position of each item in the given slice is used as its seqno.
func (s *Store) write(tx *sql.Tx, items []storage.Item) error {
	_, err := sqlite.ExecuteQuery(tx, sqlite.Query{Query: "delete from items;"})
	if err != nil {
		return fmt.Errorf("failed to delete previous snapshot: %w", err)
	}

	for start := 0; start < len(items); start += s.options.InsertBatch {
		batch := items[start:min(start+s.options.InsertBatch, len(items))]

		query := sqlite.Query{
			Query:     "insert into items (priority, seqno, payload) values " + placeholders(len(batch)) + ";",
			Arguments: make([]any, 0, 3*len(batch)),
		}

		for i, item := range batch {
			payload := item.Payload
			if payload == nil {
				payload = []byte{}
			}

			query.Arguments = append(query.Arguments, item.Priority, start+i, payload)
		}

		_, err = sqlite.ExecuteQuery(tx, query)
		if err != nil {
			return fmt.Errorf("failed to insert items: %w", err)
		}
	}

	return nil
}

// Restore replaces the live items with those in the database, the live items are untouched if reading fails.
func (s *Store) Restore(ctx context.Context) error {
	var items []storage.Item

	_, err := s.retryer.DoWithContext(ctx, func(_ *retry.Context) (struct{}, error) {
		items = items[:0]
		return struct{}{}, s.read(&items)
	})
	if err != nil {
		return fmt.Errorf("failed to restore items: %w", err)
	}

	s.Clear()

	for _, item := range items {
		s.Push(item.Priority, item.Payload)
	}

	log.Debugf("(SQLite Store) Restored %d item(s) from '%s'", len(items), s.path)

	return nil
}

func (s *Store) read(items *[]storage.Item) error {
	query := sqlite.Query{Query: "select priority, payload from items order by priority desc, seqno asc;"}

	err := sqlite.QueryRows(s.db, query, func(scan sqlite.ScanCallback) error {
		var item storage.Item

		err := scan(&item.Priority, &item.Payload)
		if err != nil {
			return err
		}

		*items = append(*items, item)

		return nil
	})

	if errors.Is(err, sqlite.ErrQueryReturnedNoRows) {
		return nil
	}

	return err
}

// Close closes the database, persisting the live items first if 'PersistOnClose' is set.
func (s *Store) Close() error {
	var errs errutil.MultiError

	if s.options.PersistOnClose {
		errs.Add(s.Persist(context.Background()))
	}

	if err := s.db.Close(); err != nil {
		errs.Add(fmt.Errorf("failed to close database: %w", err))
	}

	return errs.ErrOrNil()
}

// placeholders returns the values clause for n rows of three columns e.g. '(?, ?, ?), (?, ?, ?)'.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("(?, ?, ?), ", n), ", ")
}
