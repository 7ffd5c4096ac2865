// Package filestore implements a priority store whose items may be persisted to, and restored from, a JSON snapshot
// on disk.
package filestore

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/couchbase/priority-store/fsutil"
	"github.com/couchbase/priority-store/log"
	"github.com/couchbase/priority-store/memstore"
	"github.com/couchbase/priority-store/storage"
)

// snapshotVersion is written to every snapshot, snapshots with a greater version are rejected.
const snapshotVersion = 1

// snapshot is the on-disk representation of the items in a store.
//
// NOTE: Items are stored in pop order, payloads are base64 encoded.
type snapshot struct {
	Version int            `json:"version"`
	Items   []snapshotItem `json:"items"`
}

type snapshotItem struct {
	Priority storage.Priority `json:"priority"`
	Payload  []byte           `json:"payload"`
}

// Store keeps its live items in memory, 'Persist' atomically replaces the snapshot at its path and 'Restore' replaces
// the live items with those in the snapshot.
type Store struct {
	*memstore.Store

	path    string
	options Options
}

var _ storage.Storage = (*Store)(nil)

// Open returns an empty store which persists to the given path, the snapshot (if any) is not read until 'Restore' is
// called.
func Open(path string, options Options) (*Store, error) {
	options.defaults()

	// Fail early if something other than a snapshot is in the way, rather than on the first persist.
	_, err := fsutil.FileExists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check for snapshot: %w", err)
	}

	return &Store{Store: memstore.New(), path: path, options: options}, nil
}

// Persist atomically replaces the snapshot on disk with the current live items.
func (s *Store) Persist(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := snapshot{Version: snapshotVersion, Items: make([]snapshotItem, 0, s.Len())}

	s.Iter(func(item storage.Item) {
		snap.Items = append(snap.Items, snapshotItem{Priority: item.Priority, Payload: item.Payload})
	})

	dir := filepath.Dir(s.path)

	err := fsutil.Mkdir(dir, s.options.DirMode, true, true)
	if err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	err = fsutil.Atomic(s.path, func(path string) error { return fsutil.WriteJSONFile(path, snap, s.options.FileMode) })
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if s.options.SyncDir {
		err = fsutil.SyncDir(dir)
		if err != nil {
			return fmt.Errorf("failed to sync snapshot directory: %w", err)
		}
	}

	log.Debugf("(File Store) Persisted %d item(s) to '%s'", len(snap.Items), s.path)

	return nil
}

// Restore replaces the live items with those in the snapshot, a missing snapshot results in an empty store. The live
// items are untouched if the snapshot can't be read.
func (s *Store) Restore(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	exists, err := fsutil.FileExists(s.path)
	if err != nil {
		return fmt.Errorf("failed to check for snapshot: %w", err)
	}

	if !exists {
		log.Debugf("(File Store) No snapshot at '%s', restoring an empty store", s.path)
		s.Clear()

		return nil
	}

	var snap snapshot

	err = fsutil.ReadJSONFile(s.path, &snap)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	// NOTE: A missing version decodes as zero, which means the file was not written by this package.
	if snap.Version < 1 || snap.Version > snapshotVersion {
		return fmt.Errorf("%w: snapshot has version %d, expected between 1 and %d", ErrUnsupportedVersion,
			snap.Version, snapshotVersion)
	}

	s.Clear()

	for _, item := range snap.Items {
		s.Push(item.Priority, item.Payload)
	}

	log.Debugf("(File Store) Restored %d item(s) from '%s'", len(snap.Items), s.path)

	return nil
}

// Close persists the live items if 'PersistOnClose' is set, the store holds no other resources.
func (s *Store) Close() error {
	if !s.options.PersistOnClose {
		return nil
	}

	return s.Persist(context.Background())
}
