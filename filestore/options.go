package filestore

import (
	"os"

	"github.com/couchbase/priority-store/envvar"
	"github.com/couchbase/priority-store/fsutil"
	"github.com/couchbase/priority-store/log"
)

// Options encapsulates the available options which can be used when opening a store.
type Options struct {
	// FileMode is the mode used when writing snapshots, defaults to 'fsutil.DefaultFileMode'.
	FileMode os.FileMode

	// DirMode is the mode used when creating the snapshot's parent directory, defaults to 'fsutil.DefaultDirMode'.
	DirMode os.FileMode

	// SyncDir indicates whether the parent directory should be synced after a snapshot is renamed into place, this is
	// required for the snapshot to survive a power loss. Enabled when 'PQSTORE_FILE_SYNC_DIR' is true.
	SyncDir bool

	// PersistOnClose indicates whether the live items should be persisted when the store is closed.
	PersistOnClose bool
}

func (o *Options) defaults() {
	if o.FileMode == 0 {
		o.FileMode = fsutil.DefaultFileMode
	}

	if o.DirMode == 0 {
		o.DirMode = fsutil.DefaultDirMode
	}

	if o.SyncDir {
		return
	}

	if syncDir, ok := envvar.GetBool("PQSTORE_FILE_SYNC_DIR"); ok && syncDir {
		log.Infof("(File Store) Set sync dir to: %t", syncDir)
		o.SyncDir = syncDir
	}
}
