package filestore

import "errors"

// ErrUnsupportedVersion is returned when restoring a snapshot written by a newer version of this package, or a file
// which has no valid snapshot version.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")
