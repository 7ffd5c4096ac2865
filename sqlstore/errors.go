package sqlstore

import "errors"

// ErrUnsupportedSchema is returned when opening a database which was created by a newer version of this package.
var ErrUnsupportedSchema = errors.New("unsupported schema version")
