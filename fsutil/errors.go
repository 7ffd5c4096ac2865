package fsutil

import (
	"errors"
	"os"
)

var (
	// ErrNotFile is returned by 'FileExists' if a directory exists at the provided path.
	ErrNotFile = errors.New("not a file")

	// ErrNotDir is returned by 'DirExists' if a file exists at the provided path.
	ErrNotDir = errors.New("not a directory")
)

// ignoreINE returns <nil> for "is not exist" errors, any other error is returned as is.
func ignoreINE(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}
