// Package fsutil provides file system helpers used by the on-disk storage backends.
package fsutil

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileExists returns a boolean indicating whether a file at the provided path exists.
func FileExists(path string) (bool, error) {
	stats, err := os.Stat(path)
	if err != nil {
		return false, ignoreINE(err)
	}

	if stats.IsDir() {
		return false, ErrNotFile
	}

	return true, nil
}

// CreateFile creates a new file (or truncates an existing one) at the provided path using the given flags/mode.
//
// NOTE: If a zero value file mode is suppled, the default will be used.
func CreateFile(path string, flags int, mode os.FileMode) (*os.File, error) {
	if mode == 0 {
		mode = DefaultFileMode
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|flags, mode)
	if err != nil {
		return nil, err
	}

	// The files mode may not be exactly what we provided due to a umask, we should update the permissions to be sure.
	err = file.Chmod(mode)
	if err == nil {
		return file, nil
	}

	file.Close()

	return nil, err
}

// ReadJSONFile unmarshals data from the provided file into the given interface.
func ReadJSONFile(path string, data any) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(data)
}

// WriteJSONFile marshals the provided interface and writes it to a file at the given path, the file is synced to disk
// before returning.
func WriteJSONFile(path string, data any, mode os.FileMode) error {
	file, err := CreateFile(path, os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer file.Close()

	err = json.NewEncoder(file).Encode(data)
	if err != nil {
		return err
	}

	err = file.Sync()
	if err != nil {
		return err
	}

	return file.Close()
}

// Atomic will perform the provided function in an "atomic" fashion. It's required that the provided function create
// the file at the given path if it doesn't already exist.
//
// NOTE: This only works to the degree that the underlying operating system guarantees that renames are atomic. The
// temporary file is removed if the function (or the rename) fails.
func Atomic(path string, fn func(path string) error) error {
	temp, err := temporaryPath(path)
	if err != nil {
		return err
	}

	err = fn(temp)
	if err == nil {
		err = os.Rename(temp, path)
	}

	if err != nil {
		_ = Remove(temp, true)
		return err
	}

	return nil
}

// temporaryPath returns a path, in the same directory as the given path, which does not currently exist.
func temporaryPath(path string) (string, error) {
	for {
		temp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".temporary_%d_%s", rand.Int63(), filepath.Base(path)))

		exists, err := FileExists(temp)
		if err != nil {
			return "", err
		}

		if !exists {
			return temp, nil
		}
	}
}
