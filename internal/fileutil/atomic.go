// Package fileutil provides file system helpers for the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic stages data in a hidden file beside filename and renames it
// over filename once it is fully on disk. Anyone reading a generated puzzle
// sees either the previous one or the complete new one.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	// Renames are only atomic within one filesystem, hence the same directory
	staged, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+"-*")
	if err != nil {
		return fmt.Errorf("staging %s: %w", filename, err)
	}

	if err := fill(staged, data, perm); err != nil {
		_ = os.Remove(staged.Name())
		return fmt.Errorf("staging %s: %w", filename, err)
	}
	if err := os.Rename(staged.Name(), filename); err != nil {
		_ = os.Remove(staged.Name())
		return fmt.Errorf("replacing %s: %w", filename, err)
	}
	return nil
}

// fill writes, chmods and syncs f, and always closes it.
func fill(f *os.File, data []byte, perm os.FileMode) error {
	_, err := f.Write(data)
	if err == nil {
		err = f.Chmod(perm)
	}
	if err == nil {
		err = f.Sync()
	}
	return errors.Join(err, f.Close())
}
