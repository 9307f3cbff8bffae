// Package fsutil writes files atomically on an afero filesystem.
package fsutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteAtomic streams write's output into a temp file beside path and
// renames it into place. When write or any file operation fails the temp
// file is removed and nothing is left at path.
func WriteAtomic(fs afero.Fs, path string, perm os.FileMode, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return err
	}
	if err = bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = fs.Chmod(tmpName, perm); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// WriteFileAtomic writes content to path through WriteAtomic.
func WriteFileAtomic(fs afero.Fs, path string, content []byte, perm os.FileMode) error {
	return WriteAtomic(fs, path, perm, func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	})
}

// Exists reports whether path exists. It returns an error only for
// unexpected filesystem errors.
func Exists(fs afero.Fs, path string) (bool, error) {
	return afero.Exists(fs, path)
}
