package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

var (
	// ErrAlreadyExists is returned when the destination file exists and
	// overwrite is off.
	ErrAlreadyExists = errors.New("destination exists")
	// ErrDestinationIsDirectory is returned whenever the destination path is a
	// directory, even with overwrite on.
	ErrDestinationIsDirectory = errors.New("destination is a directory")
)

// moveArticle moves relPath from srcRoot to dstRoot, creating missing
// directories. An existing destination file is replaced only when overwrite
// is set. The source is left in place if the move fails.
func moveArticle(srcRoot, dstRoot, relPath string, overwrite bool) error {
	src := filepath.Join(srcRoot, filepath.FromSlash(relPath))
	dst := filepath.Join(dstRoot, filepath.FromSlash(relPath))

	if _, err := os.Lstat(src); err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	info, err := os.Stat(dst)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("%w: %s", ErrDestinationIsDirectory, dst)
	case err == nil && !overwrite:
		return fmt.Errorf("%w: %s", ErrAlreadyExists, dst)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking destination: %w", err)
	}

	// Rename replaces an existing destination file in one step
	err = os.Rename(src, dst)
	if errors.Is(err, syscall.EXDEV) {
		err = moveAcrossDevices(src, dst)
	}
	if err != nil {
		return fmt.Errorf("moving %s: %w", relPath, err)
	}
	return nil
}

// moveAcrossDevices copies src next to dst, renames the copy into place and
// only then removes src.
func moveAcrossDevices(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".articles-move-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return err
	}

	in.Close()
	return os.Remove(src)
}
