package safefileio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// DefaultMaxFileSize is the read limit used when callers pass a non-positive size (1 MiB).
const DefaultMaxFileSize = 1 << 20

// FileSystem abstracts opening files so tests can inject failures.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Remove(name string) error
}

// File is the subset of *os.File used here.
type File interface {
	io.Reader
	io.Writer
	Close() error
	Stat() (os.FileInfo, error)
	Truncate(size int64) error
}

type osFS struct{}

func (osFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	// #nosec G304 - the path is validated after opening to prevent TOCTOU attacks
	return os.OpenFile(name, flag, perm)
}

func (osFS) Remove(name string) error {
	return os.Remove(name)
}

var defaultFS FileSystem = osFS{}

// ReadFile reads a whole text file of at most maxSize bytes.
// Symlinks, in the file name or any parent directory, are rejected.
// A missing file yields an error matching os.ErrNotExist.
func ReadFile(filePath string, maxSize int64) ([]byte, error) {
	return readFileWithFS(filePath, maxSize, defaultFS)
}

func readFileWithFS(filePath string, maxSize int64, fs FileSystem) (content []byte, err error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	absPath, err := absolutePath(filePath)
	if err != nil {
		return nil, err
	}

	file, err := fs.OpenFile(absPath, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if isNoFollowError(err) {
			return nil, fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
		}
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("Failed to close file", "file", absPath, "error", closeErr)
		}
	}()

	if err := verifyPathComponents(absPath); err != nil {
		return nil, err
	}

	info, err := regularFileInfo(file, absPath)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, absPath, info.Size(), maxSize)
	}

	content, err = io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	if int64(len(content)) > maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, absPath, maxSize)
	}

	return content, nil
}

// WriteFile writes content to filePath. An existing file is an error
// (ErrFileExists) unless overwrite is set; a symlink is always an error.
// An existing file is only truncated after the path checks pass, and a file
// created by a call that then fails is removed again.
func WriteFile(filePath string, content []byte, perm os.FileMode, overwrite bool) error {
	return writeFileWithFS(filePath, content, perm, overwrite, defaultFS)
}

func writeFileWithFS(filePath string, content []byte, perm os.FileMode, overwrite bool, fs FileSystem) (err error) {
	absPath, err := absolutePath(filePath)
	if err != nil {
		return err
	}

	// Reject a symlinked directory before anything is created or opened.
	if err := verifyPathComponents(absPath); err != nil {
		return err
	}

	file, created, err := openForWrite(fs, absPath, perm, overwrite)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	// Checked again through the open descriptor in case the path changed.
	if err := verifyOpenedFile(file, absPath); err != nil {
		if created {
			if removeErr := fs.Remove(absPath); removeErr != nil {
				slog.Warn("Failed to remove rejected output file", "file", absPath, "error", removeErr)
			}
		}
		return err
	}

	if !created {
		if err := file.Truncate(0); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", absPath, err)
		}
	}

	if _, err := file.Write(content); err != nil {
		return fmt.Errorf("failed to write to %s: %w", absPath, err)
	}
	return nil
}

// openForWrite creates absPath exclusively. With overwrite, an existing
// file is opened instead, without truncation; created reports which
// happened.
func openForWrite(fs FileSystem, absPath string, perm os.FileMode, overwrite bool) (file File, created bool, err error) {
	file, err = fs.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL|syscall.O_NOFOLLOW, perm)
	if err == nil {
		return file, true, nil
	}
	if errors.Is(err, os.ErrExist) && overwrite {
		file, err = fs.OpenFile(absPath, os.O_WRONLY|syscall.O_NOFOLLOW, 0)
		if err == nil {
			return file, false, nil
		}
	}

	switch {
	case errors.Is(err, os.ErrExist):
		return nil, false, fmt.Errorf("%w: %s", ErrFileExists, absPath)
	case isNoFollowError(err):
		return nil, false, fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
	default:
		return nil, false, fmt.Errorf("failed to open file: %w", err)
	}
}

func verifyOpenedFile(file File, absPath string) error {
	if err := verifyPathComponents(absPath); err != nil {
		return err
	}
	_, err := regularFileInfo(file, absPath)
	return err
}

func absolutePath(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidFilePath)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}
	return absPath, nil
}

// verifyPathComponents rejects a path whose parent directories include a
// symlink. It runs after the open so a swapped directory is still caught.
func verifyPathComponents(absPath string) error {
	current := filepath.Dir(absPath)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return nil
		}

		fi, err := os.Lstat(current)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("failed to stat %s: %w", current, err)
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s", ErrIsSymlink, current)
		}

		current = parent
	}
}

// regularFileInfo stats through the open descriptor and rejects devices, pipes and directories.
func regularFileInfo(file File, filePath string) (os.FileInfo, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, filePath)
	}
	return info, nil
}

// CreateFile creates a new file for writing with the same symlink and
// regular-file checks as WriteFile. The caller closes the file.
func CreateFile(filePath string, perm os.FileMode) (*os.File, error) {
	absPath, err := absolutePath(filePath)
	if err != nil {
		return nil, err
	}
	if err := verifyPathComponents(absPath); err != nil {
		return nil, err
	}

	// #nosec G304 - the path is validated again after opening to prevent TOCTOU attacks
	file, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL|syscall.O_NOFOLLOW, perm)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrExist):
			return nil, fmt.Errorf("%w: %s", ErrFileExists, absPath)
		case isNoFollowError(err):
			return nil, fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
		default:
			return nil, fmt.Errorf("failed to create file: %w", err)
		}
	}

	if err := verifyOpenedFile(file, absPath); err != nil {
		_ = file.Close()
		_ = os.Remove(absPath)
		return nil, err
	}

	return file, nil
}
