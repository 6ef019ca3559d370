// Package safefileio reads plain and coded text files and writes results
// without following symbolic links and without clobbering existing files
// unless asked to.
package safefileio

import "errors"

var (
	// ErrInvalidFilePath indicates that the specified file path is invalid.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrIsSymlink indicates that the specified path is a symbolic link, which is not allowed.
	ErrIsSymlink = errors.New("path is a symbolic link")

	// ErrFileTooLarge indicates that the file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrFileExists indicates that the output file already exists.
	ErrFileExists = errors.New("file exists")
)
