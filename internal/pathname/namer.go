// Package pathname derives output file names for encrypted and decrypted files.
package pathname

import (
	"errors"
	"path/filepath"
	"strings"
)

// Default suffixes inserted before the file extension.
const (
	DefaultEncryptedSuffix = "_encrypted"
	DefaultDecryptedSuffix = "_decrypted"
)

var (
	// ErrEmptySuffix indicates a Namer was configured with an empty suffix
	ErrEmptySuffix = errors.New("suffix must not be empty")
	// ErrSuffixHasSeparator indicates a suffix that would change the directory
	ErrSuffixHasSeparator = errors.New("suffix must not contain a path separator")
	// ErrSameSuffix indicates identical encrypted and decrypted suffixes
	ErrSameSuffix = errors.New("encrypted and decrypted suffixes must differ")
)

// Namer maps an input path to the path its result is written to.
// Only the file stem changes; the directory and extension are kept.
type Namer struct {
	EncryptedSuffix string
	DecryptedSuffix string
}

// NewNamer returns a Namer with the default suffixes.
func NewNamer() Namer {
	return Namer{
		EncryptedSuffix: DefaultEncryptedSuffix,
		DecryptedSuffix: DefaultDecryptedSuffix,
	}
}

// Validate checks that both suffixes are usable.
func (n Namer) Validate() error {
	for _, suffix := range []string{n.EncryptedSuffix, n.DecryptedSuffix} {
		if suffix == "" {
			return ErrEmptySuffix
		}
		if strings.ContainsAny(suffix, `/\`) {
			return ErrSuffixHasSeparator
		}
	}
	if n.EncryptedSuffix == n.DecryptedSuffix {
		return ErrSameSuffix
	}
	return nil
}

// EncryptedPath returns "dir/name<EncryptedSuffix>.ext" for "dir/name.ext".
func (n Namer) EncryptedPath(input string) string {
	dir, stem, ext := split(input)
	return filepath.Join(dir, stem+n.EncryptedSuffix+ext)
}

// DecryptedPath swaps a trailing EncryptedSuffix on the stem for
// DecryptedSuffix, or appends DecryptedSuffix when there is none.
func (n Namer) DecryptedPath(input string) string {
	dir, stem, ext := split(input)
	if trimmed, ok := strings.CutSuffix(stem, n.EncryptedSuffix); ok && trimmed != "" {
		stem = trimmed
	}
	return filepath.Join(dir, stem+n.DecryptedSuffix+ext)
}

func split(path string) (dir, stem, ext string) {
	dir, base := filepath.Split(path)
	ext = filepath.Ext(base)
	stem = strings.TrimSuffix(base, ext)
	// Dotfiles like ".notes" have no extension.
	if stem == "" {
		stem, ext = ext, ""
	}
	return dir, stem, ext
}
