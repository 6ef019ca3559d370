package safefileio

import (
	"errors"
	"os"
	"syscall"
)

// isNoFollowError reports whether err is what O_NOFOLLOW returns for a symlink.
func isNoFollowError(err error) bool {
	var e *os.PathError
	if !errors.As(err, &e) {
		return false
	}
	return errors.Is(e.Err, syscall.ELOOP) || errors.Is(e.Err, syscall.EMLINK)
}
