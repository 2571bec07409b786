package runlock

import (
	"errors"
	"os"
)

// ErrHeld means another process holds the run lock.
var ErrHeld = errors.New("run lock held by another process")

// Lock is a held cross-process exclusive advisory lock.
type Lock struct {
	f *os.File
}
