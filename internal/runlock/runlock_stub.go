//go:build !unix

package runlock

import "errors"

// Acquire is unsupported off unix platforms: without an advisory lock two
// scheduled runs could interleave, so we refuse to run at all.
func Acquire(path string) (*Lock, error) {
	return nil, errors.New("run lock requires a unix platform")
}

func (l *Lock) Release() {}
