//go:build !linux

package source

import (
	"context"
	"fmt"

	"github.com/xegabriel/wg-easy-sentinel/internal/model"
)

// Kernel is only backed by wgctrl on linux; elsewhere it reports the
// backend unavailable so callers fall back to the docker source.
type Kernel struct {
	iface string
}

func NewKernel(iface string) *Kernel {
	return &Kernel{iface: iface}
}

func (k *Kernel) Snapshot(_ context.Context) ([]model.HandshakeRecord, error) {
	return nil, fmt.Errorf("%w: kernel backend requires linux", ErrUnavailable)
}
