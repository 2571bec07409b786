//go:build linux

package source

import (
	"context"
	"fmt"

	"golang.zx2c4.com/wireguard/wgctrl"

	"github.com/xegabriel/wg-easy-sentinel/internal/model"
)

// Kernel reads handshakes straight from the kernel WireGuard device, for
// deployments where the sentinel runs on the gateway host itself.
type Kernel struct {
	iface string
}

func NewKernel(iface string) *Kernel {
	return &Kernel{iface: iface}
}

func (k *Kernel) Snapshot(_ context.Context) ([]model.HandshakeRecord, error) {
	client, err := wgctrl.New()
	if err != nil {
		return nil, fmt.Errorf("%w: create wireguard client: %v", ErrUnavailable, err)
	}
	defer client.Close()

	dev, err := client.Device(k.iface)
	if err != nil {
		return nil, fmt.Errorf("%w: inspect device %q: %v", ErrUnavailable, k.iface, err)
	}

	records := make([]model.HandshakeRecord, 0, len(dev.Peers))
	for _, p := range dev.Peers {
		var ts int64
		if !p.LastHandshakeTime.IsZero() {
			ts = p.LastHandshakeTime.Unix()
		}
		records = append(records, model.HandshakeRecord{Peer: p.PublicKey.String(), LastHandshake: ts})
	}
	return records, nil
}
