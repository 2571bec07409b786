package source

import (
	"context"
	"fmt"

	"github.com/xegabriel/wg-easy-sentinel/internal/execx"
	"github.com/xegabriel/wg-easy-sentinel/internal/model"
)

// Docker polls the gateway by exec'ing `wg show all latest-handshakes`
// inside the wg-easy container.
type Docker struct {
	container string
	iface     string
	runner    execx.Runner
}

// NewDocker creates a docker-backed source. iface is an optional filter;
// empty means all interfaces in the container.
func NewDocker(container, iface string, runner execx.Runner) *Docker {
	return &Docker{container: container, iface: iface, runner: runner}
}

func (d *Docker) Snapshot(ctx context.Context) ([]model.HandshakeRecord, error) {
	out, err := d.runner.Output(ctx, "docker", "exec", d.container, "wg", "show", "all", "latest-handshakes")
	if err != nil {
		return nil, fmt.Errorf("%w: docker exec %s: %v", ErrUnavailable, d.container, err)
	}
	return ParseLatestHandshakes(out, d.iface), nil
}
