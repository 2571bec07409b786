package sentinel

import (
	"fmt"

	"github.com/xegabriel/wg-easy-sentinel/internal/model"
)

func (s *Sentinel) message(ev model.Event) (title, body string) {
	name := s.Names.LabelFor(ev.Peer)
	switch ev.Kind {
	case model.EventConnected:
		title = "🟢 Peer connected"
		body = fmt.Sprintf("%s is online (handshake %s ago)", name, FormatSeconds(ev.ElapsedSeconds))
	default:
		title = "🔴 Peer disconnected"
		body = fmt.Sprintf("%s went offline (last seen %s ago)", name, FormatSeconds(ev.ElapsedSeconds))
	}
	if s.Label != "" {
		title += " [" + s.Label + "]"
	}
	return title, body
}

// FormatSeconds renders an elapsed duration compactly: 12s, 8m20s, 3h4m,
// 2d1h. At most two units are shown.
func FormatSeconds(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	const (
		minute = 60
		hour   = 60 * minute
		day    = 24 * hour
	)
	switch {
	case secs < minute:
		return fmt.Sprintf("%ds", secs)
	case secs < hour:
		if rest := secs % minute; rest != 0 {
			return fmt.Sprintf("%dm%ds", secs/minute, rest)
		}
		return fmt.Sprintf("%dm", secs/minute)
	case secs < day:
		if rest := secs % hour / minute; rest != 0 {
			return fmt.Sprintf("%dh%dm", secs/hour, rest)
		}
		return fmt.Sprintf("%dh", secs/hour)
	default:
		if rest := secs % day / hour; rest != 0 {
			return fmt.Sprintf("%dd%dh", secs/day, rest)
		}
		return fmt.Sprintf("%dd", secs/day)
	}
}
