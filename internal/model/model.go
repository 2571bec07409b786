package model

// HandshakeRecord is one peer's last-handshake observation from a single
// poll. A peer absent from a snapshot means "not observed this poll", not
// "peer removed".
type HandshakeRecord struct {
	Peer          string
	LastHandshake int64 // unix seconds; 0 means the peer never handshaked
}

// Ledger is the durable connectivity state as of the end of the previous
// reconciliation cycle. It is replaced wholesale each cycle, never merged.
type Ledger struct {
	Connected     map[string]bool
	LastHandshake map[string]int64
}

// NewLedger returns an empty ledger with both maps allocated.
func NewLedger() Ledger {
	return Ledger{
		Connected:     map[string]bool{},
		LastHandshake: map[string]int64{},
	}
}

// EventKind names the direction of a connectivity transition.
type EventKind string

const (
	EventConnected    EventKind = "connected"
	EventDisconnected EventKind = "disconnected"
)

// Event is one connectivity transition, produced and consumed within a
// single cycle. Events are never persisted.
type Event struct {
	Kind           EventKind
	Peer           string
	ElapsedSeconds int64
}
