package sentinel

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xegabriel/wg-easy-sentinel/internal/model"
	"github.com/xegabriel/wg-easy-sentinel/internal/source"
)

type fakeSource struct {
	records []model.HandshakeRecord
	err     error
}

func (f *fakeSource) Snapshot(context.Context) ([]model.HandshakeRecord, error) {
	return f.records, f.err
}

type fakeStore struct {
	ledger  model.Ledger
	loadErr error
	saveErr error
	saved   *model.Ledger
}

func (f *fakeStore) Load() (model.Ledger, error) {
	if f.loadErr != nil {
		return model.Ledger{}, f.loadErr
	}
	return f.ledger, nil
}

func (f *fakeStore) Save(l model.Ledger) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = &l
	return nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, title, body string) error {
	f.sent = append(f.sent, title+" | "+body)
	return f.err
}

type rawNames struct{}

func (rawNames) LabelFor(key string) string { return key }

type mapNames map[string]string

func (m mapNames) LabelFor(key string) string {
	if name, ok := m[key]; ok {
		return name
	}
	return key
}

func newSentinel(src source.Source, st *fakeStore, n *fakeNotifier, now time.Time) *Sentinel {
	return &Sentinel{
		Source:  src,
		Store:   st,
		Names:   rawNames{},
		Notify:  n,
		Timeout: 120 * time.Second,
		Now:     func() time.Time { return now },
	}
}

func TestRun_NotifiesAndPersists(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	src := &fakeSource{records: []model.HandshakeRecord{{Peer: "pkA", LastHandshake: now.Unix() - 10}}}
	st := &fakeStore{ledger: model.NewLedger()}
	n := &fakeNotifier{}

	s := newSentinel(src, st, n, now)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(n.sent) != 1 || !strings.Contains(n.sent[0], "connected") {
		t.Fatalf("sent=%v", n.sent)
	}
	if st.saved == nil || !st.saved.Connected["pkA"] {
		t.Fatalf("saved=%+v", st.saved)
	}
}

func TestRun_NoTransitions_NoNotifications(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	prev := model.NewLedger()
	prev.Connected["pkA"] = true
	prev.LastHandshake["pkA"] = now.Unix() - 50
	src := &fakeSource{records: []model.HandshakeRecord{{Peer: "pkA", LastHandshake: now.Unix() - 50}}}
	st := &fakeStore{ledger: prev}
	n := &fakeNotifier{}

	s := newSentinel(src, st, n, now)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(n.sent) != 0 {
		t.Fatalf("sent=%v", n.sent)
	}
	if st.saved == nil {
		t.Fatalf("ledger must still be persisted")
	}
}

func TestRun_SnapshotFailure_MutatesNothing(t *testing.T) {
	t.Parallel()

	src := &fakeSource{err: source.ErrUnavailable}
	st := &fakeStore{ledger: model.NewLedger()}
	n := &fakeNotifier{}

	s := newSentinel(src, st, n, time.Unix(1_700_000_000, 0))
	err := s.Run(context.Background())
	if !errors.Is(err, source.ErrUnavailable) {
		t.Fatalf("err=%v", err)
	}
	if st.saved != nil {
		t.Fatalf("saved=%+v", st.saved)
	}
	if len(n.sent) != 0 {
		t.Fatalf("sent=%v", n.sent)
	}
}

func TestRun_DeliveryFailure_StillPersists(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	src := &fakeSource{records: []model.HandshakeRecord{{Peer: "pkA", LastHandshake: now.Unix() - 1}}}
	st := &fakeStore{ledger: model.NewLedger()}
	n := &fakeNotifier{err: errors.New("channel down")}

	s := newSentinel(src, st, n, now)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.saved == nil || !st.saved.Connected["pkA"] {
		t.Fatalf("saved=%+v", st.saved)
	}
}

func TestRun_SaveFailure_IsNotFatal(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	src := &fakeSource{records: []model.HandshakeRecord{{Peer: "pkA", LastHandshake: now.Unix() - 1}}}
	st := &fakeStore{ledger: model.NewLedger(), saveErr: errors.New("disk full")}
	n := &fakeNotifier{}

	s := newSentinel(src, st, n, now)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRun_LoadFailure_IsFatal(t *testing.T) {
	t.Parallel()

	st := &fakeStore{loadErr: errors.New("permission denied")}
	s := newSentinel(&fakeSource{}, st, &fakeNotifier{}, time.Unix(1_700_000_000, 0))

	if err := s.Run(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRun_DryRun_MutatesNothing(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	src := &fakeSource{records: []model.HandshakeRecord{{Peer: "pkA", LastHandshake: now.Unix() - 1}}}
	st := &fakeStore{ledger: model.NewLedger()}
	n := &fakeNotifier{}

	s := newSentinel(src, st, n, now)
	s.DryRun = true
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.saved != nil || len(n.sent) != 0 {
		t.Fatalf("saved=%v sent=%v", st.saved, n.sent)
	}
}

func TestMessage_UsesResolvedNamesAndLabel(t *testing.T) {
	t.Parallel()

	s := &Sentinel{Names: mapNames{"pkA": "Alice's phone"}, Label: "home-gw"}

	title, body := s.message(model.Event{Kind: model.EventConnected, Peer: "pkA", ElapsedSeconds: 12})
	if title != "🟢 Peer connected [home-gw]" {
		t.Fatalf("title=%q", title)
	}
	if body != "Alice's phone is online (handshake 12s ago)" {
		t.Fatalf("body=%q", body)
	}

	title, body = s.message(model.Event{Kind: model.EventDisconnected, Peer: "pkB", ElapsedSeconds: 500})
	if title != "🔴 Peer disconnected [home-gw]" {
		t.Fatalf("title=%q", title)
	}
	if body != "pkB went offline (last seen 8m20s ago)" {
		t.Fatalf("body=%q", body)
	}
}

func TestFormatSeconds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		secs int64
		want string
	}{
		{0, "0s"},
		{-3, "0s"},
		{12, "12s"},
		{60, "1m"},
		{500, "8m20s"},
		{3600, "1h"},
		{3600*3 + 240, "3h4m"},
		{86400 * 2, "2d"},
		{86400*2 + 3600, "2d1h"},
	}
	for _, tc := range cases {
		if got := FormatSeconds(tc.secs); got != tc.want {
			t.Fatalf("FormatSeconds(%d)=%q want %q", tc.secs, got, tc.want)
		}
	}
}
