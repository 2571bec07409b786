package source

import (
	"context"
	"errors"
	"testing"
)

type fakeRunner struct {
	out  string
	err  error
	name string
	args []string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	f.name = name
	f.args = args
	return f.out, f.err
}

func TestParseLatestHandshakes(t *testing.T) {
	t.Parallel()

	out := "" +
		"wg0\tpkAAA=\t1700000000\n" +
		"wg0\tpkBBB=\t0\n" +
		"wg1\tpkCCC=\t1700000500\n"

	records := ParseLatestHandshakes(out, "")
	if len(records) != 3 {
		t.Fatalf("records=%v", records)
	}
	if records[0].Peer != "pkAAA=" || records[0].LastHandshake != 1_700_000_000 {
		t.Fatalf("first=%+v", records[0])
	}
	if records[1].LastHandshake != 0 {
		t.Fatalf("second=%+v", records[1])
	}
}

func TestParseLatestHandshakes_InterfaceFilter(t *testing.T) {
	t.Parallel()

	out := "wg0 pkAAA= 1700000000\nwg1 pkBBB= 1700000000\n"

	records := ParseLatestHandshakes(out, "wg1")
	if len(records) != 1 || records[0].Peer != "pkBBB=" {
		t.Fatalf("records=%v", records)
	}
}

func TestParseLatestHandshakes_DiscardsMalformedLines(t *testing.T) {
	t.Parallel()

	out := "" +
		"wg0 pkAAA= 1700000000\n" +
		"wg0 pkBBB=\n" +
		"wg0 pkCCC= notanumber\n" +
		"wg0 pkDDD= -3\n" +
		"one two three four\n" +
		"\n"

	records := ParseLatestHandshakes(out, "")
	if len(records) != 1 || records[0].Peer != "pkAAA=" {
		t.Fatalf("records=%v", records)
	}
}

func TestParseLatestHandshakes_Empty(t *testing.T) {
	t.Parallel()

	records := ParseLatestHandshakes("", "")
	if records == nil || len(records) != 0 {
		t.Fatalf("records=%v", records)
	}
}

func TestDocker_Snapshot_BuildsExecCommand(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{out: "wg0 pkAAA= 1700000000"}
	d := NewDocker("wg-easy", "", runner)

	records, err := d.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records=%v", records)
	}
	if runner.name != "docker" {
		t.Fatalf("name=%q", runner.name)
	}
	want := "exec wg-easy wg show all latest-handshakes"
	got := ""
	for i, a := range runner.args {
		if i > 0 {
			got += " "
		}
		got += a
	}
	if got != want {
		t.Fatalf("args=%q", got)
	}
}

func TestDocker_Snapshot_ExecFailure_IsUnavailable(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: errors.New("no such container")}
	d := NewDocker("wg-easy", "", runner)

	_, err := d.Snapshot(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err=%v", err)
	}
}
