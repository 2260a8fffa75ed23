package loop

import (
	"context"
	"testing"
	"time"

	"github.com/jrubins/snake/game"
)

// headCell finds the head in a snapshot, or -1.
func headCell(snap game.Snapshot) game.Cell {
	for i, c := range snap.Cells {
		if c == game.SnakeHead {
			return game.Cell(i)
		}
	}
	return -1
}

// idleLoop returns a running loop whose ticker is effectively disabled,
// so only direction requests drive the game.
func idleLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	l := New(Config{TickInterval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	return l, cancel
}

func TestLoop_PublishesInitialSnapshot(t *testing.T) {
	l, cancel := idleLoop(t)
	defer cancel()

	select {
	case snap, ok := <-l.Updates():
		if !ok {
			t.Fatalf("updates closed before initial snapshot")
		}
		if snap.Lost {
			t.Fatalf("initial snapshot is lost")
		}
		if got := headCell(snap); got != 76 {
			t.Fatalf("initial head=%d want=76", got)
		}
		if snap.Len != game.StartLength {
			t.Fatalf("initial len=%d want=%d", snap.Len, game.StartLength)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no initial snapshot")
	}
}

func TestLoop_DirectionEventsApplyInOrder(t *testing.T) {
	l, cancel := idleLoop(t)
	defer cancel()

	recv := func() game.Snapshot {
		select {
		case snap, ok := <-l.Updates():
			if !ok {
				t.Fatalf("updates closed early")
			}
			return snap
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for snapshot")
		}
		return game.Snapshot{}
	}

	recv() // initial state, head at 76

	// Up then left: each must be applied against the previous commit,
	// never a stale copy — the head walks 76 -> 64 -> 63.
	l.RequestDirection(game.Up)
	if got := headCell(recv()); got != 64 {
		t.Fatalf("after up head=%d want=64", got)
	}

	l.RequestDirection(game.Left)
	if got := headCell(recv()); got != 63 {
		t.Fatalf("after left head=%d want=63", got)
	}
}

func TestLoop_CancelClosesUpdates(t *testing.T) {
	l, cancel := idleLoop(t)

	// Drain the initial snapshot, then tear down.
	<-l.Updates()
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-l.Updates():
			if !ok {
				return // closed, no further mutation possible
			}
		case <-deadline:
			t.Fatalf("updates not closed after cancel")
		}
	}
}

func TestLoop_LossDeliversFinalSnapshotAndStops(t *testing.T) {
	l, cancel := idleLoop(t)
	defer cancel()

	// Head starts at col 4 moving right. Seven rightward requests walk
	// it to col 11; the eighth collides with the right edge.
	for i := 0; i < 8; i++ {
		l.RequestDirection(game.Right)
	}

	var last game.Snapshot
	sawAny := false
	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap, ok := <-l.Updates():
			if !ok {
				if !sawAny {
					t.Fatalf("updates closed without a snapshot")
				}
				if !last.Lost {
					t.Fatalf("final snapshot not lost, head=%d", headCell(last))
				}
				return
			}
			sawAny = true
			last = snap
		case <-deadline:
			t.Fatalf("loop did not stop after losing")
		}
	}
}

func TestLoop_TickerDrivesMoves(t *testing.T) {
	l := New(Config{TickInterval: 5 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap, ok := <-l.Updates():
			if !ok {
				// Snake ran itself into the right edge: that is the
				// expected end of an undriven game.
				return
			}
			if h := headCell(snap); !snap.Lost && (h < 76 || h > 83) {
				t.Fatalf("undriven head strayed to %d", h)
			}
		case <-deadline:
			t.Fatalf("ticker never ended the undriven game")
		}
	}
}
