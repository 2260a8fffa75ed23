// Package loop runs the simulation behind a single goroutine that owns
// the game state exclusively. Timer ticks and direction requests drain
// through one select, so every event is applied against the committed
// result of the previous one and readers only ever observe committed
// snapshots.
package loop

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jrubins/snake/game"
	"github.com/jrubins/snake/rules"
)

// DefaultTickInterval is the cadence at which the snake advances when
// the driver does not choose one.
const DefaultTickInterval = 500 * time.Millisecond

// Config carries the startup parameters of a run. The board size is a
// compile-time constant of the game package; everything here is
// optional.
type Config struct {
	TickInterval time.Duration // 0 means DefaultTickInterval
	Rng          *rand.Rand    // nil means deterministic apple placement
	Logger       *slog.Logger  // nil means slog.Default()
}

// Loop owns one game from start until it is lost or canceled. Create it
// with New and drive it with Run.
type Loop struct {
	interval time.Duration
	rng      *rand.Rand
	log      *slog.Logger

	directions chan game.Direction
	updates    chan game.Snapshot
}

// New prepares a loop. Nothing runs until Run is called.
func New(cfg Config) *Loop {
	interval := cfg.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Loop{
		interval:   interval,
		rng:        cfg.Rng,
		log:        log,
		directions: make(chan game.Direction, 8),
		updates:    make(chan game.Snapshot, 8),
	}
}

// Updates returns the channel on which committed snapshots are
// published: one for the initial state, then one per applied event.
// Intermediate snapshots may be dropped if the consumer lags, but the
// final snapshot of a lost game is always delivered. The channel is
// closed when Run returns.
func (l *Loop) Updates() <-chan game.Snapshot {
	return l.updates
}

// RequestDirection queues a player direction request. It never blocks:
// if the queue is saturated the request is dropped, which a later key
// press will supersede anyway.
func (l *Loop) RequestDirection(d game.Direction) {
	select {
	case l.directions <- d:
	default:
	}
}

// Run creates the game and applies events until the game is lost or ctx
// is canceled. The ticker is stopped before return, and no state is
// mutated after that; Run owns the state for its whole lifetime.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.updates)

	state := game.NewGameState(l.rng)
	l.log.Info("game started",
		"board_size", game.BoardSize,
		"tick_interval", l.interval,
		"snake_len", state.Snake.Len(),
	)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.publish(state.Snapshot())

	for {
		select {
		case <-ctx.Done():
			l.log.Info("game stopped", "reason", "canceled")
			return

		case d := <-l.directions:
			rules.RequestDirection(state, d, l.rng)

		case <-ticker.C:
			rules.AdvanceTick(state, l.rng)
		}

		if state.Lost {
			l.log.Info("game stopped", "reason", "lost", "snake_len", state.Snake.Len())
			l.publishFinal(ctx, state.Snapshot())
			return
		}
		l.publish(state.Snapshot())
	}
}

// publish offers a committed snapshot to the consumer. Renderers only
// need the latest state, so a frame is dropped rather than stalling
// event processing when the consumer is behind.
func (l *Loop) publish(snap game.Snapshot) {
	select {
	case l.updates <- snap:
	default:
	}
}

// publishFinal delivers the terminal snapshot, waiting for the consumer
// unless the context is canceled first.
func (l *Loop) publishFinal(ctx context.Context, snap game.Snapshot) {
	select {
	case l.updates <- snap:
	case <-ctx.Done():
	}
}
