// Package rules implements the state transitions of the snake
// simulation: the collision oracle and the two entry points that drive
// the game, direction requests and tick advances.
//
// The rules mutate the GameState in place. Callers must serialize
// access (see the loop package); a lost state is terminal and both
// entry points become no-ops on it.
package rules

import (
	"math/rand"

	"github.com/jrubins/snake/game"
)

// RequestDirection handles a player direction request. A request for
// the exact reverse of the head's direction is ignored, so the head can
// never fold back onto its own neck in one step. Any other direction is
// applied immediately: a direction change is a full move, not recorded
// intent for the next tick. If the move would collide the state goes to
// Lost with positions unchanged.
//
// rng feeds apple placement when the move eats the apple; nil is valid
// (deterministic placement).
func RequestDirection(state *game.GameState, requested game.Direction, rng *rand.Rand) {
	if state.Lost {
		return
	}
	if requested == state.Snake.Head().Dir.Opposite() {
		return
	}
	if WouldCollide(&state.Snake, requested) {
		state.Lost = true
		return
	}
	move(state, requested, rng)
}

// AdvanceTick advances the simulation one step along the head's current
// direction. On collision the state goes to Lost with positions
// unchanged; a lost state is left untouched.
func AdvanceTick(state *game.GameState, rng *rand.Rand) {
	if state.Lost {
		return
	}
	dir := state.Snake.Head().Dir
	if WouldCollide(&state.Snake, dir) {
		state.Lost = true
		return
	}
	move(state, dir, rng)
}

// move advances every segment one cell. The caller has already
// established that the head's step is collision-free.
//
// Turn propagation: when the head turns, it leaves a marker at its old
// cell. The marker walks down the body one segment per tick — each
// segment adopts the marker's direction when its own move lands on the
// marker's cell, then hands the marker to the segment behind it. The
// tail consumes markers without handing them on.
func move(state *game.GameState, dir game.Direction, rng *rand.Rand) {
	segs := state.Snake.Segments

	head := &segs[0]
	var forward *game.TurnMarker
	if dir != head.Dir {
		forward = &game.TurnMarker{Dir: dir, At: head.Pos}
		head.Dir = dir
		head.Pending = nil
	}
	head.Pos = head.Pos.Next(head.Dir)

	for i := 1; i < len(segs); i++ {
		seg := &segs[i]
		if forward != nil {
			seg.Pending = append(seg.Pending, *forward)
		}
		seg.Pos = seg.Pos.Next(seg.Dir)
		forward = consumeTurn(seg)
	}

	if state.Snake.Head().Pos == state.Apple {
		grow(state, rng)
	}
}

// consumeTurn applies the first pending marker matching the segment's
// position, if any, and returns it so the caller can hand it to the
// next segment.
func consumeTurn(seg *game.Segment) *game.TurnMarker {
	for i := range seg.Pending {
		if seg.Pending[i].At == seg.Pos {
			m := seg.Pending[i]
			seg.Pending = append(seg.Pending[:i], seg.Pending[i+1:]...)
			seg.Dir = m.Dir
			return &m
		}
	}
	return nil
}

// grow appends a new tail one step behind the current tail, extending
// the body backward along the tail's direction, and re-rolls the apple
// against the grown snake. Both happen in the same tick as the eating
// move.
func grow(state *game.GameState, rng *rand.Rand) {
	tail := state.Snake.Tail()
	state.Snake.Segments = append(state.Snake.Segments, game.Segment{
		Dir: tail.Dir,
		Pos: tail.Pos.Prev(tail.Dir),
	})
	state.Apple = game.PlaceApple(&state.Snake, rng)
}
