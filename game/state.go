// Package game defines the core state types for the snake simulation.
//
// The state is a fixed-size square grid addressed by linear cell index,
// a snake made of segments that each carry their own direction, and a
// single apple. It is designed to be cheaply clonable so callers can
// hold committed copies while the controller advances the live state.
package game

import "math/rand"

// BoardSize is the side length of the square board. The grid has
// BoardSize*BoardSize cells addressed by linear index.
const BoardSize = 12

// StartLength is the number of segments the snake spawns with.
const StartLength = 4

// Direction is one of the four movement directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "invalid"
}

// Opposite returns the reverse direction. It panics on an invalid
// direction; directions only enter the system from the typed constants.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	panic("game: invalid direction")
}

// Cell is a linear index into the board. Valid cells are in
// [0, BoardSize*BoardSize); geometry results may fall outside that
// range and callers interpret out-of-range values as off-board.
type Cell int

// Row returns the cell's row, counting down from the top.
func (c Cell) Row() int { return int(c) / BoardSize }

// Col returns the cell's column.
func (c Cell) Col() int { return int(c) % BoardSize }

// Next returns the one-step successor cell in the given direction.
// No bounds checking is done: the result may be negative or beyond the
// last cell, and moving across the left or right edge silently lands on
// the adjacent row. Collision detection is the caller's job.
func (c Cell) Next(d Direction) Cell {
	switch d {
	case Up:
		return c - BoardSize
	case Down:
		return c + BoardSize
	case Left:
		return c - 1
	case Right:
		return c + 1
	}
	panic("game: invalid direction")
}

// Prev returns the one-step predecessor cell, i.e. the cell a segment
// moving in d just vacated. Used to extend the tail backward on growth.
func (c Cell) Prev(d Direction) Cell {
	return c.Next(d.Opposite())
}

// TurnMarker records that the head changed direction at a cell. Each
// following segment replays the turn when its own position reaches At,
// then passes the marker to the segment behind it.
type TurnMarker struct {
	Dir Direction
	At  Cell
}

// Segment is one cell of the snake's body. Pending holds turn markers
// that have been handed down from the segment ahead but whose cell this
// segment has not reached yet, oldest first.
type Segment struct {
	Dir     Direction
	Pos     Cell
	Pending []TurnMarker
}

// Snake is the ordered body, head first. Length is always >= 1.
type Snake struct {
	Segments []Segment
}

// Head returns the head segment. Panics on an empty snake; an empty
// snake is a constructor bug, not a runtime condition.
func (s *Snake) Head() *Segment {
	if len(s.Segments) == 0 {
		panic("game: empty snake")
	}
	return &s.Segments[0]
}

// Tail returns the last segment.
func (s *Snake) Tail() *Segment {
	if len(s.Segments) == 0 {
		panic("game: empty snake")
	}
	return &s.Segments[len(s.Segments)-1]
}

// Len returns the number of segments.
func (s *Snake) Len() int { return len(s.Segments) }

// Occupies reports whether any segment sits on the cell.
func (s *Snake) Occupies(c Cell) bool {
	for i := range s.Segments {
		if s.Segments[i].Pos == c {
			return true
		}
	}
	return false
}

// GameState is the complete simulation state. Once Lost is set the
// state is terminal and must not be mutated again.
type GameState struct {
	Snake Snake
	Apple Cell
	Lost  bool
}

// NewGameState builds the starting state: a straight snake of
// StartLength segments centered on the board, head moving right, and an
// apple on a free cell. rng may be nil for deterministic placement.
func NewGameState(rng *rand.Rand) *GameState {
	head := Cell(BoardSize/2*BoardSize + StartLength)

	segs := make([]Segment, StartLength)
	for i := range segs {
		segs[i] = Segment{Dir: Right, Pos: head - Cell(i)}
	}

	state := &GameState{Snake: Snake{Segments: segs}}
	state.Apple = PlaceApple(&state.Snake, rng)
	return state
}

// Clone performs a deep copy of the game state.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}

	out := &GameState{
		Apple: s.Apple,
		Lost:  s.Lost,
	}

	if len(s.Snake.Segments) > 0 {
		out.Snake.Segments = make([]Segment, len(s.Snake.Segments))
		for i, seg := range s.Snake.Segments {
			cp := Segment{Dir: seg.Dir, Pos: seg.Pos}
			if len(seg.Pending) > 0 {
				cp.Pending = make([]TurnMarker, len(seg.Pending))
				copy(cp.Pending, seg.Pending)
			}
			out.Snake.Segments[i] = cp
		}
	}

	return out
}
