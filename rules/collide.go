package rules

import (
	"github.com/jrubins/snake/game"
)

// WouldCollide reports whether moving the head one step in dir would
// end the game. It must be called with the proposed direction before
// any mutation; the decision to move or to lose depends on it.
//
// A move collides when the head's successor cell:
//   - falls above the first row (index < 0),
//   - falls below the last row (index >= BoardSize²),
//   - wraps across the right edge (head on the last column moving
//     right) or the left edge (head on column 0 moving left) — the
//     board is not a torus, a wrapped index lands on the next row and
//     must be flagged, or
//   - lands on any current segment, the tail's pre-move cell included.
func WouldCollide(snake *game.Snake, dir game.Direction) bool {
	head := snake.Head()

	switch {
	case dir == game.Right && head.Pos.Col() == game.BoardSize-1:
		return true
	case dir == game.Left && head.Pos.Col() == 0:
		return true
	}

	next := head.Pos.Next(dir)
	if next < 0 || next >= game.BoardSize*game.BoardSize {
		return true
	}

	return snake.Occupies(next)
}
