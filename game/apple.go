// apple.go implements apple placement on free cells.

package game

import (
	"math/rand"
)

// PlaceApple picks a uniformly random cell not occupied by the snake,
// redrawing until it finds one. If rng is nil, draws come from a
// deterministic hash of the snake state instead, so tests and headless
// runs are reproducible.
//
// Termination requires at least one free cell. A snake covering the
// whole board would loop forever; that configuration is unreachable in
// play (the winning move would eat the last apple and there would be no
// free cell to place it on) and is deliberately not guarded.
func PlaceApple(snake *Snake, rng *rand.Rand) Cell {
	const cells = BoardSize * BoardSize

	salt := uint64(snake.Head().Pos)<<32 | uint64(snake.Len())
	for attempt := uint64(0); ; attempt++ {
		var draw Cell
		if rng != nil {
			draw = Cell(rng.Intn(cells))
		} else {
			draw = Cell(deterministicU64Fast(salt, attempt) % cells)
		}
		if !snake.Occupies(draw) {
			return draw
		}
	}
}

// deterministicU64Fast is a simple deterministic hasher for reproducibility.
func deterministicU64Fast(a, b uint64) uint64 {
	// Variant of splitmix64
	x := a + b
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
