package game

// CellContent is what a renderer should draw at one cell.
type CellContent uint8

const (
	Empty CellContent = iota
	SnakeHead
	SnakeBody
	Apple
)

// Snapshot is a read-only view of a committed state, sized for a
// renderer to redraw the full grid. It shares no memory with the live
// state.
type Snapshot struct {
	Cells [BoardSize * BoardSize]CellContent
	Lost  bool
	Len   int
}

// Snapshot renders the current state into a Snapshot. Only call this on
// committed states; the loop publishes one after every applied event.
func (s *GameState) Snapshot() Snapshot {
	var snap Snapshot
	snap.Lost = s.Lost
	snap.Len = s.Snake.Len()

	snap.Cells[s.Apple] = Apple
	for i := range s.Snake.Segments {
		content := SnakeBody
		if i == 0 {
			content = SnakeHead
		}
		snap.Cells[s.Snake.Segments[i].Pos] = content
	}
	return snap
}
