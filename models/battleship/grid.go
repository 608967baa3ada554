package battleship

const (
	GridSizeDefault int = 15
)

const (
	PositionStateEmpty uint8 = 0

	// Kind codes (1..4 by default) mark occupied cells.

	// Choose the max uint8 so the hit code can
	// never collide with a kind code
	PositionStateHit uint8 = 255
)

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

// Grid is indexed as grid[x][y], x being the row.
type Grid [][]uint8

// Creates a new grid of the given size.
// All indexes are zero/PositionStateEmpty
func NewGrid(rows, cols int) Grid {
	grid := make(Grid, rows)

	for i := 0; i < rows; i++ {
		grid[i] = make([]uint8, cols)
	}
	return grid
}

func (g Grid) Rows() int {
	return len(g)
}

func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) InBounds(c Coordinates) bool {
	return ValidateCoordinates(c, g.Rows(), g.Cols())
}

func (g Grid) At(c Coordinates) uint8 {
	return g[c.X][c.Y]
}

func (g Grid) IsOccupied(c Coordinates) bool {
	code := g.At(c)
	return code != PositionStateEmpty && code != PositionStateHit
}

func (g Grid) IsHit(c Coordinates) bool {
	return g.At(c) == PositionStateHit
}

// CountOccupied counts every non-empty cell, hit or not.
func (g Grid) CountOccupied() int {
	count := 0
	for _, row := range g {
		for _, cell := range row {
			if cell != PositionStateEmpty {
				count++
			}
		}
	}
	return count
}

func (g Grid) Clone() Grid {
	clone := make(Grid, len(g))
	for i := range g {
		clone[i] = append([]uint8(nil), g[i]...)
	}
	return clone
}
