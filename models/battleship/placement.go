package battleship

import (
	"math/rand/v2"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

const MaxPlacementAttemptsDefault int = 1000

type Placer struct {
	rnd         *rand.Rand
	maxAttempts int
}

type PlacerOption func(*Placer)

func WithMaxAttempts(maxAttempts int) PlacerOption {
	return func(p *Placer) {
		if maxAttempts > 0 {
			p.maxAttempts = maxAttempts
		}
	}
}

// WithSeed makes the placement sequence reproducible.
func WithSeed(seed uint64) PlacerOption {
	return func(p *Placer) {
		p.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func NewPlacer(opts ...PlacerOption) *Placer {
	p := &Placer{
		rnd:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		maxAttempts: MaxPlacementAttemptsDefault,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Placer) MaxAttempts() int {
	return p.maxAttempts
}

// Anchors are sampled from [0, size-1) on both axes, so the last
// row and column never host an anchor.
func anchorRange(size int) int {
	return max(size-1, 1)
}

func (p *Placer) randomPlacement(grid Grid, kind Kind, length int) Placement {
	orientation := Horizontal
	if p.rnd.IntN(2) == 1 {
		orientation = Vertical
	}

	return Placement{
		Anchor: NewCoordinates(
			p.rnd.IntN(anchorRange(grid.Rows())),
			p.rnd.IntN(anchorRange(grid.Cols())),
		),
		Orientation: orientation,
		Kind:        kind,
		Length:      length,
	}
}

func fits(grid Grid, cells []Coordinates) bool {
	for _, c := range cells {
		if !grid.InBounds(c) || grid.At(c) != PositionStateEmpty {
			return false
		}
	}
	return true
}

// Place puts one piece on the grid, marking its cells with the kind code.
// The grid is left untouched when every attempt is rejected.
func (p *Placer) Place(grid Grid, kind Kind, length int) (Placement, error) {
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		placement := p.randomPlacement(grid, kind, length)
		cells := placement.Cells()
		if !fits(grid, cells) {
			continue
		}

		for _, c := range cells {
			grid[c.X][c.Y] = uint8(kind)
		}
		return placement, nil
	}

	return Placement{}, cerr.ErrPlacementAttemptsExhausted(uint8(kind), p.maxAttempts)
}

// PlaceFleet places every piece of the fleet in declaration order.
// The first exhausted piece aborts the whole fleet.
func (p *Placer) PlaceFleet(grid Grid, fleet Fleet) (FleetLayout, error) {
	layout := make(FleetLayout, 0, len(fleet))

	for _, spec := range fleet {
		kp := KindPlacements{Kind: spec.Kind, Placements: make([]Placement, 0, spec.Count)}

		for i := 0; i < spec.Count; i++ {
			placement, err := p.Place(grid, spec.Kind, spec.Length)
			if err != nil {
				return nil, err
			}
			kp.Placements = append(kp.Placements, placement)
		}
		layout = append(layout, kp)
	}
	return layout, nil
}
