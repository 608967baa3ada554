package battleship

import (
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindQuad Kind = iota + 1
	KindPenta
	KindSingle
	KindDouble
)

func (k Kind) String() string {
	return strconv.Itoa(int(k))
}

// PieceSpec declares how many pieces of a kind a fleet has.
type PieceSpec struct {
	Kind   Kind
	Length int
	Count  int
}

// Fleet is ordered; placement follows declaration order.
type Fleet []PieceSpec

func DefaultFleet() Fleet {
	return Fleet{
		{Kind: KindQuad, Length: 4, Count: 5},
		{Kind: KindPenta, Length: 5, Count: 2},
		{Kind: KindSingle, Length: 1, Count: 10},
		{Kind: KindDouble, Length: 2, Count: 5},
	}
}

func (f Fleet) TotalPieces() int {
	total := 0
	for _, spec := range f {
		total += spec.Count
	}
	return total
}

func (f Fleet) TotalCells() int {
	total := 0
	for _, spec := range f {
		total += spec.Count * spec.Length
	}
	return total
}

type Placement struct {
	Anchor      Coordinates
	Orientation Orientation
	Kind        Kind
	Length      int
}

// Cells returns every coordinate the piece spans from its anchor.
func (p Placement) Cells() []Coordinates {
	cells := make([]Coordinates, p.Length)
	for i := 0; i < p.Length; i++ {
		if p.Orientation == Horizontal {
			cells[i] = NewCoordinates(p.Anchor.X, p.Anchor.Y+i)
		} else {
			cells[i] = NewCoordinates(p.Anchor.X+i, p.Anchor.Y)
		}
	}
	return cells
}

// String formats the placement the way it is logged, e.g. C7H.
func (p Placement) String() string {
	return FormatCoordinates(p.Anchor) + p.Orientation.String()
}

type KindPlacements struct {
	Kind       Kind
	Placements []Placement
}

func (kp KindPlacements) String() string {
	coords := make([]string, len(kp.Placements))
	for i, p := range kp.Placements {
		coords[i] = p.String()
	}
	return kp.Kind.String() + ":" + strings.Join(coords, " | ")
}

type FleetLayout []KindPlacements

func (fl FleetLayout) TotalCells() int {
	total := 0
	for _, kp := range fl {
		for _, p := range kp.Placements {
			total += p.Length
		}
	}
	return total
}
