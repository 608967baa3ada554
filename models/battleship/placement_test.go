package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

func TestPlaceFleetDefault(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		grid := NewGrid(GridSizeDefault, GridSizeDefault)
		fleet := DefaultFleet()

		layout, err := NewPlacer(WithSeed(seed)).PlaceFleet(grid, fleet)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		if got := grid.CountOccupied(); got != fleet.TotalCells() {
			t.Fatalf("seed %d: expected occupied cells: %d\tgot: %d", seed, fleet.TotalCells(), got)
		}

		claimed := make(map[Coordinates]Kind, fleet.TotalCells())
		pieces := 0
		for _, kp := range layout {
			for _, p := range kp.Placements {
				pieces++
				if p.Anchor.X >= GridSizeDefault-1 || p.Anchor.Y >= GridSizeDefault-1 {
					t.Fatalf("seed %d: anchor %s outside sampling range", seed, p)
				}
				for _, c := range p.Cells() {
					if !grid.InBounds(c) {
						t.Fatalf("seed %d: cell %+v of %s out of bounds", seed, c, p)
					}
					if _, taken := claimed[c]; taken {
						t.Fatalf("seed %d: cell %+v claimed twice", seed, c)
					}
					claimed[c] = p.Kind
					if grid.At(c) != uint8(p.Kind) {
						t.Fatalf("seed %d: expected kind code %d at %+v\tgot: %d", seed, p.Kind, c, grid.At(c))
					}
				}
			}
		}

		if len(claimed) != fleet.TotalCells() {
			t.Fatalf("seed %d: expected distinct cells: %d\tgot: %d", seed, fleet.TotalCells(), len(claimed))
		}
		if pieces != fleet.TotalPieces() {
			t.Fatalf("seed %d: expected pieces: %d\tgot: %d", seed, fleet.TotalPieces(), pieces)
		}
	}
}

func TestPlaceFleetOrder(t *testing.T) {
	layout, err := NewPlacer(WithSeed(7)).PlaceFleet(NewGrid(GridSizeDefault, GridSizeDefault), DefaultFleet())
	if err != nil {
		t.Fatal(err)
	}

	expected := []Kind{KindQuad, KindPenta, KindSingle, KindDouble}
	if len(layout) != len(expected) {
		t.Fatalf("expected kinds: %d\tgot: %d", len(expected), len(layout))
	}
	for i, kp := range layout {
		if kp.Kind != expected[i] {
			t.Fatalf("expected kind %d at %d\tgot: %d", expected[i], i, kp.Kind)
		}
	}
}

func TestPlaceFleetExhausted(t *testing.T) {
	grid := NewGrid(4, 4)

	_, err := NewPlacer(WithSeed(3)).PlaceFleet(grid, DefaultFleet())
	if !errors.Is(err, cerr.ErrPlacementExhausted) {
		t.Fatalf("expected ErrPlacementExhausted\tgot: %v", err)
	}

	var exhausted *cerr.PlacementExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected *PlacementExhaustedError\tgot: %T", err)
	}
	if exhausted.Attempts != MaxPlacementAttemptsDefault {
		t.Fatalf("expected attempts: %d\tgot: %d", MaxPlacementAttemptsDefault, exhausted.Attempts)
	}
}

func TestPlaceLeavesGridOnFailure(t *testing.T) {
	grid := NewGrid(3, 3)

	// Nothing of length 5 fits in 3 cells
	_, err := NewPlacer(WithSeed(1), WithMaxAttempts(50)).Place(grid, KindPenta, 5)
	if !errors.Is(err, cerr.ErrPlacementExhausted) {
		t.Fatalf("expected ErrPlacementExhausted\tgot: %v", err)
	}
	if grid.CountOccupied() != 0 {
		t.Fatalf("expected untouched grid\tgot: %d occupied", grid.CountOccupied())
	}
}

func TestPlacementCells(t *testing.T) {
	tests := []struct {
		name      string
		placement Placement
		last      Coordinates
	}{
		{
			name:      "horizontal",
			placement: Placement{Anchor: NewCoordinates(2, 6), Orientation: Horizontal, Kind: KindQuad, Length: 4},
			last:      NewCoordinates(2, 9),
		},
		{
			name:      "vertical",
			placement: Placement{Anchor: NewCoordinates(2, 6), Orientation: Vertical, Kind: KindDouble, Length: 2},
			last:      NewCoordinates(3, 6),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cells := test.placement.Cells()
			if len(cells) != test.placement.Length {
				t.Fatalf("expected cells: %d\tgot: %d", test.placement.Length, len(cells))
			}
			if cells[0] != test.placement.Anchor || cells[len(cells)-1] != test.last {
				t.Fatalf("expected span %+v..%+v\tgot: %+v", test.placement.Anchor, test.last, cells)
			}
		})
	}
}

func TestKindPlacementsString(t *testing.T) {
	kp := KindPlacements{
		Kind: KindQuad,
		Placements: []Placement{
			{Anchor: NewCoordinates(2, 6), Orientation: Horizontal, Kind: KindQuad, Length: 4},
			{Anchor: NewCoordinates(0, 0), Orientation: Vertical, Kind: KindQuad, Length: 4},
		},
	}

	if got := kp.String(); got != "1:C7H | A1V" {
		t.Fatalf("expected: %q\tgot: %q", "1:C7H | A1V", got)
	}
}

func TestDefaultFleetTotals(t *testing.T) {
	fleet := DefaultFleet()
	if fleet.TotalPieces() != 22 {
		t.Fatalf("expected pieces: 22\tgot: %d", fleet.TotalPieces())
	}
	if fleet.TotalCells() != 50 {
		t.Fatalf("expected cells: 50\tgot: %d", fleet.TotalCells())
	}
}
