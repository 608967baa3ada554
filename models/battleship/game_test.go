package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

func TestResolve(t *testing.T) {
	grid := NewGrid(GridSizeDefault, GridSizeDefault)
	a1 := NewCoordinates(0, 0)

	hit, alreadyHit := Resolve(a1, grid)
	if hit || alreadyHit {
		t.Fatalf("expected (false, false) on empty cell\tgot: (%v, %v)", hit, alreadyHit)
	}
	if grid.At(a1) != PositionStateEmpty {
		t.Fatal("a miss must not mutate the grid")
	}

	grid[0][0] = uint8(KindSingle)

	hit, alreadyHit = Resolve(a1, grid)
	if !hit || alreadyHit {
		t.Fatalf("expected (true, false) on first hit\tgot: (%v, %v)", hit, alreadyHit)
	}
	if !grid.IsHit(a1) {
		t.Fatal("expected cell to be marked hit")
	}

	for i := 0; i < 2; i++ {
		before := grid.Clone()
		hit, alreadyHit = Resolve(a1, grid)
		if !hit || !alreadyHit {
			t.Fatalf("expected (true, true) on repeat\tgot: (%v, %v)", hit, alreadyHit)
		}
		if !gridsEqual(before, grid) {
			t.Fatal("a repeated hit must not mutate the grid")
		}
	}
}

func gridsEqual(a, b Grid) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// singleCellGrid has one length-1 piece at A1.
func singleCellGrid() Grid {
	grid := NewGrid(GridSizeDefault, GridSizeDefault)
	grid[0][0] = uint8(KindSingle)
	return grid
}

func TestMatchWinEndsMatch(t *testing.T) {
	match := NewMatchFromGrids(singleCellGrid(), singleCellGrid(), AttemptCap)

	result, err := match.Play("A1")
	if err != nil {
		t.Fatal(err)
	}
	if result.Slot != PlayerSlotOne || result.Resolution != ResolutionHit {
		t.Fatalf("expected player one hit\tgot: %+v", result)
	}
	if !result.Won() {
		t.Fatalf("expected a win\tgot status: %d", result.MatchStatus)
	}
	if result.Score != HitReward+WinBonus {
		t.Fatalf("expected score: %d\tgot: %d", HitReward+WinBonus, result.Score)
	}

	if _, ok := match.NextSlot(); ok {
		t.Fatal("expected no next slot after a win")
	}
	if _, err := match.Play("A1"); !errors.Is(err, cerr.ErrMatchFinished) {
		t.Fatalf("expected ErrMatchFinished\tgot: %v", err)
	}

	outcome := match.Outcome()
	if outcome.Draw || len(outcome.Players) != 1 || outcome.Players[0].Number != 1 {
		t.Fatalf("expected player 1 to be the only outcome line\tgot: %+v", outcome)
	}

	two, _ := match.FetchPlayer(PlayerSlotTwo)
	if two.MatchStatus() != PlayerMatchStatusLost {
		t.Fatalf("expected player two lost\tgot: %d", two.MatchStatus())
	}
}

func TestMatchSecondPlayerWin(t *testing.T) {
	match := NewMatchFromGrids(singleCellGrid(), singleCellGrid(), AttemptCap)

	if _, err := match.Play("B2"); err != nil {
		t.Fatal(err)
	}
	result, err := match.Play("A1")
	if err != nil {
		t.Fatal(err)
	}
	if result.Slot != PlayerSlotTwo || !result.Won() {
		t.Fatalf("expected player two win\tgot: %+v", result)
	}
	if !match.IsOver() {
		t.Fatal("expected match over after player two win")
	}
}

func TestMatchInvalidGuessKeepsState(t *testing.T) {
	match := NewMatchFromGrids(singleCellGrid(), singleCellGrid(), AttemptCap)

	tests := []struct {
		name   string
		guess  string
		target error
	}{
		{name: "malformed", guess: "11", target: cerr.ErrInvalidFormat},
		{name: "out of bound", guess: "A16", target: cerr.ErrOutOfBounds},
		{name: "empty", guess: "", target: cerr.ErrInvalidFormat},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := match.Play(test.guess); !errors.Is(err, test.target) {
				t.Fatalf("expected: %v\tgot: %v", test.target, err)
			}

			slot, ok := match.NextSlot()
			if !ok || slot != PlayerSlotOne {
				t.Fatalf("expected slot %d to still be playing\tgot: %d", PlayerSlotOne, slot)
			}
			one, _ := match.FetchPlayer(PlayerSlotOne)
			if one.Attempts() != 0 {
				t.Fatalf("expected no attempt used\tgot: %d", one.Attempts())
			}
		})
	}
}

func TestMatchAlreadyHitScoresNothing(t *testing.T) {
	grid := NewGrid(GridSizeDefault, GridSizeDefault)
	grid[0][0] = uint8(KindDouble)
	grid[0][1] = uint8(KindDouble)
	match := NewMatchFromGrids(singleCellGrid(), grid, AttemptCap)

	plays := []struct {
		guess      string
		resolution Resolution
		score      int
	}{
		{guess: "A1", resolution: ResolutionHit, score: HitReward},
		{guess: "O15", resolution: ResolutionMiss},
		{guess: "a1", resolution: ResolutionAlreadyHit, score: HitReward},
		{guess: "B1", resolution: ResolutionMiss},
	}

	lastScore := 0
	for _, play := range plays {
		result, err := match.Play(play.guess)
		if err != nil {
			t.Fatal(err)
		}
		if result.Slot != PlayerSlotOne {
			continue
		}
		if result.Resolution != play.resolution {
			t.Fatalf("guess %s expected: %s\tgot: %s", play.guess, play.resolution, result.Resolution)
		}
		if result.Score != play.score {
			t.Fatalf("guess %s expected score: %d\tgot: %d", play.guess, play.score, result.Score)
		}
		if result.Score < lastScore {
			t.Fatalf("score decreased from %d to %d", lastScore, result.Score)
		}
		lastScore = result.Score
	}

	one, _ := match.FetchPlayer(PlayerSlotOne)
	if one.Hits() != 1 {
		t.Fatalf("expected hits: 1\tgot: %d", one.Hits())
	}
}

func TestMatchExhaustedDraw(t *testing.T) {
	match := NewMatchFromGrids(singleCellGrid(), singleCellGrid(), 2)

	expectedSlots := []int{PlayerSlotOne, PlayerSlotTwo, PlayerSlotOne, PlayerSlotTwo}
	for i, expected := range expectedSlots {
		slot, ok := match.NextSlot()
		if !ok || slot != expected {
			t.Fatalf("turn %d expected slot: %d\tgot: %d (ok=%v)", i, expected, slot, ok)
		}
		if _, err := match.Play("C3"); err != nil {
			t.Fatal(err)
		}
	}

	if match.Status() != MatchStatusExhausted {
		t.Fatalf("expected exhausted status\tgot: %d", match.Status())
	}

	outcome := match.Outcome()
	if !outcome.Draw || len(outcome.Players) != 2 {
		t.Fatalf("expected a draw with both players\tgot: %+v", outcome)
	}
	for _, p := range outcome.Players {
		if p.AttemptsLeft != 0 || p.MatchStatus != PlayerMatchStatusDraw {
			t.Fatalf("expected no attempts left and draw\tgot: %+v", p)
		}
	}
}

func TestMatchSkipsCappedPlayer(t *testing.T) {
	match := newMatch([playersPerMatch]*Player{
		NewPlayer(PlayerSlotOne, singleCellGrid(), nil, 1),
		NewPlayer(PlayerSlotTwo, singleCellGrid(), nil, 3),
	})

	expectedSlots := []int{PlayerSlotOne, PlayerSlotTwo, PlayerSlotTwo, PlayerSlotTwo}
	for i, expected := range expectedSlots {
		slot, ok := match.NextSlot()
		if !ok || slot != expected {
			t.Fatalf("turn %d expected slot: %d\tgot: %d (ok=%v)", i, expected, slot, ok)
		}
		result, err := match.Play("E5")
		if err != nil {
			t.Fatal(err)
		}
		if result.Slot != expected {
			t.Fatalf("turn %d played by slot %d", i, result.Slot)
		}
	}

	if _, ok := match.NextSlot(); ok {
		t.Fatal("expected no slot once both players are capped")
	}
	if !match.Outcome().Draw {
		t.Fatal("expected a scoreless draw")
	}
}

func TestMatchExhaustedHigherScoreWins(t *testing.T) {
	grid := NewGrid(GridSizeDefault, GridSizeDefault)
	grid[0][0] = uint8(KindDouble)
	grid[0][1] = uint8(KindDouble)
	match := NewMatchFromGrids(grid.Clone(), grid, 1)

	if _, err := match.Play("A1"); err != nil {
		t.Fatal(err)
	}
	if _, err := match.Play("N14"); err != nil {
		t.Fatal(err)
	}

	outcome := match.Outcome()
	if outcome.Status != MatchStatusExhausted || outcome.Draw {
		t.Fatalf("expected exhausted match with a winner\tgot: %+v", outcome)
	}
	if len(outcome.Players) != 1 || outcome.Players[0].Number != 1 || outcome.Players[0].Score != HitReward {
		t.Fatalf("expected player 1 with %d points\tgot: %+v", HitReward, outcome.Players)
	}
}

func TestMatchWinThreshold(t *testing.T) {
	grid := NewGrid(5, 5)
	grid[1][1] = uint8(KindDouble)
	grid[1][2] = uint8(KindDouble)
	grid[3][0] = uint8(KindSingle)
	match := NewMatchFromGrids(NewGrid(5, 5), grid, AttemptCap)

	one, _ := match.FetchPlayer(PlayerSlotOne)
	two, _ := match.FetchPlayer(PlayerSlotTwo)
	if two.TotalCells() != 3 {
		t.Fatalf("expected player two cells: 3\tgot: %d", two.TotalCells())
	}

	guesses := []string{"B2", "A1", "B3", "A1", "D1"}
	for i, guess := range guesses {
		result, err := match.Play(guess)
		if err != nil {
			t.Fatal(err)
		}
		won := one.Hits() == two.TotalCells()
		if result.Slot == PlayerSlotOne && result.Won() != won {
			t.Fatalf("turn %d: won=%v while hits=%d of %d", i, result.Won(), one.Hits(), two.TotalCells())
		}
	}

	if one.MatchStatus() != PlayerMatchStatusWon {
		t.Fatalf("expected player one won\tgot: %d", one.MatchStatus())
	}
	if one.Score() != 3*HitReward+WinBonus {
		t.Fatalf("expected score: %d\tgot: %d", 3*HitReward+WinBonus, one.Score())
	}
}

func TestNewMatchPlacesBothFleets(t *testing.T) {
	match, err := NewMatch(WithPlacer(NewPlacer(WithSeed(11))))
	if err != nil {
		t.Fatal(err)
	}

	gridOne, gridTwo := match.Grids()
	for _, grid := range []Grid{gridOne, gridTwo} {
		if grid.CountOccupied() != DefaultFleet().TotalCells() {
			t.Fatalf("expected occupied: %d\tgot: %d", DefaultFleet().TotalCells(), grid.CountOccupied())
		}
	}

	layoutOne, layoutTwo := match.Layouts()
	cells := DefaultFleet().TotalCells()
	if layoutOne.TotalCells() != cells || layoutTwo.TotalCells() != cells {
		t.Fatalf("expected %d cells per layout\tgot: %d and %d", cells, layoutOne.TotalCells(), layoutTwo.TotalCells())
	}

	snap := match.Snapshot()
	if snap.Uuid != match.Uuid() || snap.NextSlot != PlayerSlotOne || len(snap.Players) != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Players[0].AttemptsLeft != AttemptCap {
		t.Fatalf("expected attempts left: %d\tgot: %d", AttemptCap, snap.Players[0].AttemptsLeft)
	}
}

func TestNewMatchPlacementFailure(t *testing.T) {
	_, err := NewMatch(WithGridSize(4), WithPlacer(NewPlacer(WithSeed(5), WithMaxAttempts(100))))
	if !errors.Is(err, cerr.ErrPlacementExhausted) {
		t.Fatalf("expected ErrPlacementExhausted\tgot: %v", err)
	}
}

func TestFetchPlayerInvalidSlot(t *testing.T) {
	match := NewMatchFromGrids(singleCellGrid(), singleCellGrid(), AttemptCap)
	if _, err := match.FetchPlayer(2); !errors.Is(err, cerr.ErrInvalidPlayerSlot) {
		t.Fatalf("expected ErrInvalidPlayerSlot\tgot: %v", err)
	}
}
