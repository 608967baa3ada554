package battleship

import "fmt"

const (
	HitReward  int = 3
	WinBonus   int = 5
	AttemptCap int = 25
)

type Resolution uint8

const (
	ResolutionMiss Resolution = iota
	ResolutionHit
	ResolutionAlreadyHit
)

func (r Resolution) String() string {
	switch r {
	case ResolutionHit:
		return "hit"
	case ResolutionAlreadyHit:
		return "already_hit"
	default:
		return "miss"
	}
}

func (r Resolution) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Resolution) UnmarshalText(text []byte) error {
	switch string(text) {
	case "hit":
		*r = ResolutionHit
	case "already_hit":
		*r = ResolutionAlreadyHit
	case "miss":
		*r = ResolutionMiss
	default:
		return fmt.Errorf("unknown resolution: %q", text)
	}
	return nil
}

// Resolve fires at c on the opponent grid. c must be in bounds.
// A miss leaves the grid untouched; only an occupied cell turns into a hit.
func Resolve(c Coordinates, grid Grid) (hit, alreadyHit bool) {
	switch grid.At(c) {
	case PositionStateEmpty:
		return false, false

	case PositionStateHit:
		return true, true
	}

	// Passed this line means the cell holds a kind code
	grid[c.X][c.Y] = PositionStateHit
	return true, false
}

func resolutionOf(hit, alreadyHit bool) Resolution {
	if !hit {
		return ResolutionMiss
	}
	if alreadyHit {
		return ResolutionAlreadyHit
	}
	return ResolutionHit
}

type TurnResult struct {
	Slot         int         `json:"slot"`
	Guess        Coordinates `json:"guess"`
	Resolution   Resolution  `json:"resolution"`
	Score        int         `json:"score"`
	Hits         int         `json:"hits"`
	AttemptsLeft int         `json:"attempts_left"`
	MatchStatus  int         `json:"match_status"`
}

// Won reports whether this turn won the match for the player.
func (tr TurnResult) Won() bool {
	return tr.MatchStatus == MatchStatusWon
}

func (tr TurnResult) Exhausted() bool {
	return tr.MatchStatus == MatchStatusExhausted
}
