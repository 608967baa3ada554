package battleship

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
	PlayerMatchStatusDraw      = 2
)

type Player struct {
	slot        int
	score       int
	hits        int
	attempts    int
	attemptCap  int
	matchStatus int
	totalCells  int
	defenceGrid Grid
	fleet       FleetLayout
}

func NewPlayer(slot int, defenceGrid Grid, fleet FleetLayout, attemptCap int) *Player {
	return &Player{
		slot:        slot,
		attemptCap:  attemptCap,
		matchStatus: PlayerMatchStatusUndefined,
		totalCells:  defenceGrid.CountOccupied(),
		defenceGrid: defenceGrid,
		fleet:       fleet,
	}
}

func (p *Player) Slot() int {
	return p.slot
}

// Number is the 1-based player number used in text output.
func (p *Player) Number() int {
	return p.slot + 1
}

func (p *Player) Score() int {
	return p.score
}

func (p *Player) Hits() int {
	return p.hits
}

func (p *Player) Attempts() int {
	return p.attempts
}

func (p *Player) AttemptsLeft() int {
	return max(p.attemptCap-p.attempts, 0)
}

func (p *Player) IsOutOfAttempts() bool {
	return p.attempts >= p.attemptCap
}

func (p *Player) MatchStatus() int {
	return p.matchStatus
}

func (p *Player) Fleet() FleetLayout {
	return p.fleet
}

// TotalCells is what the opponent has to hit to win.
// It is counted once, before any shot is fired.
func (p *Player) TotalCells() int {
	return p.totalCells
}

func (p *Player) recordHit() {
	p.score += HitReward
	p.hits++
}

func (p *Player) recordWin() {
	p.score += WinBonus
	p.matchStatus = PlayerMatchStatusWon
}

func (p *Player) useAttempt() {
	p.attempts++
}

func (p *Player) setMatchStatus(status int) {
	p.matchStatus = status
}

type PlayerSnapshot struct {
	Number       int `json:"player"`
	Score        int `json:"score"`
	Hits         int `json:"hits"`
	Attempts     int `json:"attempts"`
	AttemptsLeft int `json:"attempts_left"`
	MatchStatus  int `json:"player_match_status"`
}

func (p *Player) snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Number:       p.Number(),
		Score:        p.score,
		Hits:         p.hits,
		Attempts:     p.attempts,
		AttemptsLeft: p.AttemptsLeft(),
		MatchStatus:  p.matchStatus,
	}
}
