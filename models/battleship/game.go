package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"

	"github.com/google/uuid"
)

const (
	MatchStatusInProgress int = iota
	MatchStatusWon
	MatchStatusExhausted
)

const (
	PlayerSlotOne int = iota
	PlayerSlotTwo

	playersPerMatch = 2
	noWinner        = -1
)

type matchConfig struct {
	gridSize   int
	fleet      Fleet
	attemptCap int
	placer     *Placer
}

type MatchOption func(*matchConfig)

// WithGridSize is meant for tests; matches are played on the default grid.
func WithGridSize(size int) MatchOption {
	return func(mc *matchConfig) {
		mc.gridSize = size
	}
}

func WithFleet(fleet Fleet) MatchOption {
	return func(mc *matchConfig) {
		mc.fleet = fleet
	}
}

func WithAttemptCap(attemptCap int) MatchOption {
	return func(mc *matchConfig) {
		mc.attemptCap = attemptCap
	}
}

func WithPlacer(placer *Placer) MatchOption {
	return func(mc *matchConfig) {
		mc.placer = placer
	}
}

// Match owns both boards and both score states. Play is the only writer;
// readers such as the spectator feed go through Snapshot.
type Match struct {
	uuid    string
	players [playersPerMatch]*Player
	turn    int
	status  int
	winner  int
	mu      sync.RWMutex
}

// NewMatch places a fleet on a fresh grid for each player.
// A placement failure aborts the match before any turn is played.
func NewMatch(opts ...MatchOption) (*Match, error) {
	mc := matchConfig{
		gridSize:   GridSizeDefault,
		fleet:      DefaultFleet(),
		attemptCap: AttemptCap,
	}
	for _, opt := range opts {
		opt(&mc)
	}
	if mc.placer == nil {
		mc.placer = NewPlacer()
	}

	var players [playersPerMatch]*Player
	for slot := range players {
		grid := NewGrid(mc.gridSize, mc.gridSize)
		layout, err := mc.placer.PlaceFleet(grid, mc.fleet)
		if err != nil {
			return nil, err
		}
		players[slot] = NewPlayer(slot, grid, layout, mc.attemptCap)
	}

	return newMatch(players), nil
}

// NewMatchFromGrids starts a match on boards that are already filled.
func NewMatchFromGrids(gridOne, gridTwo Grid, attemptCap int) *Match {
	return newMatch([playersPerMatch]*Player{
		NewPlayer(PlayerSlotOne, gridOne, nil, attemptCap),
		NewPlayer(PlayerSlotTwo, gridTwo, nil, attemptCap),
	})
}

func newMatch(players [playersPerMatch]*Player) *Match {
	return &Match{
		uuid:    uuid.NewString()[:6],
		players: players,
		turn:    PlayerSlotOne,
		status:  MatchStatusInProgress,
		winner:  noWinner,
	}
}

func (m *Match) Uuid() string {
	return m.uuid
}

// FetchPlayer returns the player of slot 0 or 1.
func (m *Match) FetchPlayer(slot int) (*Player, error) {
	if slot < 0 || slot >= playersPerMatch {
		return nil, cerr.ErrPlayerSlotInvalid(slot)
	}
	return m.players[slot], nil
}

func (m *Match) Layouts() (FleetLayout, FleetLayout) {
	return m.players[PlayerSlotOne].fleet, m.players[PlayerSlotTwo].fleet
}

func (m *Match) Status() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Match) IsOver() bool {
	return m.Status() != MatchStatusInProgress
}

// NextSlot returns the slot expected to guess next. A player out of
// attempts is skipped; false means the match is over.
func (m *Match) NextSlot() (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nextSlotLocked()
}

func (m *Match) nextSlotLocked() (int, bool) {
	if m.status != MatchStatusInProgress {
		return noWinner, false
	}

	for i := 0; i < playersPerMatch; i++ {
		slot := (m.turn + i) % playersPerMatch
		if !m.players[slot].IsOutOfAttempts() {
			return slot, true
		}
	}
	return noWinner, false
}

// Play validates a raw guess for the current slot and resolves it against
// the opponent grid. An invalid guess returns an error and changes nothing.
func (m *Match) Play(guess string) (TurnResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, ok := m.nextSlotLocked()
	if !ok {
		return TurnResult{}, cerr.ErrMatchIsFinished(m.uuid)
	}

	defender := m.players[1-slot]
	coords, err := defender.defenceGrid.ParseGuess(guess)
	if err != nil {
		return TurnResult{}, err
	}

	return m.resolveLocked(slot, coords), nil
}

func (m *Match) resolveLocked(slot int, coords Coordinates) TurnResult {
	attacker := m.players[slot]
	defender := m.players[1-slot]

	hit, alreadyHit := Resolve(coords, defender.defenceGrid)
	if hit && !alreadyHit {
		attacker.recordHit()

		if attacker.hits == defender.TotalCells() {
			attacker.recordWin()
			defender.setMatchStatus(PlayerMatchStatusLost)
			m.status = MatchStatusWon
			m.winner = slot
		}
	}
	attacker.useAttempt()

	if m.status == MatchStatusInProgress {
		m.turn = 1 - slot
		if _, ok := m.nextSlotLocked(); !ok {
			m.finishExhaustedLocked()
		}
	}

	return TurnResult{
		Slot:         slot,
		Guess:        coords,
		Resolution:   resolutionOf(hit, alreadyHit),
		Score:        attacker.score,
		Hits:         attacker.hits,
		AttemptsLeft: attacker.AttemptsLeft(),
		MatchStatus:  m.status,
	}
}

// Both players are out of attempts: the higher score wins, equal is a draw.
func (m *Match) finishExhaustedLocked() {
	m.status = MatchStatusExhausted

	one, two := m.players[PlayerSlotOne], m.players[PlayerSlotTwo]
	switch {
	case one.score > two.score:
		m.winner = PlayerSlotOne
		one.setMatchStatus(PlayerMatchStatusWon)
		two.setMatchStatus(PlayerMatchStatusLost)
	case two.score > one.score:
		m.winner = PlayerSlotTwo
		two.setMatchStatus(PlayerMatchStatusWon)
		one.setMatchStatus(PlayerMatchStatusLost)
	default:
		m.winner = noWinner
		one.setMatchStatus(PlayerMatchStatusDraw)
		two.setMatchStatus(PlayerMatchStatusDraw)
	}
}

type Outcome struct {
	Status  int              `json:"status"`
	Draw    bool             `json:"draw"`
	Players []PlayerSnapshot `json:"players"`
}

// Outcome lists the winner, or both players on a draw. Before the match
// is over it reports who leads on score.
func (m *Match) Outcome() Outcome {
	m.mu.RLock()
	defer m.mu.RUnlock()

	one, two := m.players[PlayerSlotOne], m.players[PlayerSlotTwo]
	winner := m.winner
	if m.status == MatchStatusInProgress {
		switch {
		case one.score > two.score:
			winner = PlayerSlotOne
		case two.score > one.score:
			winner = PlayerSlotTwo
		}
	}

	if winner == noWinner {
		return Outcome{
			Status:  m.status,
			Draw:    true,
			Players: []PlayerSnapshot{one.snapshot(), two.snapshot()},
		}
	}
	return Outcome{
		Status:  m.status,
		Players: []PlayerSnapshot{m.players[winner].snapshot()},
	}
}

type MatchSnapshot struct {
	Uuid     string           `json:"match_uuid"`
	Status   int              `json:"status"`
	NextSlot int              `json:"next_slot"`
	Players  []PlayerSnapshot `json:"players"`
}

func (m *Match) Snapshot() MatchSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	next, _ := m.nextSlotLocked()
	return MatchSnapshot{
		Uuid:     m.uuid,
		Status:   m.status,
		NextSlot: next,
		Players:  []PlayerSnapshot{m.players[PlayerSlotOne].snapshot(), m.players[PlayerSlotTwo].snapshot()},
	}
}

// Grids returns copies of both defence grids in slot order.
func (m *Match) Grids() (Grid, Grid) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.players[PlayerSlotOne].defenceGrid.Clone(), m.players[PlayerSlotTwo].defenceGrid.Clone()
}
