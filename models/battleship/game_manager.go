package battleship

import (
	cerr "github.com/saeidalz13/battleship-duel/internal/error"

	"sync"
)

type GameManager interface {
	CreateMatch(opts ...MatchOption) (*Match, error)
	FetchMatch(matchUuid string) (*Match, error)
	TerminateMatch(matchUuid string)
}

type BattleshipGameManager struct {
	matches map[string]*Match
	mu      sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager() *BattleshipGameManager {
	return &BattleshipGameManager{
		matches: make(map[string]*Match, 1),
	}
}

func (bgm *BattleshipGameManager) CreateMatch(opts ...MatchOption) (*Match, error) {
	match, err := NewMatch(opts...)
	if err != nil {
		return nil, err
	}

	bgm.mu.Lock()
	bgm.matches[match.Uuid()] = match
	bgm.mu.Unlock()

	return match, nil
}

func (bgm *BattleshipGameManager) FetchMatch(matchUuid string) (*Match, error) {
	bgm.mu.RLock()
	match, prs := bgm.matches[matchUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrMatchUuidNotExists(matchUuid)
	}

	return match, nil
}

func (bgm *BattleshipGameManager) TerminateMatch(matchUuid string) {
	bgm.mu.Lock()
	delete(bgm.matches, matchUuid)
	bgm.mu.Unlock()
}
