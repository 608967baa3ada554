package connection

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

type SessionManager interface {
	GenerateNewSession(matchUuid string, conn *websocket.Conn) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	Broadcast(matchUuid string, msg interface{}) int
	CountSessions(matchUuid string) int
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

func NewBattleshipSessionManager() *BattleshipSessionManager {
	initMapSize := 10

	return &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: time.Minute * 20,
	}
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(matchUuid string, conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, matchUuid, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs || session == nil {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}
	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	session, prs := bsm.sessions[sessionId]
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()

	if prs && session.conn != nil {
		_ = session.conn.Close()
	}
}

func (bsm *BattleshipSessionManager) CountSessions(matchUuid string) int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	count := 0
	for _, session := range bsm.sessions {
		if session.matchUuid == matchUuid {
			count++
		}
	}
	return count
}

// Broadcast sends msg to every spectator of the match and drops the
// sessions that could not be written to. It returns the delivered count.
func (bsm *BattleshipSessionManager) Broadcast(matchUuid string, msg interface{}) int {
	bsm.mu.RLock()
	receivers := make([]*Session, 0, len(bsm.sessions))
	for _, session := range bsm.sessions {
		if session.matchUuid == matchUuid {
			receivers = append(receivers, session)
		}
	}
	bsm.mu.RUnlock()

	delivered := 0
	for _, session := range receivers {
		if err := bsm.WriteToSessionConn(session, msg, MessageTypeJSON); err != nil {
			bsm.TerminateSession(session.id)
			continue
		}
		delivered++
	}
	return delivered
}

// To ensure that there are no dangling connections,
// sessions older than the cleanup interval are closed.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		bsm.mu.RLock()
		toDelete := make([]string, 0, len(bsm.sessions))
		for id, session := range bsm.sessions {
			if time.Since(session.createdAt) > bsm.cleanupInterval {
				toDelete = append(toDelete, id)
			}
		}
		bsm.mu.RUnlock()

		for _, id := range toDelete {
			bsm.TerminateSession(id)
			log.Info().Str("sessionID", id).Msg("removed stale session")
		}
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	return session.writeToConnWithRetry(msg, msgType)
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		if session.onConnErr(err) == ConnLoopRetry && retries < maxWriteWsRetries {
			retries++
			continue
		}
		return -1, []byte{}, err
	}
}
