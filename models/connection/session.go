package connection

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	maxWriteWsRetries uint8         = 2
	backOffFactor     uint8         = 2
	writeWait         time.Duration = time.Second * 5
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one spectator connection following a single match.
type Session struct {
	id        string
	matchUuid string
	conn      *websocket.Conn
	createdAt time.Time

	// gorilla/websocket supports one concurrent writer
	writeMu sync.Mutex
}

func NewSession(id, matchUuid string, conn *websocket.Conn) *Session {
	return &Session{
		id:        id,
		matchUuid: matchUuid,
		conn:      conn,
		createdAt: time.Now(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) MatchUuid() string {
	return s.matchUuid
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Warn().Err(err).Str("sessionID", s.id).Msg("timeout error")
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Warn().Err(err).Str("sessionID", s.id).Msg("high server load/traffic error")
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		log.Debug().Err(err).Str("sessionID", s.id).Msg("close error")
		return ConnLoopBreak
	}

	log.Warn().Err(err).Str("sessionID", s.id).Msg("unexpected error")
	return ConnLoopBreak
}

// Writes to the connection of that session, retrying
// timeouts with a linear back off.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var retries uint8

writeLoop:
	for {
		var err error
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))

		switch msgType {
		case MessageTypeJSON:
			err = s.conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = s.conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		if s.onConnErr(err) == ConnLoopRetry && retries < maxWriteWsRetries {
			retries++
			log.Info().Str("sessionID", s.id).Uint8("retry", retries).Msg("writing to ws failed; retrying")
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			continue writeLoop
		}
		return NewConnErr(ConnLoopBreak).AddDesc("breaking writeLoop due to: " + err.Error())
	}
}

var _ ConnectionHandler = (*Session)(nil)
