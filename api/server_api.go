package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
	"github.com/saeidalz13/battleship-duel/models/record"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	defaultPort              = 9191
	defaultRequestsPerSecond = 5
	defaultBurstSize         = 10

	URLParamMatchUuid string = "matchUuid"
)

// Server exposes a read-only view of running matches to spectators.
type Server struct {
	port           int
	stage          string
	recordPath     string
	allowedOrigins []string
	rateLimiter    *RateLimiter
	upgrader       websocket.Upgrader
	httpServer     *http.Server

	GameManager    mb.GameManager
	SessionManager mc.SessionManager
}

type Option func(*Server) error

func NewServer(gameManager mb.GameManager, sessionManager mc.SessionManager, optFuncs ...Option) *Server {
	server := Server{
		port:           defaultPort,
		stage:          StageDev,
		allowedOrigins: []string{"*"},
		GameManager:    gameManager,
		SessionManager: sessionManager,
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.rateLimiter == nil {
		server.rateLimiter = NewRateLimiter(defaultRequestsPerSecond, defaultBurstSize)
	}

	server.upgrader = websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,
		ReadBufferSize:   1024,
		WriteBufferSize:  2048,
		CheckOrigin:      server.checkOrigin,
	}
	return &server
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

func WithRecordPath(path string) Option {
	return func(s *Server) error {
		s.recordPath = path
		return nil
	}
}

func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) error {
		if len(origins) == 0 {
			return fmt.Errorf("at least one allowed origin is required")
		}
		s.allowedOrigins = origins
		return nil
	}
}

func WithRateLimit(requestsPerSecond float64, burstSize int) Option {
	return func(s *Server) error {
		if requestsPerSecond <= 0 || burstSize <= 0 {
			return fmt.Errorf("invalid rate limit, rps: %v burst: %d", requestsPerSecond, burstSize)
		}
		s.rateLimiter = NewRateLimiter(requestsPerSecond, burstSize)
		return nil
	}
}

// Any origin is accepted in dev
func (s *Server) checkOrigin(r *http.Request) bool {
	if s.stage == StageDev || slices.Contains(s.allowedOrigins, "*") {
		return true
	}
	return slices.Contains(s.allowedOrigins, r.Header.Get("Origin"))
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.rateLimiter.Middleware)

	r.Get("/battleship/{matchUuid}", s.HandleSnapshot)
	r.Get("/battleship/{matchUuid}/record", s.HandleRecord)
	r.Get("/battleship/{matchUuid}/ws", s.HandleWs)

	return cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler(r)
}

// Start blocks until the server is shut down.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Second * 5,
	}

	log.Info().Int("port", s.port).Msg("spectator server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

func writeErr(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, mc.NewRespErr(err.Error(), http.StatusText(status)))
}

func (s *Server) fetchMatch(w http.ResponseWriter, r *http.Request) (*mb.Match, bool) {
	match, err := s.GameManager.FetchMatch(chi.URLParam(r, URLParamMatchUuid))
	if err != nil {
		writeErr(w, http.StatusNotFound, err)
		return nil, false
	}
	return match, true
}

func (s *Server) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	match, ok := s.fetchMatch(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, match.Snapshot())
}

// HandleRecord serves the record file as parsed so far; a running match
// has no outcome yet.
func (s *Server) HandleRecord(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.fetchMatch(w, r); !ok {
		return
	}
	if s.recordPath == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("no record is kept for this server"))
		return
	}

	f, err := os.Open(s.recordPath)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	defer f.Close()

	rec, err := record.ParseRecord(f, mb.DefaultFleet())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) HandleWs(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("could not open websocket connection")
		return
	}

	matchUuid := chi.URLParam(r, URLParamMatchUuid)
	match, err := s.GameManager.FetchMatch(matchUuid)
	if err != nil {
		msg := mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidMatchUuid)
		msg.AddError(err.Error(), "")
		_ = conn.WriteJSON(msg)
		_ = conn.Close()
		return
	}

	session := s.SessionManager.GenerateNewSession(matchUuid, conn)
	log.Info().Str("sessionID", session.Id()).Str("matchUuid", session.MatchUuid()).Str("remoteAddr", conn.RemoteAddr().String()).Msg("spectator connected")

	go s.processSession(session, match)
}

func (s *Server) writeSnapshot(session *mc.Session, match *mb.Match) error {
	msg := mc.NewMessage[mb.MatchSnapshot](mc.CodeMatchSnapshot)
	msg.AddPayload(match.Snapshot())
	return s.SessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)
}

func (s *Server) processSession(session *mc.Session, match *mb.Match) {
	defer s.SessionManager.TerminateSession(session.Id())

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: session.Id()})
	if err := s.SessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}
	if err := s.writeSnapshot(session, match); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := s.SessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err := s.SessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {
		case mc.CodeMatchSnapshot:
			if err := s.writeSnapshot(session, match); err != nil {
				break sessionLoop
			}

		default:
			msg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			msg.AddError("", cerr.ErrInvalidSignalCode(code).Error())
			if err := s.SessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}
