package api

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
	"github.com/saeidalz13/battleship-duel/models/record"
)

// GuessSource supplies the raw guess text of a player slot.
// It is asked again whenever the previous text was rejected.
type GuessSource interface {
	NextGuess(ctx context.Context, slot int) (string, error)
}

// Reporter is told about every event of the match loop.
type Reporter interface {
	InvalidGuess(slot int, guess string, err error)
	TurnResolved(result mb.TurnResult)
	MatchOver(outcome mb.Outcome, gridOne, gridTwo mb.Grid)
}

type Broadcaster interface {
	Broadcast(matchUuid string, msg interface{}) int
}

type RequestProcessor struct {
	match       *mb.Match
	record      *record.Writer
	source      GuessSource
	reporter    Reporter
	broadcaster Broadcaster
}

type ProcessorOption func(*RequestProcessor)

func WithBroadcaster(b Broadcaster) ProcessorOption {
	return func(rp *RequestProcessor) {
		rp.broadcaster = b
	}
}

func NewRequestProcessor(
	match *mb.Match,
	recordWriter *record.Writer,
	source GuessSource,
	reporter Reporter,
	opts ...ProcessorOption,
) *RequestProcessor {
	rp := &RequestProcessor{
		match:    match,
		record:   recordWriter,
		source:   source,
		reporter: reporter,
	}
	for _, opt := range opts {
		opt(rp)
	}
	return rp
}

func (rp *RequestProcessor) broadcast(msg interface{}) {
	if rp.broadcaster == nil {
		return
	}
	rp.broadcaster.Broadcast(rp.match.Uuid(), msg)
}

// Run writes the record header, plays turns until the match is over
// and appends the outcome. Every play is appended as soon as it resolves.
func (rp *RequestProcessor) Run(ctx context.Context) (mb.Outcome, error) {
	matchUuid := rp.match.Uuid()

	if err := rp.record.WriteHeader(rp.match.Layouts()); err != nil {
		return mb.Outcome{}, err
	}
	log.Info().Str("matchUuid", matchUuid).Msg("match started")

matchLoop:
	for {
		if err := ctx.Err(); err != nil {
			return mb.Outcome{}, err
		}

		slot, ok := rp.match.NextSlot()
		if !ok {
			break matchLoop
		}

		guess, err := rp.source.NextGuess(ctx, slot)
		if err != nil {
			return mb.Outcome{}, err
		}

		result, err := rp.match.Play(guess)
		if err != nil {
			if errors.Is(err, cerr.ErrInvalidFormat) || errors.Is(err, cerr.ErrOutOfBounds) {
				log.Debug().Err(err).Int("slot", slot).Str("guess", guess).Msg("guess rejected")
				rp.reporter.InvalidGuess(slot, guess, err)
				continue matchLoop
			}
			return mb.Outcome{}, err
		}

		if err := rp.record.AppendPlay(result.Slot, result.Guess); err != nil {
			return mb.Outcome{}, err
		}

		log.Debug().
			Str("matchUuid", matchUuid).
			Int("slot", result.Slot).
			Str("guess", result.Guess.String()).
			Str("resolution", result.Resolution.String()).
			Int("score", result.Score).
			Msg("turn resolved")

		rp.reporter.TurnResolved(result)

		msg := mc.NewMessage[mc.RespTurn](mc.CodeTurnResolved)
		msg.AddPayload(mc.RespTurn{
			MatchUuid: matchUuid,
			Play:      record.PlayToken(result.Slot, result.Guess),
			Turn:      result,
		})
		rp.broadcast(msg)
	}

	outcome := rp.match.Outcome()
	if err := rp.record.WriteOutcome(outcome); err != nil {
		return outcome, err
	}
	log.Info().Str("matchUuid", matchUuid).Int("status", outcome.Status).Bool("draw", outcome.Draw).Msg("match over")

	gridOne, gridTwo := rp.match.Grids()
	rp.reporter.MatchOver(outcome, gridOne, gridTwo)

	msg := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	msg.AddPayload(mc.RespEndGame{
		MatchUuid: matchUuid,
		Outcome:   outcome,
		Summary:   record.FormatOutcome(outcome),
	})
	rp.broadcast(msg)

	return outcome, nil
}
