package record

import (
	"fmt"
	"io"
	"strings"

	mb "github.com/saeidalz13/battleship-duel/models/battleship"
)

const (
	headerPlayerOne = "Player 1 pieces:"
	headerPlayerTwo = "Player 2 pieces:"
	headerPlays     = "Plays:"
	playsSentinel   = "T;"
	playSeparator   = "|"
	kindSeparator   = ":"
	pieceSeparator  = " | "
)

type syncer interface {
	Sync() error
}

// Writer appends to a game record. Every call writes straight through
// so a crash mid-match leaves a readable partial record.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (rw *Writer) write(s string) error {
	if _, err := io.WriteString(rw.w, s); err != nil {
		return err
	}
	// Sync fails on pipes and terminals, the write itself already went through
	if sy, ok := rw.w.(syncer); ok {
		_ = sy.Sync()
	}
	return nil
}

func formatLayout(layout mb.FleetLayout) string {
	var sb strings.Builder
	for _, kp := range layout {
		sb.WriteString(kp.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteFleetFile writes one line per kind, e.g. "1:C7H | A2V".
func WriteFleetFile(w io.Writer, layout mb.FleetLayout) error {
	_, err := io.WriteString(w, formatLayout(layout))
	return err
}

func (rw *Writer) WriteHeader(layoutOne, layoutTwo mb.FleetLayout) error {
	var sb strings.Builder
	sb.WriteString(headerPlayerOne + "\n")
	sb.WriteString(formatLayout(layoutOne))
	sb.WriteString("\n" + headerPlayerTwo + "\n")
	sb.WriteString(formatLayout(layoutTwo))
	sb.WriteString(headerPlays + "\n" + playsSentinel)

	return rw.write(sb.String())
}

// PlayToken formats a play as J<player number><guess>, e.g. J1C7.
func PlayToken(slot int, guess mb.Coordinates) string {
	return fmt.Sprintf("J%d%s", slot+1, mb.FormatCoordinates(guess))
}

func (rw *Writer) AppendPlay(slot int, guess mb.Coordinates) error {
	return rw.write(PlayToken(slot, guess) + playSeparator)
}

func formatOutcomeLine(p mb.PlayerSnapshot) string {
	return fmt.Sprintf("J%d %dAA %dAE %dPT", p.Number, p.Hits, p.AttemptsLeft, p.Score)
}

// FormatOutcome renders one line per reported player.
func FormatOutcome(outcome mb.Outcome) string {
	lines := make([]string, len(outcome.Players))
	for i, p := range outcome.Players {
		lines[i] = formatOutcomeLine(p)
	}
	return strings.Join(lines, "\n")
}

func (rw *Writer) WriteOutcome(outcome mb.Outcome) error {
	return rw.write("\n" + FormatOutcome(outcome))
}
