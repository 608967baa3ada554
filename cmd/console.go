package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	"github.com/saeidalz13/battleship-duel/models/record"
)

const invalidGuessMsg = "ERROR_POSITION_NONEXISTENT_VALIDATION"

// Console reads guesses from in and prints the match to out.
// A single goroutine owns the scanner and hands lines over one at a time.
type Console struct {
	lines chan consoleLine
	out   io.Writer
}

type consoleLine struct {
	text string
	err  error
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{
		lines: make(chan consoleLine),
		out:   out,
	}
	go c.readLines(bufio.NewScanner(in))
	return c
}

func (c *Console) readLines(scanner *bufio.Scanner) {
	for scanner.Scan() {
		c.lines <- consoleLine{text: strings.TrimSpace(scanner.Text())}
	}

	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	// every later read sees the same error
	for {
		c.lines <- consoleLine{err: err}
	}
}

func (c *Console) NextGuess(ctx context.Context, slot int) (string, error) {
	fmt.Fprintf(c.out, "Player %d, Guess: ", slot+1)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line := <-c.lines:
		return line.text, line.err
	}
}

func (c *Console) InvalidGuess(slot int, guess string, err error) {
	fmt.Fprintln(c.out, invalidGuessMsg)
}

func (c *Console) TurnResolved(result mb.TurnResult) {
	// attempts left before this guess was played
	fmt.Fprintf(c.out, "Remaining Attempts for Player %d: %d\n", result.Slot+1, result.AttemptsLeft+1)

	switch result.Resolution {
	case mb.ResolutionHit:
		fmt.Fprintln(c.out, "Hit!")
	case mb.ResolutionAlreadyHit:
		fmt.Fprintln(c.out, "You've already hit this spot!")
	default:
		fmt.Fprintln(c.out, "Miss!")
	}

	if result.Won() {
		fmt.Fprintf(c.out, "Player %d has won.\n", result.Slot+1)
	}
}

func (c *Console) MatchOver(outcome mb.Outcome, gridOne, gridTwo mb.Grid) {
	if outcome.Status == mb.MatchStatusExhausted {
		fmt.Fprintln(c.out, "No more attempts. Game over.")
	}
	fmt.Fprintln(c.out, record.FormatOutcome(outcome))
	RenderBoards(c.out, gridOne, gridTwo)
}

func cellSymbol(cell uint8) string {
	switch cell {
	case mb.PositionStateEmpty:
		return "."
	case mb.PositionStateHit:
		return "X"
	default:
		return strconv.Itoa(int(cell))
	}
}

// RenderBoards prints both grids side by side.
func RenderBoards(w io.Writer, gridOne, gridTwo mb.Grid) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "\tBoard 1%s\t\tBoard 2\n", strings.Repeat("\t", max(gridOne.Cols()-1, 0)))

	rows := max(gridOne.Rows(), gridTwo.Rows())
	for x := 0; x < rows; x++ {
		letter, _ := mb.RowLetter(x)
		cells := make([]string, 0, gridOne.Cols()+gridTwo.Cols()+2)
		cells = append(cells, string(letter))

		if x < gridOne.Rows() {
			for _, cell := range gridOne[x] {
				cells = append(cells, cellSymbol(cell))
			}
		}
		cells = append(cells, "")
		if x < gridTwo.Rows() {
			for _, cell := range gridTwo[x] {
				cells = append(cells, cellSymbol(cell))
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
}
