package battleship

import (
	"strconv"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

// rowLetters maps row index to its letter. Guesses accept either case.
const rowLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "V"
	}
	return "H"
}

func parseOrientation(b byte) (Orientation, bool) {
	switch b {
	case 'H', 'h':
		return Horizontal, true
	case 'V', 'v':
		return Vertical, true
	}
	return Horizontal, false
}

// RowLetter returns the upper case letter of row index i.
func RowLetter(i int) (byte, bool) {
	if i < 0 || i >= len(rowLetters) {
		return 0, false
	}
	return rowLetters[i], true
}

// RowIndex returns the row index of a letter, case insensitive.
func RowIndex(letter byte) (int, bool) {
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	for i := 0; i < len(rowLetters); i++ {
		if rowLetters[i] == letter {
			return i, true
		}
	}
	return -1, false
}

// ParseGuess parses a coordinate such as "C7" or "c7".
// The column is 1-based in text and 0-based in the result.
// Bounds are not checked here, see ValidateCoordinates.
func ParseGuess(text string) (Coordinates, error) {
	if len(text) < 2 {
		return Coordinates{}, cerr.ErrInvalidCoordinateFormat(text)
	}

	x, ok := RowIndex(text[0])
	if !ok {
		return Coordinates{}, cerr.ErrInvalidCoordinateFormat(text)
	}

	digits := text[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Coordinates{}, cerr.ErrInvalidCoordinateFormat(text)
		}
	}

	col, err := strconv.Atoi(digits)
	if err != nil {
		return Coordinates{}, cerr.ErrInvalidCoordinateFormat(text)
	}

	return NewCoordinates(x, col-1), nil
}

// ParsePlacement parses a logged placement such as "C7H".
func ParsePlacement(text string) (Coordinates, Orientation, error) {
	if len(text) < 3 {
		return Coordinates{}, Horizontal, cerr.ErrInvalidPlacementFormat(text)
	}

	orientation, ok := parseOrientation(text[len(text)-1])
	if !ok {
		return Coordinates{}, Horizontal, cerr.ErrInvalidPlacementFormat(text)
	}

	coords, err := ParseGuess(text[:len(text)-1])
	if err != nil {
		return Coordinates{}, Horizontal, cerr.ErrInvalidPlacementFormat(text)
	}
	return coords, orientation, nil
}

func ValidateCoordinates(c Coordinates, maxRows, maxCols int) bool {
	return c.X >= 0 && c.X < maxRows && c.Y >= 0 && c.Y < maxCols
}

// FormatCoordinates is the inverse of ParseGuess.
func FormatCoordinates(c Coordinates) string {
	letter, ok := RowLetter(c.X)
	if !ok {
		letter = '?'
	}
	return string(letter) + strconv.Itoa(c.Y+1)
}

func (c Coordinates) String() string {
	return FormatCoordinates(c)
}

// ParseGuess parses text and checks it against the grid bounds.
func (g Grid) ParseGuess(text string) (Coordinates, error) {
	coords, err := ParseGuess(text)
	if err != nil {
		return Coordinates{}, err
	}

	if !g.InBounds(coords) {
		return Coordinates{}, cerr.ErrXorYOutOfGridBound(coords.X, coords.Y)
	}
	return coords, nil
}
