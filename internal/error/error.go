package error

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat      = errors.New("invalid coordinate format")
	ErrOutOfBounds        = errors.New("coordinate is out of grid bound")
	ErrPlacementExhausted = errors.New("piece placement attempts exhausted")
	ErrMatchFinished      = errors.New("match is already finished")
	ErrMatchNotExists     = errors.New("match does not exist")
	ErrInvalidPlayerSlot  = errors.New("invalid player slot")
)

// PlacementExhaustedError is returned when a piece could not be placed
// without leaving the grid or overlapping another piece.
type PlacementExhaustedError struct {
	Kind     uint8
	Attempts int
}

func (e *PlacementExhaustedError) Error() string {
	return fmt.Sprintf("ERROR_OVERWRITE_PIECES_VALIDATION: PIECE %d | ATTEMPTS %d", e.Kind, e.Attempts)
}

func (e *PlacementExhaustedError) Is(target error) bool {
	return target == ErrPlacementExhausted
}

func ErrPlacementAttemptsExhausted(kind uint8, attempts int) error {
	return &PlacementExhaustedError{Kind: kind, Attempts: attempts}
}

func ErrInvalidCoordinateFormat(text string) error {
	return fmt.Errorf("%w: %q", ErrInvalidFormat, text)
}

func ErrInvalidPlacementFormat(text string) error {
	return fmt.Errorf("%w: placement must look like C7H, got %q", ErrInvalidFormat, text)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrOutOfBounds, x, y)
}

func ErrMatchIsFinished(matchUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrMatchFinished, matchUuid)
}

func ErrMatchUuidNotExists(matchUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrMatchNotExists, matchUuid)
}

func ErrPlayerSlotInvalid(slot int) error {
	return fmt.Errorf("%w: %d", ErrInvalidPlayerSlot, slot)
}

func ErrMalformedRecord(line int, text string) error {
	return fmt.Errorf("malformed record at line %d: %q", line, text)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session does not exist, id: %s", sessionId)
}

func ErrInvalidSignalCode(code uint8) error {
	return fmt.Errorf("invalid code in the incoming payload: %d", code)
}
