package connection

import "encoding/json"

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidMatchUuid

	// Spectators may send this code to get the
	// current scores; it is also the first message
	// after the session ID
	CodeMatchSnapshot

	CodeTurnResolved
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}

// FetchCodeFromMsg decodes the code of an incoming signal.
func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}
	return signal.Code, nil
}
