package connection

import (
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespTurn struct {
	MatchUuid string        `json:"match_uuid"`
	Play      string        `json:"play"`
	Turn      mb.TurnResult `json:"turn"`
}

type RespEndGame struct {
	MatchUuid string     `json:"match_uuid"`
	Outcome   mb.Outcome `json:"outcome"`
	Summary   string     `json:"summary"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
