package record

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
)

type Play struct {
	Player int            `json:"player"`
	Guess  mb.Coordinates `json:"guess"`
}

type OutcomeLine struct {
	Player       int `json:"player"`
	Hits         int `json:"hits"`
	AttemptsLeft int `json:"attempts_left"`
	Score        int `json:"score"`
}

type Record struct {
	LayoutOne mb.FleetLayout `json:"layout_one"`
	LayoutTwo mb.FleetLayout `json:"layout_two"`
	Plays     []Play         `json:"plays"`
	Outcome   []OutcomeLine  `json:"outcome,omitempty"`
}

// Complete reports whether the outcome block was written.
func (r Record) Complete() bool {
	return len(r.Outcome) > 0
}

func lengthOf(fleet mb.Fleet, kind mb.Kind) int {
	for _, spec := range fleet {
		if spec.Kind == kind {
			return spec.Length
		}
	}
	return 0
}

func parseKindLine(line string, fleet mb.Fleet) (mb.KindPlacements, error) {
	kindText, rest, found := strings.Cut(line, kindSeparator)
	if !found {
		return mb.KindPlacements{}, fmt.Errorf("missing kind separator in %q", line)
	}

	kindNum, err := strconv.Atoi(strings.TrimSpace(kindText))
	if err != nil || kindNum < 0 || kindNum > 255 {
		return mb.KindPlacements{}, fmt.Errorf("invalid kind %q", kindText)
	}
	kind := mb.Kind(kindNum)
	kp := mb.KindPlacements{Kind: kind, Placements: []mb.Placement{}}

	if strings.TrimSpace(rest) == "" {
		return kp, nil
	}

	for _, text := range strings.Split(rest, pieceSeparator) {
		anchor, orientation, err := mb.ParsePlacement(strings.TrimSpace(text))
		if err != nil {
			return mb.KindPlacements{}, err
		}
		kp.Placements = append(kp.Placements, mb.Placement{
			Anchor:      anchor,
			Orientation: orientation,
			Kind:        kind,
			Length:      lengthOf(fleet, kind),
		})
	}
	return kp, nil
}

// ParseFleet reads a fleet file. Piece lengths are looked up in fleet
// since the text only carries anchors and orientations.
func ParseFleet(r io.Reader, fleet mb.Fleet) (mb.FleetLayout, error) {
	layout := mb.FleetLayout{}
	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		kp, err := parseKindLine(line, fleet)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", cerr.ErrMalformedRecord(lineNum, line), err)
		}
		layout = append(layout, kp)
	}
	return layout, scanner.Err()
}

func parsePlayToken(token string) (Play, error) {
	if len(token) < 4 || token[0] != 'J' {
		return Play{}, fmt.Errorf("invalid play token %q", token)
	}

	player, err := strconv.Atoi(token[1:2])
	if err != nil {
		return Play{}, fmt.Errorf("invalid player in play token %q", token)
	}

	guess, err := mb.ParseGuess(token[2:])
	if err != nil {
		return Play{}, err
	}
	return Play{Player: player, Guess: guess}, nil
}

// parsePlays reads "T;J1A1|J2B3|". An unterminated last token is the
// tail of an interrupted write and is dropped.
func parsePlays(line string) ([]Play, error) {
	body := strings.TrimPrefix(line, playsSentinel)
	tokens := strings.Split(body, playSeparator)

	plays := make([]Play, 0, len(tokens))
	for i, token := range tokens {
		if token == "" {
			continue
		}

		play, err := parsePlayToken(token)
		if err != nil {
			if i == len(tokens)-1 {
				break
			}
			return nil, err
		}
		plays = append(plays, play)
	}
	return plays, nil
}

func parseOutcomeLine(line string) (OutcomeLine, error) {
	var ol OutcomeLine
	_, err := fmt.Sscanf(line, "J%d %dAA %dAE %dPT", &ol.Player, &ol.Hits, &ol.AttemptsLeft, &ol.Score)
	return ol, err
}

const (
	sectionNone = iota
	sectionPlayerOne
	sectionPlayerTwo
	sectionPlays
	sectionOutcome
)

// ParseRecord reads a game record, complete or cut short at any point
// after the header lines that were fully written.
func ParseRecord(r io.Reader, fleet mb.Fleet) (Record, error) {
	var rec Record
	section := sectionNone

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case line == headerPlayerOne:
			section = sectionPlayerOne
			continue
		case line == headerPlayerTwo:
			section = sectionPlayerTwo
			continue
		case line == headerPlays:
			section = sectionPlays
			continue
		case strings.TrimSpace(line) == "":
			continue
		}

		switch section {
		case sectionPlayerOne, sectionPlayerTwo:
			kp, err := parseKindLine(line, fleet)
			if err != nil {
				return rec, fmt.Errorf("%w: %v", cerr.ErrMalformedRecord(lineNum, line), err)
			}
			if section == sectionPlayerOne {
				rec.LayoutOne = append(rec.LayoutOne, kp)
			} else {
				rec.LayoutTwo = append(rec.LayoutTwo, kp)
			}

		case sectionPlays:
			plays, err := parsePlays(line)
			if err != nil {
				return rec, fmt.Errorf("%w: %v", cerr.ErrMalformedRecord(lineNum, line), err)
			}
			rec.Plays = plays
			section = sectionOutcome

		case sectionOutcome:
			ol, err := parseOutcomeLine(line)
			if err != nil {
				// an outcome line cut mid-write
				continue
			}
			rec.Outcome = append(rec.Outcome, ol)

		default:
			return rec, cerr.ErrMalformedRecord(lineNum, line)
		}
	}
	return rec, scanner.Err()
}
