package event

import (
	"sort"
	"strings"
)

// Decoded is the boundary-level view of one raw event: the heterogeneous
// payload bag is interpreted exactly once, and downstream consumers work
// with typed details instead of repeating null-coalescing chains.
//
// The detail pointers are not mutually exclusive. A drive_end whose
// result names a turnover qualifies both as a drive marker and as a
// turnover, and any event carrying numeric points qualifies as a score
// regardless of its declared type.
type Decoded struct {
	Event   Event
	SortKey int64

	Score      *ScoreDetail
	Turnover   *TurnoverDetail
	GameStart  *GameStartDetail
	GameEnd    *GameEndDetail
	DriveStart bool
	DriveEnd   bool
	IsPlay     bool
}

// ScoreDetail is present when the event qualifies as a scoring play:
// type "score" or a finite numeric points payload, with an integer
// quarter and a non-empty team. Events failing the quarter/team
// requirement are dropped silently, never surfaced as errors.
type ScoreDetail struct {
	Quarter     int
	Clock       string
	Team        string
	Subtype     string
	Points      int
	Description string
}

// TurnoverDetail is present for type "turnover", or for a drive_end
// whose result reads as a possession loss.
type TurnoverDetail struct {
	Quarter     int
	Clock       string
	Team        string
	Kind        string
	Description string
}

type GameStartDetail struct {
	HomeTeam string
	AwayTeam string
}

// GameEndDetail keeps the raw final-score material for the tiered
// resolution in the recap package: the per-team map and the legacy
// explicit fields, untouched.
type GameEndDetail struct {
	FinalScore map[string]any
	HomeScore  any
	AwayScore  any
}

var defaultPointsBySubtype = map[string]int{
	"TD":     6,
	"FG":     3,
	"SAFETY": 2,
}

// Decode interprets one raw event. Total: every event decodes to
// something, if only a sort key.
func Decode(ev Event) Decoded {
	out := Decoded{
		Event:   ev,
		SortKey: ev.SortKey(),
	}

	switch ev.Type {
	case TypeGameStart:
		out.GameStart = &GameStartDetail{
			HomeTeam: ev.PayloadString("homeTeam"),
			AwayTeam: ev.PayloadString("awayTeam"),
		}
	case TypeGameEnd:
		out.GameEnd = decodeGameEnd(ev)
	case TypeDriveStart:
		out.DriveStart = true
	case TypeDriveEnd:
		out.DriveEnd = true
	case TypePlay:
		out.IsPlay = true
	}

	out.Score = decodeScore(ev)
	out.Turnover = decodeTurnover(ev)

	return out
}

// DecodeAll decodes every event and sorts the result ascending by sort
// key. The sort is stable: events with equal keys (including the
// unparsable-time bucket at key 0) keep their input order.
func DecodeAll(events []Event) []Decoded {
	out := make([]Decoded, 0, len(events))
	for _, ev := range events {
		out = append(out, Decode(ev))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey < out[j].SortKey
	})
	return out
}

func decodeScore(ev Event) *ScoreDetail {
	points, hasNumericPoints := ev.PayloadNumber("points")
	if ev.Type != TypeScore && !hasNumericPoints {
		return nil
	}

	quarter, ok := ev.PayloadInt("quarter")
	if !ok {
		return nil
	}
	team := ev.PayloadString("team")
	if team == "" {
		return nil
	}

	subtype := ev.PayloadString("scoreType")
	if subtype == "" {
		subtype = ev.PayloadString("type")
	}
	if subtype == "" {
		subtype = ev.Type
	}
	subtype = strings.ToUpper(subtype)

	detail := &ScoreDetail{
		Quarter:     quarter,
		Clock:       ev.PayloadString("clock"),
		Team:        team,
		Subtype:     subtype,
		Description: ev.PayloadString("description"),
	}
	if hasNumericPoints {
		detail.Points = int(points)
	} else {
		detail.Points = defaultPointsBySubtype[subtype]
	}
	return detail
}

var turnoverResultMarkers = []string{"turnover", "interception", "fumble", "downs"}

func decodeTurnover(ev Event) *TurnoverDetail {
	kind := ""
	switch ev.Type {
	case TypeTurnover:
		kind = ev.PayloadString("type")
		if kind == "" {
			kind = "turnover"
		}
	case TypeDriveEnd:
		result := ev.PayloadString("result")
		if !containsTurnoverMarker(result) {
			return nil
		}
		kind = ev.PayloadString("type")
		if kind == "" {
			kind = result
		}
	default:
		return nil
	}

	quarter, ok := ev.PayloadInt("quarter")
	if !ok {
		return nil
	}
	team := ev.PayloadString("team")
	if team == "" {
		return nil
	}

	return &TurnoverDetail{
		Quarter:     quarter,
		Clock:       ev.PayloadString("clock"),
		Team:        team,
		Kind:        kind,
		Description: ev.PayloadString("description"),
	}
}

func containsTurnoverMarker(result string) bool {
	needle := strings.ToLower(result)
	if needle == "" {
		return false
	}
	for _, marker := range turnoverResultMarkers {
		if strings.Contains(needle, marker) {
			return true
		}
	}
	return false
}

func decodeGameEnd(ev Event) *GameEndDetail {
	detail := &GameEndDetail{}

	if raw, ok := ev.payloadValue("finalScore"); ok {
		if byTeam, ok := raw.(map[string]any); ok {
			detail.FinalScore = byTeam
		}
	}

	if v, ok := ev.payloadValue("finalScoreHome"); ok {
		detail.HomeScore = v
	} else if v, ok := ev.payloadValue("homeScore"); ok {
		detail.HomeScore = v
	}
	if v, ok := ev.payloadValue("finalScoreAway"); ok {
		detail.AwayScore = v
	} else if v, ok := ev.payloadValue("awayScore"); ok {
		detail.AwayScore = v
	}

	return detail
}
