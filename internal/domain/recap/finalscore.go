package recap

import (
	"strings"

	"github.com/gridline/gamecast/internal/domain/event"
)

// ResolveFinalScore produces the authoritative final score through
// three ordered tiers. Each tier is all-or-nothing: a tier that
// resolves only one side is discarded whole and the next tier runs.
//
//  1. game_end payload carries a finalScore map keyed by team name.
//  2. game_end payload carries explicit home/away fields.
//  3. Sum of scoring-play points per resolved side, whole game.
func ResolveFinalScore(decoded []event.Decoded, plays []ScoringPlay, homeTeam, awayTeam string) Score {
	if end := firstGameEnd(decoded); end != nil {
		if score, ok := scoreFromTeamMap(end.FinalScore, homeTeam, awayTeam); ok {
			return score
		}
		if score, ok := scoreFromLegacyFields(end); ok {
			return score
		}
	}
	return scoreFromPlays(plays, homeTeam, awayTeam)
}

func firstGameEnd(decoded []event.Decoded) *event.GameEndDetail {
	for _, item := range decoded {
		if item.GameEnd != nil {
			return item.GameEnd
		}
	}
	return nil
}

func scoreFromTeamMap(byTeam map[string]any, homeTeam, awayTeam string) (Score, bool) {
	if len(byTeam) == 0 {
		return Score{}, false
	}

	home, homeOK := lookupTeamScore(byTeam, homeTeam)
	away, awayOK := lookupTeamScore(byTeam, awayTeam)
	if !homeOK || !awayOK {
		return Score{}, false
	}
	return Score{Home: home, Away: away}, true
}

func lookupTeamScore(byTeam map[string]any, team string) (int, bool) {
	if raw, ok := byTeam[team]; ok {
		if value, ok := event.IntegerIn(raw); ok {
			return value, true
		}
	}
	for key, raw := range byTeam {
		if !strings.EqualFold(strings.TrimSpace(key), strings.TrimSpace(team)) {
			continue
		}
		if value, ok := event.IntegerIn(raw); ok {
			return value, true
		}
	}
	return 0, false
}

func scoreFromLegacyFields(end *event.GameEndDetail) (Score, bool) {
	home, homeOK := event.IntegerIn(end.HomeScore)
	away, awayOK := event.IntegerIn(end.AwayScore)
	if !homeOK || !awayOK {
		return Score{}, false
	}
	return Score{Home: home, Away: away}, true
}

func scoreFromPlays(plays []ScoringPlay, homeTeam, awayTeam string) Score {
	var score Score
	for _, play := range plays {
		switch ResolveSide(play.Team, homeTeam, awayTeam) {
		case SideHome:
			score.Home += play.Points
		case SideAway:
			score.Away += play.Points
		}
	}
	return score
}
