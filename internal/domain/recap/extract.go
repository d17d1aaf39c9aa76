package recap

import "github.com/gridline/gamecast/internal/domain/event"

// ExtractScoringPlays filters the decoded log down to attributed
// scoring plays, ordered ascending by timestamp. Decoding has already
// applied the qualification rules and dropped records missing a
// quarter or team; the order here is the decoded (stable-sorted)
// order, so ties keep their original input position.
func ExtractScoringPlays(decoded []event.Decoded) []ScoringPlay {
	out := make([]ScoringPlay, 0, len(decoded))
	for _, item := range decoded {
		if item.Score == nil {
			continue
		}
		out = append(out, ScoringPlay{
			Quarter:     item.Score.Quarter,
			Clock:       item.Score.Clock,
			Team:        item.Score.Team,
			Type:        item.Score.Subtype,
			Description: item.Score.Description,
			Points:      item.Score.Points,
			EventID:     item.Event.EventID,
			Timestamp:   item.SortKey,
		})
	}
	return out
}

// ExtractTurnovers is the turnover counterpart of ExtractScoringPlays,
// with identical ordering guarantees.
func ExtractTurnovers(decoded []event.Decoded) []Turnover {
	out := make([]Turnover, 0, len(decoded))
	for _, item := range decoded {
		if item.Turnover == nil {
			continue
		}
		out = append(out, Turnover{
			Quarter:     item.Turnover.Quarter,
			Clock:       item.Turnover.Clock,
			Team:        item.Turnover.Team,
			Type:        item.Turnover.Kind,
			Description: item.Turnover.Description,
			Timestamp:   item.SortKey,
		})
	}
	return out
}
