package recap

import (
	"errors"

	"github.com/gridline/gamecast/internal/domain/event"
)

// The non-READY terminal states of projection assembly. All four are
// "nothing to show yet" conditions for the caller, never server
// failures.
var (
	ErrNoEvents         = errors.New("game has no events")
	ErrNoGameStart      = errors.New("game has no game_start event")
	ErrNoTeams          = errors.New("game_start event is missing team names")
	ErrInsufficientData = errors.New("not enough game data to build a projection")
)

// Build assembles the full projection from the raw event log. The log
// arrives unordered; decoding sorts it by timestamp before anything
// else runs. The first game_start in that order is canonical and
// supplies the team identities; later duplicates are ignored.
func Build(gameID string, events []event.Event) (Projection, error) {
	if len(events) == 0 {
		return Projection{}, ErrNoEvents
	}

	decoded := event.DecodeAll(events)

	start := firstGameStart(decoded)
	if start == nil {
		return Projection{}, ErrNoGameStart
	}
	if start.HomeTeam == "" || start.AwayTeam == "" {
		return Projection{}, ErrNoTeams
	}

	plays := ExtractScoringPlays(decoded)
	turnovers := ExtractTurnovers(decoded)
	if len(plays) == 0 && len(turnovers) == 0 && firstGameEnd(decoded) == nil {
		return Projection{}, ErrInsufficientData
	}

	return Projection{
		GameID:       gameID,
		HomeTeam:     start.HomeTeam,
		AwayTeam:     start.AwayTeam,
		FinalScore:   ResolveFinalScore(decoded, plays, start.HomeTeam, start.AwayTeam),
		Quarters:     AggregateQuarters(plays, start.HomeTeam, start.AwayTeam),
		ScoringPlays: plays,
		Turnovers:    turnovers,
		Drives:       SummarizeDrives(decoded),
		EventsCount:  len(events),
	}, nil
}

func firstGameStart(decoded []event.Decoded) *event.GameStartDetail {
	for _, item := range decoded {
		if item.GameStart != nil {
			return item.GameStart
		}
	}
	return nil
}
