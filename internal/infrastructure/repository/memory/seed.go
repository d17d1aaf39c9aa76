package memory

import "github.com/gridline/gamecast/internal/domain/event"

const GameIDDemoOpener = "demo-opener-2026"

// SeedGameEvents returns the event log for a complete demo game, so a
// memory-backed deployment serves a real projection out of the box.
func SeedGameEvents() []event.Event {
	return []event.Event{
		{
			EventID:   "demo-evt-001",
			GameID:    GameIDDemoOpener,
			Sport:     "football",
			Type:      event.TypeGameStart,
			Timestamp: float64(1_757_200_000_000),
			Payload: map[string]any{
				"homeTeam": "Harbor City Titans",
				"awayTeam": "Northgate Wraiths",
			},
		},
		{
			EventID:   "demo-evt-002",
			GameID:    GameIDDemoOpener,
			Sport:     "football",
			Type:      event.TypeDriveStart,
			Timestamp: float64(1_757_200_060_000),
			Payload:   map[string]any{"team": "Harbor City Titans"},
		},
		{
			EventID:   "demo-evt-003",
			GameID:    GameIDDemoOpener,
			Sport:     "football",
			Type:      event.TypeScore,
			Timestamp: float64(1_757_200_300_000),
			Payload: map[string]any{
				"team":        "Harbor City Titans",
				"player":      "D. Okafor",
				"points":      float64(7),
				"quarter":     float64(1),
				"description": "18 yard touchdown run",
			},
		},
		{
			EventID:   "demo-evt-004",
			GameID:    GameIDDemoOpener,
			Sport:     "football",
			Type:      event.TypeDriveEnd,
			Timestamp: float64(1_757_200_310_000),
			Payload: map[string]any{
				"team":   "Harbor City Titans",
				"result": "touchdown",
				"plays":  float64(8),
				"yards":  float64(72),
			},
		},
		{
			EventID:   "demo-evt-005",
			GameID:    GameIDDemoOpener,
			Sport:     "football",
			Type:      event.TypeTurnover,
			Timestamp: float64(1_757_201_000_000),
			Payload: map[string]any{
				"team":         "Northgate Wraiths",
				"turnoverType": "interception",
				"quarter":      float64(2),
			},
		},
		{
			EventID:   "demo-evt-006",
			GameID:    GameIDDemoOpener,
			Sport:     "football",
			Type:      event.TypeScore,
			Timestamp: float64(1_757_201_400_000),
			Payload: map[string]any{
				"team":        "Northgate Wraiths",
				"player":      "J. Maddox",
				"points":      float64(3),
				"quarter":     float64(2),
				"description": "41 yard field goal",
			},
		},
		{
			EventID:   "demo-evt-007",
			GameID:    GameIDDemoOpener,
			Sport:     "football",
			Type:      event.TypeScore,
			Timestamp: float64(1_757_202_200_000),
			Payload: map[string]any{
				"team":        "Harbor City Titans",
				"player":      "K. Reyes",
				"points":      float64(7),
				"quarter":     float64(3),
				"description": "35 yard touchdown pass",
			},
		},
		{
			EventID:   "demo-evt-008",
			GameID:    GameIDDemoOpener,
			Sport:     "football",
			Type:      event.TypeGameEnd,
			Timestamp: float64(1_757_203_000_000),
			Payload: map[string]any{
				"finalScore": map[string]any{
					"Harbor City Titans": float64(14),
					"Northgate Wraiths":  float64(3),
				},
			},
		},
	}
}
