package event

import "testing"

func TestDecode_ScoreByType(t *testing.T) {
	ev := Event{
		Type: TypeScore,
		Payload: map[string]any{
			"quarter":   1.0,
			"team":      "Titans",
			"scoreType": "td",
		},
	}

	decoded := Decode(ev)
	if decoded.Score == nil {
		t.Fatal("expected score detail")
	}
	if decoded.Score.Subtype != "TD" {
		t.Fatalf("unexpected subtype: %q", decoded.Score.Subtype)
	}
	if decoded.Score.Points != 6 {
		t.Fatalf("expected default TD points, got %d", decoded.Score.Points)
	}
}

func TestDecode_ScoreByNumericPointsRegardlessOfType(t *testing.T) {
	ev := Event{
		Type: "weird_custom_type",
		Payload: map[string]any{
			"quarter": 3.0,
			"team":    "Wraiths",
			"points":  2.0,
		},
	}

	decoded := Decode(ev)
	if decoded.Score == nil {
		t.Fatal("expected score detail for event with numeric points")
	}
	if decoded.Score.Points != 2 {
		t.Fatalf("unexpected points: %d", decoded.Score.Points)
	}
	if decoded.Score.Subtype != "WEIRD_CUSTOM_TYPE" {
		t.Fatalf("unexpected subtype: %q", decoded.Score.Subtype)
	}
}

func TestDecode_ScoreDroppedWithoutQuarterOrTeam(t *testing.T) {
	missingQuarter := Event{Type: TypeScore, Payload: map[string]any{"team": "Titans"}}
	if Decode(missingQuarter).Score != nil {
		t.Fatal("expected score without quarter to be dropped")
	}

	missingTeam := Event{Type: TypeScore, Payload: map[string]any{"quarter": 1.0}}
	if Decode(missingTeam).Score != nil {
		t.Fatal("expected score without team to be dropped")
	}
}

func TestDecode_UnknownSubtypeScoresZeroPoints(t *testing.T) {
	ev := Event{
		Type:    TypeScore,
		Payload: map[string]any{"quarter": 1.0, "team": "Titans", "scoreType": "TWO_PT"},
	}
	if points := Decode(ev).Score.Points; points != 0 {
		t.Fatalf("expected 0 points for unknown subtype, got %d", points)
	}
}

func TestDecode_TurnoverByType(t *testing.T) {
	ev := Event{
		Type:    TypeTurnover,
		Payload: map[string]any{"quarter": 2.0, "team": "Wraiths", "type": "interception"},
	}

	decoded := Decode(ev)
	if decoded.Turnover == nil {
		t.Fatal("expected turnover detail")
	}
	if decoded.Turnover.Kind != "interception" {
		t.Fatalf("unexpected kind: %q", decoded.Turnover.Kind)
	}
}

func TestDecode_TurnoverDefaultsKind(t *testing.T) {
	ev := Event{
		Type:    TypeTurnover,
		Payload: map[string]any{"quarter": 2.0, "team": "Wraiths"},
	}
	if kind := Decode(ev).Turnover.Kind; kind != "turnover" {
		t.Fatalf("unexpected kind: %q", kind)
	}
}

func TestDecode_DriveEndQualifiesAsTurnoverByResult(t *testing.T) {
	for _, result := range []string{"Turnover on downs", "INTERCEPTION", "lost fumble"} {
		ev := Event{
			Type:    TypeDriveEnd,
			Payload: map[string]any{"quarter": 4.0, "team": "Titans", "result": result},
		}
		decoded := Decode(ev)
		if decoded.Turnover == nil {
			t.Fatalf("expected drive_end result %q to qualify as turnover", result)
		}
		if decoded.Turnover.Kind != result {
			t.Fatalf("expected raw result as kind, got %q", decoded.Turnover.Kind)
		}
		if !decoded.DriveEnd {
			t.Fatal("drive_end must stay a drive marker as well")
		}
	}
}

func TestDecode_DriveEndWithPlainResultIsNotTurnover(t *testing.T) {
	ev := Event{
		Type:    TypeDriveEnd,
		Payload: map[string]any{"quarter": 4.0, "team": "Titans", "result": "punt"},
	}
	if Decode(ev).Turnover != nil {
		t.Fatal("punt must not qualify as turnover")
	}
}

func TestDecode_GameEndKeepsLegacyFieldSynonyms(t *testing.T) {
	ev := Event{
		Type:    TypeGameEnd,
		Payload: map[string]any{"homeScore": 21.0, "finalScoreAway": 14.0},
	}

	end := Decode(ev).GameEnd
	if end == nil {
		t.Fatal("expected game end detail")
	}
	if home, ok := IntegerIn(end.HomeScore); !ok || home != 21 {
		t.Fatalf("unexpected home score: %v", end.HomeScore)
	}
	if away, ok := IntegerIn(end.AwayScore); !ok || away != 14 {
		t.Fatalf("unexpected away score: %v", end.AwayScore)
	}
}

func TestDecodeAll_StableSortKeepsTiedInputOrder(t *testing.T) {
	events := []Event{
		{EventID: "late", Timestamp: float64(300)},
		{EventID: "no-time-a"},
		{EventID: "no-time-b"},
		{EventID: "early", Timestamp: float64(100)},
	}

	decoded := DecodeAll(events)
	order := make([]string, 0, len(decoded))
	for _, item := range decoded {
		order = append(order, item.Event.EventID)
	}

	expected := []string{"no-time-a", "no-time-b", "early", "late"}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("unexpected order: %v", order)
		}
	}
}
