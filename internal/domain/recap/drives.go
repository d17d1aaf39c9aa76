package recap

import "github.com/gridline/gamecast/internal/domain/event"

// SummarizeDrives groups the timestamp-ordered event stream into
// possession spans via a two-state machine: drive_start opens a drive,
// drive_end closes it, everything in between is captured. Events seen
// while no drive is open are ignored. A stream ending mid-drive still
// emits the open drive, provided it captured at least one event; a
// drive that captured nothing is never emitted.
func SummarizeDrives(decoded []event.Decoded) []Drive {
	out := make([]Drive, 0, 8)

	var start *event.Decoded
	var captured []event.Decoded
	inDrive := false

	for i := range decoded {
		item := decoded[i]
		switch {
		case !inDrive && item.DriveStart:
			inDrive = true
			start = &decoded[i]
			captured = nil
		case inDrive && item.DriveEnd:
			if len(captured) > 0 {
				out = append(out, closeDrive(start, &decoded[i], captured, len(out)))
			}
			inDrive = false
			start = nil
			captured = nil
		case inDrive:
			captured = append(captured, item)
		}
	}

	if inDrive && len(captured) > 0 {
		out = append(out, closeDrive(start, nil, captured, len(out)))
	}

	return out
}

func closeDrive(start, end *event.Decoded, captured []event.Decoded, index int) Drive {
	drive := Drive{
		Team:    start.Event.PayloadString("team"),
		Quarter: payloadQuarter(start.Event),
	}
	if drive.Team == "" {
		drive.Team = captured[0].Event.PayloadString("team")
	}
	if drive.Quarter == 0 {
		drive.Quarter = payloadQuarter(captured[0].Event)
	}

	drive.DriveNumber = driveNumber(start, end, index)
	drive.Plays = drivePlays(end, captured)
	drive.Yards = driveYards(end, captured)
	if end != nil {
		drive.Result = end.Event.PayloadString("result")
	}

	return drive
}

func payloadQuarter(ev event.Event) int {
	quarter, _ := ev.PayloadInt("quarter")
	return quarter
}

func driveNumber(start, end *event.Decoded, index int) int {
	if number, ok := start.Event.PayloadInt("driveNumber"); ok {
		return number
	}
	if end != nil {
		if number, ok := end.Event.PayloadInt("driveNumber"); ok {
			return number
		}
	}
	return index + 1
}

func drivePlays(end *event.Decoded, captured []event.Decoded) int {
	if end != nil {
		if plays, ok := end.Event.PayloadInt("plays"); ok {
			return plays
		}
	}
	count := 0
	for _, item := range captured {
		if item.IsPlay {
			count++
		}
	}
	return count
}

func driveYards(end *event.Decoded, captured []event.Decoded) int {
	if end != nil {
		if yards, ok := end.Event.PayloadNumber("yards"); ok {
			return int(yards)
		}
	}
	total := 0.0
	for _, item := range captured {
		if yards, ok := item.Event.PayloadNumber("yards"); ok {
			total += yards
		}
	}
	return int(total)
}
