package recap

import "strings"

// ResolveSide maps a free-text team identifier to home/away. The
// literal strings "home" and "away" win outright; otherwise the value
// must equal one of the team names case-insensitively. Unresolved
// values return SideUnknown: the record stays in raw lists for display
// but contributes nothing to side-keyed aggregation.
func ResolveSide(team, homeTeam, awayTeam string) Side {
	value := strings.ToLower(strings.TrimSpace(team))
	if value == "" {
		return SideUnknown
	}

	switch {
	case value == "home", value == strings.ToLower(strings.TrimSpace(homeTeam)):
		return SideHome
	case value == "away", value == strings.ToLower(strings.TrimSpace(awayTeam)):
		return SideAway
	default:
		return SideUnknown
	}
}
