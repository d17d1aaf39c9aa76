package recap

// AggregateQuarters buckets scoring-play points into a cumulative
// per-quarter scoreboard. A full regulation game is assumed: the
// output always covers quarters 1..max(4, highest observed quarter),
// and each entry carries the running total through the end of that
// quarter, so both columns are non-decreasing.
func AggregateQuarters(plays []ScoringPlay, homeTeam, awayTeam string) []QuarterScore {
	maxQuarter := 4
	homeByQuarter := make(map[int]int)
	awayByQuarter := make(map[int]int)

	for _, play := range plays {
		if play.Quarter > maxQuarter {
			maxQuarter = play.Quarter
		}
		switch ResolveSide(play.Team, homeTeam, awayTeam) {
		case SideHome:
			homeByQuarter[play.Quarter] += play.Points
		case SideAway:
			awayByQuarter[play.Quarter] += play.Points
		}
	}

	out := make([]QuarterScore, 0, maxQuarter)
	homeTotal, awayTotal := 0, 0
	for quarter := 1; quarter <= maxQuarter; quarter++ {
		homeTotal += homeByQuarter[quarter]
		awayTotal += awayByQuarter[quarter]
		out = append(out, QuarterScore{
			Quarter:    quarter,
			HomePoints: homeTotal,
			AwayPoints: awayTotal,
		})
	}
	return out
}
