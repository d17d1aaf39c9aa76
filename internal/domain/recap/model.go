package recap

// Side is the resolved orientation of a free-text team identifier.
type Side string

const (
	SideHome    Side = "home"
	SideAway    Side = "away"
	SideUnknown Side = ""
)

// ScoringPlay is one attributed scoring event. Timestamp orders the
// list internally and does not appear in the serialized contract.
type ScoringPlay struct {
	Quarter     int    `json:"quarter"`
	Clock       string `json:"clock"`
	Team        string `json:"team"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	EventID     string `json:"eventId,omitempty"`
	Timestamp   int64  `json:"-"`
}

type Turnover struct {
	Quarter     int    `json:"quarter"`
	Clock       string `json:"clock"`
	Team        string `json:"team"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   int64  `json:"-"`
}

type Drive struct {
	Quarter     int    `json:"quarter"`
	Team        string `json:"team"`
	DriveNumber int    `json:"driveNumber"`
	Plays       int    `json:"plays,omitempty"`
	Yards       int    `json:"yards,omitempty"`
	Result      string `json:"result"`
}

// QuarterScore holds cumulative totals through the end of the quarter,
// not the quarter's own points. Consumers depend on this.
type QuarterScore struct {
	Quarter    int `json:"quarter"`
	HomePoints int `json:"homePoints"`
	AwayPoints int `json:"awayPoints"`
}

type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Projection is the canonical read model of one game, rebuilt from the
// full event log on every request and never persisted.
type Projection struct {
	GameID       string         `json:"gameId"`
	HomeTeam     string         `json:"homeTeam"`
	AwayTeam     string         `json:"awayTeam"`
	FinalScore   Score          `json:"finalScore"`
	Quarters     []QuarterScore `json:"quarters"`
	ScoringPlays []ScoringPlay  `json:"scoringPlays"`
	Turnovers    []Turnover     `json:"turnovers"`
	Drives       []Drive        `json:"drives"`
	EventsCount  int            `json:"eventsCount"`
}
