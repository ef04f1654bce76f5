package standing

// Row is one team's derived line in a group table. It is never stored.
type Row struct {
	TeamID         string
	Position       int
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// Rules holds the league scoring parameters.
type Rules struct {
	PointsPerWin  int
	PointsPerDraw int
	// MinGames is the number of encounters a team needs to be ranked. Teams below it
	// are removed together with every encounter they played.
	MinGames int
}

func DefaultRules() Rules {
	return Rules{
		PointsPerWin:  2,
		PointsPerDraw: 1,
		MinGames:      3,
	}
}
