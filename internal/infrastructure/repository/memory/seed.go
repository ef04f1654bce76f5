package memory

import (
	"time"

	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
)

const (
	TournamentIDDemo = "liga7-demo"
	DemoOwnerID      = "demo-captain"
)

// SeedTournaments is the fixture loaded by the in-memory store in dev.
func SeedTournaments() []tournament.Tournament {
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	return []tournament.Tournament{
		{
			ID:               TournamentIDDemo,
			Name:             "Liga7",
			StartDate:        start,
			EstimatedEndDate: start.AddDate(0, 2, 0),
			CreatedAt:        start.AddDate(0, 0, -14),
		},
	}
}

func SeedTeams() []team.Team {
	created := time.Date(2026, time.February, 20, 18, 0, 0, 0, time.UTC)
	pair := func(a, b string) []team.Participant {
		return []team.Participant{{Name: a}, {Name: b}}
	}

	return []team.Team{
		{ID: "liga7-x", TournamentID: TournamentIDDemo, Name: "Los Xolos", Group: team.GroupA, OwnerID: DemoOwnerID, Participants: pair("Ana", "Beto"), CreatedAt: created},
		{ID: "liga7-y", TournamentID: TournamentIDDemo, Name: "Yaguares", Group: team.GroupA, OwnerID: "liga7-y-owner", Participants: pair("Caro", "Dani"), CreatedAt: created},
		{ID: "liga7-z", TournamentID: TournamentIDDemo, Name: "Zorros", Group: team.GroupA, OwnerID: "liga7-z-owner", Participants: pair("Eli", "Fer"), CreatedAt: created},
		{ID: "liga7-w", TournamentID: TournamentIDDemo, Name: "Wombats", Group: team.GroupA, OwnerID: "liga7-w-owner", Participants: pair("Gabo", "Hilda"), CreatedAt: created},
		{ID: "liga7-v", TournamentID: TournamentIDDemo, Name: "Vikingos", OwnerID: "liga7-v-owner", Participants: pair("Iris", "Juan"), CreatedAt: created},
		{ID: "liga7-u", TournamentID: TournamentIDDemo, Name: "Urracas", OwnerID: "liga7-u-owner", Participants: pair("Kim", "Lalo"), CreatedAt: created},
	}
}
