package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/foosball-league/internal/domain/draw"
	"github.com/riskibarqy/foosball-league/internal/domain/standing"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
	"github.com/riskibarqy/foosball-league/internal/domain/user"
	"github.com/riskibarqy/foosball-league/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/foosball-league/internal/platform/id"
	"github.com/riskibarqy/foosball-league/internal/platform/logging"
)

const fixtureTournamentID = "liga7"

type leagueFixture struct {
	tournaments *memory.TournamentRepository
	teams       *memory.TeamRepository
	matches     *memory.MatchRepository

	tournamentSvc *TournamentService
	teamSvc       *TeamService
	matchSvc      *MatchService
	standingSvc   *StandingService
	assignSvc     *GroupAssignmentService
}

// newLeagueFixture builds every service on the in-memory store with tournament "liga7" and
// the given teams already registered. Each team is owned by "owner-<id>".
func newLeagueFixture(t *testing.T, teams ...team.Team) *leagueFixture {
	t.Helper()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tournaments := memory.NewTournamentRepository([]tournament.Tournament{{
		ID:               fixtureTournamentID,
		Name:             "Liga7",
		StartDate:        created,
		EstimatedEndDate: created.AddDate(0, 1, 0),
		CreatedAt:        created,
	}})

	seeded := make([]team.Team, 0, len(teams))
	for _, item := range teams {
		if item.TournamentID == "" {
			item.TournamentID = fixtureTournamentID
		}
		if item.Name == "" {
			item.Name = "Team " + item.ID
		}
		if item.OwnerID == "" {
			item.OwnerID = ownerOf(item.ID)
		}
		seeded = append(seeded, item)
	}
	teamRepo := memory.NewTeamRepository(seeded)
	matchRepo := memory.NewMatchRepository()
	logger := logging.NewNop()

	standingSvc, err := NewStandingService(tournaments, teamRepo, matchRepo, standing.DefaultRules(), StandingServiceOptions{}, logger)
	if err != nil {
		t.Fatalf("new standing service: %v", err)
	}
	t.Cleanup(standingSvc.Close)

	f := &leagueFixture{
		tournaments:   tournaments,
		teams:         teamRepo,
		matches:       matchRepo,
		tournamentSvc: NewTournamentService(tournaments, teamRepo, idgen.NewSequence("tournament"), logger),
		teamSvc:       NewTeamService(tournaments, teamRepo, idgen.NewSequence("team"), 2, logger),
		matchSvc:      NewMatchService(tournaments, teamRepo, matchRepo, idgen.NewSequence("match"), logger),
		standingSvc:   standingSvc,
		assignSvc:     NewGroupAssignmentService(tournaments, teamRepo, draw.NewRandom(2026), logger),
	}

	var tick atomic.Int64
	f.matchSvc.now = func() time.Time {
		return created.Add(time.Duration(tick.Add(1)) * time.Minute)
	}

	return f
}

func ownerOf(teamID string) string {
	return "owner-" + teamID
}

func reporterFor(teamID string) user.Principal {
	return user.Principal{Subject: ownerOf(teamID)}
}

func inGroup(group team.Group, ids ...string) []team.Team {
	out := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		out = append(out, team.Team{ID: id, Group: group})
	}
	return out
}

func (f *leagueFixture) record(t *testing.T, a, b string, goalsA, goalsB int) {
	t.Helper()

	_, err := f.matchSvc.Record(context.Background(), RecordMatchInput{
		TournamentID: fixtureTournamentID,
		TeamAID:      a,
		TeamBID:      b,
		GoalsA:       goalsA,
		GoalsB:       goalsB,
	}, reporterFor(a))
	if err != nil {
		t.Fatalf("record %s-%s: %v", a, b, err)
	}
}

func (f *leagueFixture) groupOf(t *testing.T, teamID string) team.Group {
	t.Helper()

	item, ok, err := f.teams.GetByID(context.Background(), fixtureTournamentID, teamID)
	if err != nil || !ok {
		t.Fatalf("get team %s: ok=%v err=%v", teamID, ok, err)
	}
	return item.Group
}

func concat(parts ...[]team.Team) []team.Team {
	var out []team.Team
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
