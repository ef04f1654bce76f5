package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/user"
)

func twoPlayers() []team.Participant {
	return []team.Participant{{Name: "Ana", PhoneNumber: " 555-0101 "}, {Name: "Beto"}}
}

func TestTeamService_Register(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	got, err := f.teamSvc.Register(context.Background(), RegisterTeamInput{
		TournamentID: fixtureTournamentID,
		Name:         " Los Xolos ",
		PhoneNumber:  "555-0100",
		Participants: twoPlayers(),
		OwnerID:      "captain-1",
	})
	if err != nil {
		t.Fatalf("register team: %v", err)
	}
	if got.Name != "Los Xolos" || got.Assigned() || got.OwnerID != "captain-1" {
		t.Fatalf("unexpected team: %+v", got)
	}
	if len(got.Participants) != 2 || got.Participants[0].PhoneNumber != "555-0101" {
		t.Fatalf("unexpected participants: %+v", got.Participants)
	}
}

func TestTeamService_Register_DuplicateNameIgnoresCase(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t, team.Team{ID: "x", Name: "Los Xolos"})
	_, err := f.teamSvc.Register(context.Background(), RegisterTeamInput{
		TournamentID: fixtureTournamentID,
		Name:         "LOS XOLOS",
		Participants: twoPlayers(),
		OwnerID:      "captain-2",
	})
	if !errors.Is(err, ErrDuplicateTeamName) {
		t.Fatalf("expected ErrDuplicateTeamName, got %v", err)
	}
}

func TestTeamService_Register_OneTeamPerOwner(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	ctx := context.Background()
	first, err := f.teamSvc.Register(ctx, RegisterTeamInput{
		TournamentID: fixtureTournamentID,
		Name:         "T1",
		Participants: twoPlayers(),
		OwnerID:      "captain-5",
	})
	if err != nil {
		t.Fatalf("register first team: %v", err)
	}

	_, err = f.teamSvc.Register(ctx, RegisterTeamInput{
		TournamentID: fixtureTournamentID,
		Name:         "T2",
		Participants: twoPlayers(),
		OwnerID:      " captain-5 ",
	})
	if !errors.Is(err, ErrOwnerHasTeam) || !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrOwnerHasTeam, got %v", err)
	}

	roster, _ := f.teamSvc.Roster(ctx, fixtureTournamentID)
	if len(roster) != 1 || roster[0].ID != first.ID {
		t.Fatalf("second team must not be stored, got %+v", roster)
	}

	if _, err := f.assignSvc.Assign(ctx, fixtureTournamentID, []AssignTeamInput{{TeamID: first.ID, Group: "A"}}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	other, err := f.teamSvc.Register(ctx, RegisterTeamInput{
		TournamentID: fixtureTournamentID,
		Name:         "T3",
		Participants: twoPlayers(),
		OwnerID:      "captain-6",
	})
	if err != nil {
		t.Fatalf("register other team: %v", err)
	}
	if _, err := f.assignSvc.Assign(ctx, fixtureTournamentID, []AssignTeamInput{{TeamID: other.ID, Group: "A"}}); err != nil {
		t.Fatalf("assign other: %v", err)
	}
	_, err = f.matchSvc.Record(ctx, RecordMatchInput{
		TournamentID: fixtureTournamentID,
		TeamAID:      first.ID,
		TeamBID:      other.ID,
		GoalsA:       1,
	}, user.Principal{Subject: "captain-5"})
	if err != nil {
		t.Fatalf("owner of one side may report: %v", err)
	}
}

func TestTeamService_Register_SameOwnerInAnotherTournament(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t, team.Team{ID: "x", OwnerID: "captain-7"})
	ctx := context.Background()
	liga8, err := f.tournamentSvc.Create(ctx, CreateTournamentInput{
		Name:             "Liga8",
		StartDate:        time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EstimatedEndDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}

	if _, err := f.teamSvc.Register(ctx, RegisterTeamInput{
		TournamentID: liga8.ID,
		Name:         "Team x",
		Participants: twoPlayers(),
		OwnerID:      "captain-7",
	}); err != nil {
		t.Fatalf("owner may register once per tournament: %v", err)
	}
}

func TestTeamService_ForOwner(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t, inGroup(team.GroupA, "x", "y")...)
	ctx := context.Background()

	got, err := f.teamSvc.ForOwner(ctx, fixtureTournamentID, ownerOf("y"))
	if err != nil {
		t.Fatalf("for owner: %v", err)
	}
	if got.ID != "y" {
		t.Fatalf("expected team y, got %+v", got)
	}

	_, err = f.teamSvc.ForOwner(ctx, fixtureTournamentID, "nobody")
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatalf("expected ErrUnknownTeam, got %v", err)
	}

	_, err = f.teamSvc.ForOwner(ctx, "missing", ownerOf("x"))
	if !errors.Is(err, ErrUnknownTournament) {
		t.Fatalf("expected ErrUnknownTournament, got %v", err)
	}
}

func TestTeamService_Register_UnknownTournament(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	_, err := f.teamSvc.Register(context.Background(), RegisterTeamInput{
		TournamentID: "missing",
		Name:         "Ghosts",
		Participants: twoPlayers(),
		OwnerID:      "captain-3",
	})
	if !errors.Is(err, ErrUnknownTournament) {
		t.Fatalf("expected ErrUnknownTournament, got %v", err)
	}
}

func TestTeamService_Register_EnforcesMinimumParticipants(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	_, err := f.teamSvc.Register(context.Background(), RegisterTeamInput{
		TournamentID: fixtureTournamentID,
		Name:         "Solo",
		Participants: []team.Participant{{Name: "Ana"}, {Name: "   "}},
		OwnerID:      "captain-4",
	})
	if !errors.Is(err, ErrTooFewParticipants) {
		t.Fatalf("expected ErrTooFewParticipants, got %v", err)
	}
}

func TestTeamService_TeamsByGroup(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t,
		team.Team{ID: "a2", Name: "zebras", Group: team.GroupA},
		team.Team{ID: "a1", Name: "Antelopes", Group: team.GroupA},
		team.Team{ID: "b1", Name: "Bisons", Group: team.GroupB},
		team.Team{ID: "u1", Name: "Unplaced"},
	)

	got, err := f.teamSvc.TeamsByGroup(context.Background(), fixtureTournamentID)
	if err != nil {
		t.Fatalf("teams by group: %v", err)
	}
	if got.Total != 4 || len(got.Unassigned) != 1 || got.Unassigned[0].ID != "u1" {
		t.Fatalf("unexpected grouping: %+v", got)
	}
	groupA := got.Groups[team.GroupA]
	if len(groupA) != 2 || groupA[0].ID != "a1" || groupA[1].ID != "a2" {
		t.Fatalf("expected group A sorted by name, got %+v", groupA)
	}
	if groupC, ok := got.Groups[team.GroupC]; !ok || len(groupC) != 0 {
		t.Fatalf("expected empty group C to be present, got %+v", groupC)
	}
}

func TestTeamService_Opponents(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t, concat(
		inGroup(team.GroupA, "x", "y", "z"),
		inGroup(team.GroupB, "b"),
		inGroup("", "u"),
	)...)

	got, err := f.teamSvc.Opponents(context.Background(), fixtureTournamentID, "x")
	if err != nil {
		t.Fatalf("opponents: %v", err)
	}
	if len(got) != 2 || got[0].ID != "y" || got[1].ID != "z" {
		t.Fatalf("unexpected opponents: %+v", got)
	}

	got, err = f.teamSvc.Opponents(context.Background(), fixtureTournamentID, "u")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected no opponents for an unassigned team, got %+v err=%v", got, err)
	}

	_, err = f.teamSvc.Opponents(context.Background(), fixtureTournamentID, "ghost")
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatalf("expected ErrUnknownTeam, got %v", err)
	}
}
