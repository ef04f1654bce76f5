package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/foosball-league/internal/domain/draw"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
	teammock "github.com/riskibarqy/foosball-league/internal/mocks/domain/team"
	tournamentmock "github.com/riskibarqy/foosball-league/internal/mocks/domain/tournament"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func unassignedTeams(n int) []team.Team {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, fmt.Sprintf("t%02d", i))
	}
	return inGroup("", ids...)
}

func TestGroupAssignmentService_Assign_AppliesBatch(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t, unassignedTeams(3)...)
	got, err := f.assignSvc.Assign(context.Background(), fixtureTournamentID, []AssignTeamInput{
		{TeamID: "t00", Group: "a"},
		{TeamID: "t01", Group: " B "},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, team.GroupA, f.groupOf(t, "t00"))
	require.Equal(t, team.GroupB, f.groupOf(t, "t01"))
	require.Equal(t, team.Group(""), f.groupOf(t, "t02"))
}

func TestGroupAssignmentService_Assign_UnknownTeamLeavesRosterUntouched(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t, concat(inGroup(team.GroupC, "c1"), unassignedTeams(2))...)
	_, err := f.assignSvc.Assign(context.Background(), fixtureTournamentID, []AssignTeamInput{
		{TeamID: "t00", Group: "A"},
		{TeamID: "c1", Group: "B"},
		{TeamID: "ghost", Group: "A"},
	})
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatalf("expected ErrUnknownTeam, got %v", err)
	}

	if g := f.groupOf(t, "t00"); g != "" {
		t.Fatalf("t00 must stay unassigned, got %s", g)
	}
	if g := f.groupOf(t, "c1"); g != team.GroupC {
		t.Fatalf("c1 must stay in C, got %s", g)
	}
}

func TestGroupAssignmentService_Assign_InvalidGroup(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t, unassignedTeams(2)...)
	_, err := f.assignSvc.Assign(context.Background(), fixtureTournamentID, []AssignTeamInput{
		{TeamID: "t00", Group: "A"},
		{TeamID: "t01", Group: "D"},
	})
	if !errors.Is(err, ErrInvalidGroup) {
		t.Fatalf("expected ErrInvalidGroup, got %v", err)
	}
	if g := f.groupOf(t, "t00"); g != "" {
		t.Fatalf("t00 must stay unassigned, got %s", g)
	}
}

func TestGroupAssignmentService_Assign_RejectsEmptyAndDuplicateBatches(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t, unassignedTeams(1)...)
	_, err := f.assignSvc.Assign(context.Background(), fixtureTournamentID, nil)
	if !errors.Is(err, ErrEmptyRoster) {
		t.Fatalf("expected ErrEmptyRoster, got %v", err)
	}

	_, err = f.assignSvc.Assign(context.Background(), fixtureTournamentID, []AssignTeamInput{
		{TeamID: "t00", Group: "A"},
		{TeamID: "t00", Group: "B"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGroupAssignmentService_AssignRandom_BalancesGroups(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 3, 5, 8, 10, 13} {
		n := n
		t.Run(fmt.Sprintf("teams=%d", n), func(t *testing.T) {
			t.Parallel()

			f := newLeagueFixture(t, unassignedTeams(n)...)
			got, err := f.assignSvc.AssignRandom(context.Background(), fixtureTournamentID, nil)
			require.NoError(t, err)
			require.Len(t, got, n)

			roster, err := f.teams.ListByTournament(context.Background(), fixtureTournamentID)
			require.NoError(t, err)

			sizes := map[team.Group]int{}
			for _, item := range roster {
				require.True(t, item.Assigned(), "team %s left unassigned", item.ID)
				sizes[item.Group]++
			}
			lo, hi := n, 0
			for _, g := range team.Groups {
				lo = min(lo, sizes[g])
				hi = max(hi, sizes[g])
			}
			require.LessOrEqual(t, hi-lo, 1, "sizes=%v", sizes)
		})
	}
}

func TestGroupAssignmentService_AssignRandom_OnlyFillsUnassigned(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t, concat(
		inGroup(team.GroupA, "a1", "a2"),
		unassignedTeams(4),
	)...)

	got, err := f.assignSvc.AssignRandom(context.Background(), fixtureTournamentID, []string{"A", "B", "C"})
	require.NoError(t, err)
	require.Len(t, got, 4)

	require.Equal(t, team.GroupA, f.groupOf(t, "a1"))
	require.Equal(t, team.GroupA, f.groupOf(t, "a2"))
	for _, a := range got {
		require.NotEqual(t, team.GroupA, a.Group, "A already had the most members")
	}

	_, err = f.assignSvc.AssignRandom(context.Background(), fixtureTournamentID, nil)
	if !errors.Is(err, ErrEmptyRoster) {
		t.Fatalf("expected ErrEmptyRoster once every team is placed, got %v", err)
	}
}

func TestGroupAssignmentService_AssignRandom_RespectsRequestedGroups(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t, unassignedTeams(4)...)
	got, err := f.assignSvc.AssignRandom(context.Background(), fixtureTournamentID, []string{"c", "B", "C"})
	require.NoError(t, err)

	sizes := map[team.Group]int{}
	for _, a := range got {
		sizes[a.Group]++
	}
	require.Equal(t, map[team.Group]int{team.GroupB: 2, team.GroupC: 2}, sizes)

	_, err = f.assignSvc.AssignRandom(context.Background(), fixtureTournamentID, []string{"Q"})
	if !errors.Is(err, ErrInvalidGroup) {
		t.Fatalf("expected ErrInvalidGroup, got %v", err)
	}
}

func TestGroupAssignmentService_AssignRandom_SameSeedSameDraw(t *testing.T) {
	t.Parallel()

	first := newLeagueFixture(t, unassignedTeams(9)...)
	second := newLeagueFixture(t, unassignedTeams(9)...)

	a, err := first.assignSvc.AssignRandom(context.Background(), fixtureTournamentID, nil)
	require.NoError(t, err)
	b, err := second.assignSvc.AssignRandom(context.Background(), fixtureTournamentID, nil)
	require.NoError(t, err)

	byTeam := func(items []team.Assignment) map[string]team.Group {
		out := make(map[string]team.Group, len(items))
		for _, item := range items {
			out[item.TeamID] = item.Group
		}
		return out
	}
	require.Equal(t, byTeam(a), byTeam(b))
}

func TestGroupAssignmentService_AssignRandom_ConcurrentCallsNeverDoubleAssign(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t, unassignedTeams(12)...)

	var succeeded, emptied atomic.Int32
	var placed atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Go(func() {
			got, err := f.assignSvc.AssignRandom(context.Background(), fixtureTournamentID, nil)
			switch {
			case err == nil:
				succeeded.Add(1)
				placed.Add(int32(len(got)))
			case errors.Is(err, ErrEmptyRoster):
				emptied.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
	wg.Wait()

	if succeeded.Load() != 1 || emptied.Load() != 1 {
		t.Fatalf("expected one winner and one EmptyRoster, got success=%d empty=%d", succeeded.Load(), emptied.Load())
	}
	if placed.Load() != 12 {
		t.Fatalf("expected every team placed exactly once, got %d placements", placed.Load())
	}
}

func TestGroupAssignmentService_AssignRandom_ConflictUsingMockery(t *testing.T) {
	t.Parallel()

	tournamentRepo := tournamentmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewGroupAssignmentService(tournamentRepo, teamRepo, draw.NewRandom(1), nil)

	tournamentRepo.
		On("GetByID", mock.Anything, fixtureTournamentID).
		Return(tournament.Tournament{ID: fixtureTournamentID}, true, nil).
		Once()
	teamRepo.
		On("ListByTournament", mock.Anything, fixtureTournamentID).
		Return(unassignedTeams(2), nil).
		Once()
	// Another process placed a team between our read and our write.
	teamRepo.
		On("AssignGroups", mock.Anything, fixtureTournamentID, mock.AnythingOfType("[]team.Assignment"), true).
		Return(fmt.Errorf("team t01: %w", team.ErrAlreadyAssigned)).
		Once()

	_, err := service.AssignRandom(context.Background(), fixtureTournamentID, nil)
	if !errors.Is(err, ErrAssignmentConflict) {
		t.Fatalf("expected ErrAssignmentConflict, got %v", err)
	}
}
