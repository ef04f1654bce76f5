package standing

import (
	"fmt"
	"testing"

	"github.com/riskibarqy/foosball-league/internal/domain/match"
)

func result(seq int, a, b string, goalsA, goalsB int) match.Result {
	return match.Result{
		ID:       fmt.Sprintf("m%d", seq),
		Sequence: int64(seq),
		PairKey:  match.PairKey(a, b),
		TeamAID:  a,
		TeamBID:  b,
		GoalsA:   goalsA,
		GoalsB:   goalsB,
	}
}

func order(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.TeamID)
	}
	return out
}

func assertOrder(t *testing.T, rows []Row, want ...string) {
	t.Helper()

	got := order(rows)
	if len(got) != len(want) {
		t.Fatalf("unexpected table size: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got=%v want=%v", got, want)
		}
		if rows[i].Position != i+1 {
			t.Fatalf("unexpected position for %s: got=%d want=%d", rows[i].TeamID, rows[i].Position, i+1)
		}
	}
}

func TestCompute_EmptyWhenNobodyReachesMinimum(t *testing.T) {
	t.Parallel()

	ledger := []match.Result{
		result(1, "x", "y", 3, 1),
		result(2, "x", "z", 2, 2),
		result(3, "y", "z", 0, 0),
	}

	rows := Compute([]string{"x", "y", "z", "w"}, ledger, DefaultRules())
	if len(rows) != 0 {
		t.Fatalf("expected empty table, got %v", order(rows))
	}
}

func TestCompute_FourTeamGroupAfterEveryoneHasThreeGames(t *testing.T) {
	t.Parallel()

	ledger := []match.Result{
		result(1, "x", "y", 3, 1),
		result(2, "x", "z", 2, 2),
		result(3, "y", "z", 0, 0),
		result(4, "x", "w", 1, 1),
		result(5, "y", "w", 2, 0),
		result(6, "z", "w", 0, 1),
	}

	rows := Compute([]string{"x", "y", "z", "w"}, ledger, DefaultRules())
	assertOrder(t, rows, "x", "y", "w", "z")

	x := rows[0]
	if x.Points != 4 || x.Won != 1 || x.Draw != 2 || x.Lost != 0 || x.GoalsFor != 6 || x.GoalsAgainst != 4 || x.GoalDifference != 2 {
		t.Fatalf("unexpected row for x: %+v", x)
	}
	// y and w share points and wins; y won the direct encounter.
	if rows[1].Points != 3 || rows[2].Points != 3 || rows[1].Won != 1 || rows[2].Won != 1 {
		t.Fatalf("expected y and w tied on points and wins: %+v %+v", rows[1], rows[2])
	}
}

func TestCompute_PointsAreDerivedFromWinsAndDraws(t *testing.T) {
	t.Parallel()

	ledger := []match.Result{
		result(1, "a", "b", 1, 0),
		result(2, "a", "c", 0, 0),
		result(3, "b", "c", 2, 5),
		result(4, "a", "b", 3, 3),
		result(5, "c", "a", 1, 4),
		result(6, "b", "c", 1, 0),
	}

	rules := DefaultRules()
	for _, row := range Compute([]string{"a", "b", "c"}, ledger, rules) {
		if row.Points != row.Won*rules.PointsPerWin+row.Draw*rules.PointsPerDraw {
			t.Fatalf("points mismatch for %s: %+v", row.TeamID, row)
		}
		if row.Played != row.Won+row.Draw+row.Lost {
			t.Fatalf("played mismatch for %s: %+v", row.TeamID, row)
		}
		if row.GoalDifference != row.GoalsFor-row.GoalsAgainst {
			t.Fatalf("goal difference mismatch for %s: %+v", row.TeamID, row)
		}
	}
}

func TestCompute_CleanSlateRemovesEncountersOfDroppedTeams(t *testing.T) {
	t.Parallel()

	// d only played once; its win over a must not count for anybody.
	ledger := []match.Result{
		result(1, "a", "b", 1, 0),
		result(2, "a", "c", 1, 0),
		result(3, "b", "c", 1, 0),
		result(4, "a", "b", 0, 1),
		result(5, "b", "c", 0, 1),
		result(6, "c", "a", 2, 2),
		result(7, "d", "a", 9, 0),
	}

	rows := Compute([]string{"a", "b", "c", "d"}, ledger, DefaultRules())
	for _, row := range rows {
		if row.TeamID == "d" {
			t.Fatalf("team under minimum must not be ranked")
		}
		if row.TeamID == "a" && (row.Played != 4 || row.GoalsAgainst != 3) {
			t.Fatalf("dropped team's encounter leaked into a: %+v", row)
		}
	}

	prefiltered := Compute([]string{"a", "b", "c"}, ledger[:6], DefaultRules())
	if fmt.Sprint(rows) != fmt.Sprint(prefiltered) {
		t.Fatalf("expected identical tables:\n got=%+v\nwant=%+v", rows, prefiltered)
	}
}

func TestCompute_CleanSlateRepeatsUntilStable(t *testing.T) {
	t.Parallel()

	// Once d is removed, c falls to two encounters and must go as well.
	ledger := []match.Result{
		result(1, "a", "b", 1, 0),
		result(2, "a", "b", 1, 1),
		result(3, "a", "b", 0, 2),
		result(4, "a", "c", 1, 0),
		result(5, "b", "c", 1, 0),
		result(6, "c", "d", 1, 0),
	}

	rows := Compute([]string{"a", "b", "c", "d"}, ledger, DefaultRules())
	assertOrder(t, rows, "b", "a")
	for _, row := range rows {
		if row.Played != 3 {
			t.Fatalf("expected only encounters between a and b: %+v", row)
		}
	}
}

func TestCompute_IgnoresEncountersWithOutsiders(t *testing.T) {
	t.Parallel()

	ledger := []match.Result{
		result(1, "a", "b", 1, 0),
		result(2, "a", "b", 1, 0),
		result(3, "a", "b", 1, 0),
		result(4, "a", "ghost", 0, 7),
	}

	rows := Compute([]string{"a", "b"}, ledger, DefaultRules())
	assertOrder(t, rows, "a", "b")
	if rows[0].GoalsAgainst != 0 {
		t.Fatalf("encounter with a non-member counted: %+v", rows[0])
	}
}

func TestCompute_HeadToHeadOutranksGoalDifference(t *testing.T) {
	t.Parallel()

	// p, q and r finish on 4 points and 2 wins. r has by far the best goal
	// difference but lost both direct encounters.
	ledger := []match.Result{
		result(1, "p", "q", 1, 0),
		result(2, "q", "r", 1, 0),
		result(3, "p", "r", 1, 0),
		result(4, "s", "p", 1, 0),
		result(5, "t", "p", 1, 0),
		result(6, "q", "s", 1, 0),
		result(7, "t", "q", 1, 0),
		result(8, "r", "s", 5, 0),
		result(9, "r", "t", 5, 0),
		result(10, "s", "t", 0, 0),
	}

	rows := Compute([]string{"p", "q", "r", "s", "t"}, ledger, DefaultRules())
	assertOrder(t, rows, "t", "p", "q", "r", "s")
}

func TestCompute_CircularHeadToHeadFallsThroughToGoalDifference(t *testing.T) {
	t.Parallel()

	ledger := []match.Result{
		result(1, "p", "q", 1, 0),
		result(2, "q", "r", 1, 0),
		result(3, "r", "p", 1, 0),
		result(4, "p", "s", 4, 0),
		result(5, "q", "s", 2, 0),
		result(6, "r", "s", 3, 0),
	}

	rows := Compute([]string{"p", "q", "r", "s"}, ledger, DefaultRules())
	assertOrder(t, rows, "p", "r", "q", "s")
}

func TestCompute_IsDeterministic(t *testing.T) {
	t.Parallel()

	ledger := []match.Result{
		result(1, "a", "b", 0, 0),
		result(2, "b", "c", 0, 0),
		result(3, "c", "a", 0, 0),
		result(4, "a", "b", 0, 0),
		result(5, "b", "c", 0, 0),
		result(6, "c", "a", 0, 0),
	}

	first := Compute([]string{"c", "a", "b"}, ledger, DefaultRules())
	assertOrder(t, first, "a", "b", "c")

	reversed := make([]match.Result, len(ledger))
	for i := range ledger {
		reversed[len(ledger)-1-i] = ledger[i]
	}
	for i := 0; i < 10; i++ {
		again := Compute([]string{"b", "c", "a"}, reversed, DefaultRules())
		if fmt.Sprint(again) != fmt.Sprint(first) {
			t.Fatalf("order changed between runs: got=%v want=%v", order(again), order(first))
		}
	}
}

func TestCompareTail_MoreGamesPlayedRanksHigher(t *testing.T) {
	t.Parallel()

	busy := Row{TeamID: "z", Played: 5, GoalDifference: -3}
	idle := Row{TeamID: "a", Played: 4, GoalDifference: 6}
	if compareTail(busy, idle) >= 0 {
		t.Fatalf("expected team with more encounters to rank first")
	}

	left := Row{TeamID: "a", Played: 4}
	right := Row{TeamID: "b", Played: 4}
	if compareTail(left, right) >= 0 || compareTail(right, left) <= 0 {
		t.Fatalf("expected team id to break complete ties")
	}
}
