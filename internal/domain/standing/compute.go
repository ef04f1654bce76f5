package standing

import "github.com/riskibarqy/foosball-league/internal/domain/match"

// Compute reduces a group's ledger into its ranked table.
//
// Only encounters between two of teamIDs are considered. Teams under rules.MinGames are
// dropped with all their encounters before aggregation, repeatedly, until every remaining
// team meets the minimum. The output order is total and depends only on the inputs.
func Compute(teamIDs []string, results []match.Result, rules Rules) []Row {
	members := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if id == "" {
			continue
		}
		members[id] = struct{}{}
	}
	if len(members) == 0 {
		return []Row{}
	}

	eligible := cleanSlate(members, between(members, results), rules.MinGames)
	if len(eligible.teams) == 0 {
		return []Row{}
	}

	rows := aggregate(eligible.teams, eligible.results, rules)
	ordered := rank(rows, eligible.results, rules)
	for idx := range ordered {
		ordered[idx].Position = idx + 1
	}

	return ordered
}

type pool struct {
	teams   map[string]struct{}
	results []match.Result
}

func cleanSlate(teams map[string]struct{}, results []match.Result, minGames int) pool {
	active := make(map[string]struct{}, len(teams))
	for id := range teams {
		active[id] = struct{}{}
	}

	for {
		played := make(map[string]int, len(active))
		for _, r := range results {
			if !within(active, r) {
				continue
			}
			played[r.TeamAID]++
			played[r.TeamBID]++
		}

		dropped := false
		for id := range active {
			if played[id] < minGames {
				delete(active, id)
				dropped = true
			}
		}
		if !dropped {
			break
		}
	}

	return pool{teams: active, results: between(active, results)}
}

func between(teams map[string]struct{}, results []match.Result) []match.Result {
	out := make([]match.Result, 0, len(results))
	for _, r := range results {
		if within(teams, r) {
			out = append(out, r)
		}
	}
	return out
}

func within(teams map[string]struct{}, r match.Result) bool {
	if r.TeamAID == r.TeamBID {
		return false
	}
	_, okA := teams[r.TeamAID]
	_, okB := teams[r.TeamBID]
	return okA && okB
}

func aggregate(teams map[string]struct{}, results []match.Result, rules Rules) map[string]*Row {
	rows := make(map[string]*Row, len(teams))
	for id := range teams {
		rows[id] = &Row{TeamID: id}
	}

	for _, r := range results {
		a, okA := rows[r.TeamAID]
		b, okB := rows[r.TeamBID]
		if !okA || !okB {
			continue
		}
		apply(a, r.GoalsA, r.GoalsB, rules)
		apply(b, r.GoalsB, r.GoalsA, rules)
	}

	return rows
}

func apply(row *Row, scored, conceded int, rules Rules) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst
	switch {
	case scored > conceded:
		row.Won++
		row.Points += rules.PointsPerWin
	case scored < conceded:
		row.Lost++
	default:
		row.Draw++
		row.Points += rules.PointsPerDraw
	}
}
