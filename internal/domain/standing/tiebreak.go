package standing

import (
	"sort"

	"github.com/riskibarqy/foosball-league/internal/domain/match"
)

// rank orders the table by the tie-break chain:
//  1. points
//  2. encounters won
//  3. head-to-head among the tied teams only (recursive mini-tables)
//  4. encounters played
//  5. goal difference
//  6. goals for
//  7. encounters won, then team id
func rank(rows map[string]*Row, results []match.Result, rules Rules) []Row {
	ids := sortedIDs(rows)
	sort.SliceStable(ids, func(i, j int) bool {
		return comparePrimary(*rows[ids[i]], *rows[ids[j]]) < 0
	})

	out := make([]Row, 0, len(ids))
	for _, block := range partition(ids, func(a, b string) bool {
		return comparePrimary(*rows[a], *rows[b]) == 0
	}) {
		if len(block) == 1 {
			out = append(out, *rows[block[0]])
			continue
		}
		for _, sub := range headToHead(block, results, rules) {
			sort.SliceStable(sub, func(i, j int) bool {
				return compareTail(*rows[sub[i]], *rows[sub[j]]) < 0
			})
			for _, id := range sub {
				out = append(out, *rows[id])
			}
		}
	}

	return out
}

// headToHead splits a tied block using only the encounters among its members. It returns
// the block as ordered sub-blocks; a sub-block with more than one team could not be split.
func headToHead(block []string, results []match.Result, rules Rules) [][]string {
	members := make(map[string]struct{}, len(block))
	for _, id := range block {
		members[id] = struct{}{}
	}
	mini := aggregate(members, between(members, results), rules)

	ids := sortedIDs(mini)
	sort.SliceStable(ids, func(i, j int) bool {
		return comparePrimary(*mini[ids[i]], *mini[ids[j]]) < 0
	})
	parts := partition(ids, func(a, b string) bool {
		return comparePrimary(*mini[a], *mini[b]) == 0
	})
	if len(parts) == 1 {
		return parts
	}

	out := make([][]string, 0, len(block))
	for _, part := range parts {
		if len(part) == 1 {
			out = append(out, part)
			continue
		}
		out = append(out, headToHead(part, results, rules)...)
	}
	return out
}

// comparePrimary orders by points then wins, both descending.
func comparePrimary(a, b Row) int {
	if c := desc(a.Points, b.Points); c != 0 {
		return c
	}
	return desc(a.Won, b.Won)
}

// compareTail applies levels 4 to 7 and the id fallback.
func compareTail(a, b Row) int {
	if c := desc(a.Played, b.Played); c != 0 {
		return c
	}
	if c := desc(a.GoalDifference, b.GoalDifference); c != 0 {
		return c
	}
	if c := desc(a.GoalsFor, b.GoalsFor); c != 0 {
		return c
	}
	if c := desc(a.Won, b.Won); c != 0 {
		return c
	}
	switch {
	case a.TeamID < b.TeamID:
		return -1
	case a.TeamID > b.TeamID:
		return 1
	default:
		return 0
	}
}

func desc(a, b int) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func partition(ids []string, same func(a, b string) bool) [][]string {
	out := make([][]string, 0, len(ids))
	for _, id := range ids {
		last := len(out) - 1
		if last >= 0 && same(out[last][0], id) {
			out[last] = append(out[last], id)
			continue
		}
		out = append(out, []string{id})
	}
	return out
}

func sortedIDs(rows map[string]*Row) []string {
	ids := make([]string, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
