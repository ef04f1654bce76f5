package querybuilder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSelectBuilder_LockedRosterQuery(t *testing.T) {
	t.Parallel()

	query, args, err := Select("public_id", "group_label").
		From("teams").
		Where(Eq("tournament_public_id", "t1"), IsNull("group_label")).
		OrderBy("public_id").
		ForUpdate().
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT public_id, group_label FROM teams WHERE tournament_public_id = $1 AND group_label IS NULL ORDER BY public_id FOR UPDATE", query)
	require.Equal(t, []any{"t1"}, args)
}

func TestSelectBuilder_JoinGroupAndIn(t *testing.T) {
	t.Parallel()

	query, args, err := Select("t.tournament_public_id", "COUNT(*) AS teams").
		From("teams t").
		Join("JOIN tournaments tr ON tr.public_id = t.tournament_public_id").
		Where(In("t.group_label", []string{"A", "B"}), Expr("t.created_at >= ?", time.Time{})).
		GroupBy("t.tournament_public_id").
		Limit(5).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT t.tournament_public_id, COUNT(*) AS teams FROM teams t JOIN tournaments tr ON tr.public_id = t.tournament_public_id WHERE t.group_label IN ($1, $2) AND t.created_at >= $3 GROUP BY t.tournament_public_id LIMIT 5", query)
	require.Len(t, args, 3)
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	t.Parallel()

	query, args, err := Select("*").From("teams").Where(In[string]("public_id", nil)).ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM teams WHERE 1=0", query)
	require.Empty(t, args)
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("team_participants").
		Columns("team_public_id", "name").
		Values("team-1", "Ana").
		Values("team-1", "Bo").
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO team_participants (team_public_id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING", query)
	require.Equal(t, []any{"team-1", "Ana", "team-1", "Bo"}, args)
}

func TestInsertBuilder_RejectsRaggedRows(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("teams").Columns("a", "b").Values(1).ToSQL()
	require.Error(t, err)
}

func TestUpdateBuilder_ConditionalAssign(t *testing.T) {
	t.Parallel()

	query, args, err := Update("teams").
		Set("group_label", "B").
		SetExpr("updated_at", "NOW()").
		Where(Eq("tournament_public_id", "t1"), Eq("public_id", "team-3"), IsNull("group_label")).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "UPDATE teams SET group_label = $1, updated_at = NOW() WHERE tournament_public_id = $2 AND public_id = $3 AND group_label IS NULL", query)
	require.Equal(t, []any{"B", "t1", "team-3"}, args)
}

func TestInsertModel_SkipsZeroDefaults(t *testing.T) {
	t.Parallel()

	type row struct {
		ID        int64     `db:"id,default"`
		PublicID  string    `db:"public_id"`
		Name      string    `db:"name"`
		CreatedAt time.Time `db:"created_at,default"`
		ignored   string
	}

	query, args, err := InsertModel("tournaments", row{PublicID: "t1", Name: "Liga7", ignored: "x"}, "RETURNING id")
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO tournaments (public_id, name) VALUES ($1, $2) RETURNING id", query)
	require.Equal(t, []any{"t1", "Liga7"}, args)
}
