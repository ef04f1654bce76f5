package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/foosball-league/internal/domain/match"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
	qb "github.com/riskibarqy/foosball-league/internal/platform/querybuilder"
)

// MatchRepository writes the ledger with plain INSERTs; the table's BIGSERIAL id is the
// sequence, and a trigger rejects UPDATE and DELETE.
type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Append(ctx context.Context, item match.Result) (match.Result, error) {
	query, args, err := qb.InsertModel("match_results", matchInsertModel{
		PublicID:     item.ID,
		TournamentID: item.TournamentID,
		GroupLabel:   item.Group.String(),
		PairKey:      item.PairKey,
		TeamAID:      item.TeamAID,
		TeamBID:      item.TeamBID,
		GoalsA:       item.GoalsA,
		GoalsB:       item.GoalsB,
		ReporterID:   item.ReporterID,
		CreatedAt:    item.CreatedAt,
	}, "RETURNING id, created_at")
	if err != nil {
		return match.Result{}, fmt.Errorf("build insert match result query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.Sequence, &item.CreatedAt); err != nil {
		return match.Result{}, crerr.Wrapf(err, "insert match result id=%s", item.ID)
	}
	item.CreatedAt = item.CreatedAt.UTC()
	return item, nil
}

func (r *MatchRepository) ListByGroup(ctx context.Context, tournamentID string, group team.Group) ([]match.Result, error) {
	return r.list(ctx, qb.Select("*").From("match_results").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.Eq("group_label", group.String()),
		).
		OrderBy("created_at", "id"))
}

func (r *MatchRepository) ListByTeam(ctx context.Context, tournamentID, teamID string) ([]match.Result, error) {
	return r.list(ctx, qb.Select("*").From("match_results").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.Expr("(team_a_public_id = ? OR team_b_public_id = ?)", teamID, teamID),
		).
		OrderBy("created_at DESC", "id DESC"))
}

func (r *MatchRepository) CountByTournament(ctx context.Context, tournamentID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("match_results").
		Where(qb.Eq("tournament_public_id", tournamentID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count match results query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, crerr.Wrapf(err, "count match results tournament=%s", tournamentID)
	}
	return count, nil
}

func (r *MatchRepository) list(ctx context.Context, builder *qb.SelectBuilder) ([]match.Result, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match results query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select match results")
	}

	out := make([]match.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
