package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
	qb "github.com/riskibarqy/foosball-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("tournament_public_id", tournamentID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "select teams tournament=%s", tournamentID)
	}
	if len(rows) == 0 {
		return []team.Team{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PublicID)
	}
	participants, err := r.participantsByTeam(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(participants[row.PublicID]))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, tournamentID, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.Eq("tournament_public_id", tournamentID),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, crerr.Wrapf(err, "get team id=%s", teamID)
	}

	participants, err := r.participantsByTeam(ctx, []string{teamID})
	if err != nil {
		return team.Team{}, false, err
	}
	return row.toDomain(participants[teamID]), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create team: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel("teams", teamInsertModel{
		PublicID:     item.ID,
		TournamentID: item.TournamentID,
		Name:         item.Name,
		PhoneNumber:  nullString(item.PhoneNumber),
		GroupLabel:   nullString(item.Group.String()),
		OwnerID:      item.OwnerID,
		CreatedAt:    item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return insertTeamError(err, item.ID)
	}

	if len(item.Participants) > 0 {
		insert := qb.InsertInto("team_participants").Columns("team_public_id", "position", "name", "phone_number")
		for i, p := range item.Participants {
			insert.Values(item.ID, i+1, p.Name, nullString(p.PhoneNumber))
		}
		query, args, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert team participants query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "insert participants team=%s", item.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create team tx: %w", err)
	}
	return nil
}

// insertTeamError translates the teams unique indexes into the domain vocabulary.
func insertTeamError(err error, teamID string) error {
	switch {
	case isUniqueViolation(err, constraintTeamName):
		return team.ErrDuplicateName
	case isUniqueViolation(err, constraintTeamOwner):
		return team.ErrDuplicateOwner
	default:
		return crerr.Wrapf(err, "insert team id=%s", teamID)
	}
}

// AssignGroups locks the named rows, validates the whole batch and then applies it. In
// unassigned-only mode each update is conditional on group_label still being NULL, so a
// concurrent writer that got there first aborts this batch.
func (r *TeamRepository) AssignGroups(ctx context.Context, tournamentID string, assignments []team.Assignment, onlyUnassigned bool) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx assign groups: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.TeamID)
	}
	lockQuery, lockArgs, err := qb.Select("public_id", "group_label").From("teams").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.In("public_id", ids),
		).
		OrderBy("id").
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock teams query: %w", err)
	}

	var locked []teamLockModel
	if err := tx.SelectContext(ctx, &locked, lockQuery, lockArgs...); err != nil {
		return crerr.Wrapf(err, "lock teams tournament=%s", tournamentID)
	}
	current := make(map[string]teamLockModel, len(locked))
	for _, row := range locked {
		current[row.PublicID] = row
	}

	for _, a := range assignments {
		row, ok := current[a.TeamID]
		if !ok {
			return fmt.Errorf("team %s: %w", a.TeamID, team.ErrNotInTournament)
		}
		if onlyUnassigned && row.GroupLabel.Valid {
			return fmt.Errorf("team %s: %w", a.TeamID, team.ErrAlreadyAssigned)
		}
	}

	for _, a := range assignments {
		if err := assignOne(ctx, tx, tournamentID, a, onlyUnassigned); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assign groups tx: %w", err)
	}
	return nil
}

func assignOne(ctx context.Context, tx *sqlx.Tx, tournamentID string, a team.Assignment, onlyUnassigned bool) error {
	conditions := []qb.Condition{
		qb.Eq("public_id", a.TeamID),
		qb.Eq("tournament_public_id", tournamentID),
	}
	if onlyUnassigned {
		conditions = append(conditions, qb.IsNull("group_label"))
	}

	query, args, err := qb.Update("teams").
		Set("group_label", a.Group.String()).
		Where(conditions...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build assign team query: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrapf(err, "assign team=%s group=%s", a.TeamID, a.Group)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected assign team=%s: %w", a.TeamID, err)
	}
	if affected != 1 {
		return fmt.Errorf("team %s: %w", a.TeamID, team.ErrAlreadyAssigned)
	}
	return nil
}

func (r *TeamRepository) participantsByTeam(ctx context.Context, teamIDs []string) (map[string][]team.Participant, error) {
	query, args, err := qb.Select("team_public_id", "position", "name", "phone_number").From("team_participants").
		Where(qb.In("team_public_id", teamIDs)).
		OrderBy("team_public_id", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select team participants")
	}

	out := make(map[string][]team.Participant, len(teamIDs))
	for _, row := range rows {
		out[row.TeamID] = append(out[row.TeamID], team.Participant{
			Name:        row.Name,
			PhoneNumber: row.PhoneNumber.String,
		})
	}
	return out, nil
}
