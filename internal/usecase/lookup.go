package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
)

func requireTournament(ctx context.Context, repo tournament.Repository, tournamentID string) (tournament.Tournament, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrUnknownTournament, tournamentID)
	}

	return item, nil
}

func requireTeam(ctx context.Context, repo team.Repository, tournamentID, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, tournamentID, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s tournament=%s", ErrUnknownTeam, teamID, tournamentID)
	}

	return item, nil
}

func parseGroup(raw string) (team.Group, error) {
	group, ok := team.ParseGroup(raw)
	if !ok {
		return "", fmt.Errorf("%w: got %q", ErrInvalidGroup, strings.TrimSpace(raw))
	}
	return group, nil
}
