package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/pkg/database"
)

type TeamRepository struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team *domain.Team) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO teams (id, name, description, created_by_name, created_by_email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, team.ID, team.Name, team.Description, team.CreatedBy.Name, team.CreatedBy.Email).
		Scan(&team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", HandleUniqueError(err))
	}

	return nil
}

func (r *TeamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	conn := r.db.Conn(ctx)

	var exists bool
	err := conn.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM teams WHERE name = $1)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check team existence: %w", err)
	}
	return exists, nil
}

// CountExisting returns how many of ids name an existing team.
func (r *TeamRepository) CountExisting(ctx context.Context, ids []string) (int, error) {
	conn := r.db.Conn(ctx)

	var count int
	err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM teams WHERE id::text = ANY($1)", pq.Array(ids)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return count, nil
}

func (r *TeamRepository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `
		SELECT id, name, description, created_by_name, created_by_email, created_at, updated_at
		FROM teams
		ORDER BY created_at, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := []domain.Team{}
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedBy.Name, &t.CreatedBy.Email, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}
