package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/internal/repository"
	"github.com/ynastt/course-admin/pkg/database"
)

const rosterCacheKey = "teams:roster"

type TeamRepository interface {
	CreateTeam(ctx context.Context, team *domain.Team) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	ListTeams(ctx context.Context) ([]domain.Team, error)
}

// RosterCache keeps the team list between requests. A nil cache disables caching.
type RosterCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

type TeamService struct {
	teamRepo  TeamRepository
	cache     RosterCache
	txManager database.TransactionManagerInterface
	lg        *slog.Logger
}

func NewTeamService(teamRepo TeamRepository,
	cache RosterCache,
	txManager database.TransactionManagerInterface,
	lg *slog.Logger) *TeamService {
	return &TeamService{
		teamRepo:  teamRepo,
		cache:     cache,
		txManager: txManager,
		lg:        lg,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, team domain.Team) (*domain.Team, error) {
	if err := team.Validate(); err != nil {
		return nil, err
	}
	team.ID = uuid.NewString()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		exists, err := s.teamRepo.ExistsByName(txCtx, team.Name)
		if err != nil {
			return fmt.Errorf("failed to check team existence: %w", err)
		}
		if exists {
			return domain.ErrTeamExists
		}

		if err := s.teamRepo.CreateTeam(txCtx, &team); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return domain.ErrTeamExists
			}
			return fmt.Errorf("failed to create team: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, rosterCacheKey); err != nil {
			s.lg.Warn("failed to invalidate team roster cache", slog.Any("error", err))
		}
	}

	s.lg.Info("team created", slog.String("team_id", team.ID), slog.String("name", team.Name))
	return &team, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	if s.cache != nil {
		var cached []domain.Team
		hit, err := s.cache.Get(ctx, rosterCacheKey, &cached)
		if err != nil {
			s.lg.Warn("team roster cache unavailable", slog.Any("error", err))
		} else if hit {
			return cached, nil
		}
	}

	teams, err := s.teamRepo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, rosterCacheKey, teams); err != nil {
			s.lg.Warn("failed to cache team roster", slog.Any("error", err))
		}
	}
	return teams, nil
}
