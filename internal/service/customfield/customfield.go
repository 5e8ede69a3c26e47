package customfield

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/internal/repository"
	"github.com/ynastt/course-admin/pkg/database"
)

type CustomFieldRepository interface {
	ListFields(ctx context.Context, filter domain.CustomFieldFilter) ([]domain.CustomField, error)
	GetField(ctx context.Context, id string) (*domain.CustomField, error)
	CreateField(ctx context.Context, field *domain.CustomField) error
	UpdateField(ctx context.Context, field *domain.CustomField) error
	DeleteField(ctx context.Context, id string) error
}

type TeamRepository interface {
	CountExisting(ctx context.Context, ids []string) (int, error)
}

type CustomFieldService struct {
	fieldRepo CustomFieldRepository
	teamRepo  TeamRepository
	txManager database.TransactionManagerInterface
	lg        *slog.Logger
}

func NewCustomFieldService(fieldRepo CustomFieldRepository,
	teamRepo TeamRepository,
	txManager database.TransactionManagerInterface,
	lg *slog.Logger) *CustomFieldService {
	return &CustomFieldService{
		fieldRepo: fieldRepo,
		teamRepo:  teamRepo,
		txManager: txManager,
		lg:        lg,
	}
}

func (s *CustomFieldService) ListFields(ctx context.Context, filter domain.CustomFieldFilter) ([]domain.CustomField, error) {
	fields, err := s.fieldRepo.ListFields(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom fields: %w", err)
	}
	return fields, nil
}

func (s *CustomFieldService) CreateField(ctx context.Context, field domain.CustomField) (*domain.CustomField, error) {
	field = normalize(field)
	if err := field.Validate(); err != nil {
		return nil, err
	}
	field.ID = uuid.NewString()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.checkTeams(txCtx, field.Teams); err != nil {
			return err
		}
		if err := s.fieldRepo.CreateField(txCtx, &field); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return domain.ErrFieldExists
			}
			return fmt.Errorf("failed to create custom field: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info("custom field created",
		slog.String("field_id", field.ID),
		slog.String("name", field.Name),
		slog.Int("teams", len(field.Teams)))
	return &field, nil
}

func (s *CustomFieldService) UpdateField(ctx context.Context, id string, field domain.CustomField) (*domain.CustomField, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrFieldNotFound
	}
	field = normalize(field)
	field.ID = id
	if err := field.Validate(); err != nil {
		return nil, err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.fieldRepo.GetField(txCtx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrFieldNotFound
			}
			return fmt.Errorf("failed to get custom field: %w", err)
		}
		if err := s.checkTeams(txCtx, field.Teams); err != nil {
			return err
		}
		if err := s.fieldRepo.UpdateField(txCtx, &field); err != nil {
			switch {
			case errors.Is(err, repository.ErrDuplicate):
				return domain.ErrFieldExists
			case errors.Is(err, repository.ErrNotFound):
				return domain.ErrFieldNotFound
			}
			return fmt.Errorf("failed to update custom field: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info("custom field updated", slog.String("field_id", field.ID), slog.String("name", field.Name))
	return &field, nil
}

func (s *CustomFieldService) DeleteField(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrFieldNotFound
	}

	if err := s.fieldRepo.DeleteField(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrFieldNotFound
		}
		return fmt.Errorf("failed to delete custom field: %w", err)
	}

	s.lg.Info("custom field deleted", slog.String("field_id", id))
	return nil
}

func (s *CustomFieldService) checkTeams(ctx context.Context, teams []string) error {
	found, err := s.teamRepo.CountExisting(ctx, teams)
	if err != nil {
		return fmt.Errorf("failed to check teams: %w", err)
	}
	if found != len(teams) {
		return domain.ErrTeamNotFound
	}
	return nil
}

// normalize trims user input and drops duplicate team ids. Accepted file
// types only apply to file fields.
func normalize(f domain.CustomField) domain.CustomField {
	f = f.Clone()
	f.Name = strings.TrimSpace(f.Name)
	f.Label = strings.TrimSpace(f.Label)
	f.AcceptedFileTypes = strings.TrimSpace(f.AcceptedFileTypes)
	if f.Type != domain.FieldTypeFile {
		f.AcceptedFileTypes = ""
	}

	teams := make([]string, 0, len(f.Teams))
	for _, id := range f.Teams {
		if id != "" && !slices.Contains(teams, id) {
			teams = append(teams, id)
		}
	}
	f.Teams = teams
	return f
}
