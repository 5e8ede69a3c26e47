package product

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/pkg/database"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	ListProducts(ctx context.Context, teamID string) ([]domain.Product, error)
}

type CustomFieldRepository interface {
	ListFields(ctx context.Context, filter domain.CustomFieldFilter) ([]domain.CustomField, error)
}

type TeamRepository interface {
	CountExisting(ctx context.Context, ids []string) (int, error)
}

type ProductService struct {
	productRepo ProductRepository
	fieldRepo   CustomFieldRepository
	teamRepo    TeamRepository
	txManager   database.TransactionManagerInterface
	lg          *slog.Logger
}

func NewProductService(productRepo ProductRepository,
	fieldRepo CustomFieldRepository,
	teamRepo TeamRepository,
	txManager database.TransactionManagerInterface,
	lg *slog.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		fieldRepo:   fieldRepo,
		teamRepo:    teamRepo,
		txManager:   txManager,
		lg:          lg,
	}
}

// CreateProduct stores a product whose values satisfy the active custom
// fields of its team.
func (s *ProductService) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if product.Fields == nil {
		product.Fields = map[string]any{}
	}
	product.ID = uuid.NewString()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		found, err := s.teamRepo.CountExisting(txCtx, []string{product.TeamID})
		if err != nil {
			return fmt.Errorf("failed to check team: %w", err)
		}
		if found == 0 {
			return domain.ErrTeamNotFound
		}

		fields, err := s.fieldRepo.ListFields(txCtx, domain.CustomFieldFilter{
			TeamID:     product.TeamID,
			ActiveOnly: true,
		})
		if err != nil {
			return fmt.Errorf("failed to load team custom fields: %w", err)
		}
		if err := domain.ValidateFieldValues(fields, product.Fields); err != nil {
			return err
		}

		if err := s.productRepo.CreateProduct(txCtx, &product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info("product created",
		slog.String("product_id", product.ID),
		slog.String("team_id", product.TeamID),
		slog.Any("fields", slices.Sorted(maps.Keys(product.Fields))))
	return &product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, teamID string) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
