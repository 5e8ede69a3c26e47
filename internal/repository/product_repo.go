package repository

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/pkg/database"
)

type ProductRepository struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	values, err := json.Marshal(product.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode product fields: %w", err)
	}

	conn := r.db.Conn(ctx)
	err = conn.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, team_id, fields)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, product.ID, product.Name, product.Description, product.TeamID, string(values)).Scan(&product.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

func (r *ProductRepository) ListProducts(ctx context.Context, teamID string) ([]domain.Product, error) {
	query := psql.Select("id", "name", "description", "team_id", "fields", "created_at").
		From("products").
		OrderBy("created_at DESC")
	if teamID != "" {
		query = query.Where(sq.Expr("team_id::text = ?", teamID))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build products query: %w", err)
	}

	conn := r.db.Conn(ctx)
	rows, err := conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var (
			p      domain.Product
			values []byte
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.TeamID, &values, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if err := json.Unmarshal(values, &p.Fields); err != nil {
			return nil, fmt.Errorf("failed to decode fields of product %s: %w", p.ID, err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}
