package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/pkg/database"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var customFieldColumns = []string{
	"id", "name", "label", "type", "is_required", "accepted_file_types",
	"is_active", "teams", "created_at", "updated_at",
}

type CustomFieldRepository struct {
	db *database.DB
}

func NewCustomFieldRepository(db *database.DB) *CustomFieldRepository {
	return &CustomFieldRepository{db: db}
}

func (r *CustomFieldRepository) ListFields(ctx context.Context, filter domain.CustomFieldFilter) ([]domain.CustomField, error) {
	query := psql.Select(customFieldColumns...).From("custom_fields").OrderBy("created_at", "name")
	if filter.TeamID != "" {
		query = query.Where(sq.Expr("? = ANY(teams)", filter.TeamID))
	}
	if filter.ActiveOnly {
		query = query.Where(sq.Eq{"is_active": true})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build custom fields query: %w", err)
	}

	conn := r.db.Conn(ctx)
	rows, err := conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom fields: %w", err)
	}
	defer rows.Close()

	fields := []domain.CustomField{}
	for rows.Next() {
		field, err := scanCustomField(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan custom field: %w", err)
		}
		fields = append(fields, *field)
	}

	return fields, rows.Err()
}

func (r *CustomFieldRepository) GetField(ctx context.Context, id string) (*domain.CustomField, error) {
	stmt, args, err := psql.Select(customFieldColumns...).From("custom_fields").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build custom field query: %w", err)
	}

	conn := r.db.Conn(ctx)
	field, err := scanCustomField(conn.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, HandleNoRowsError(err)
	}
	return field, nil
}

func (r *CustomFieldRepository) CreateField(ctx context.Context, field *domain.CustomField) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO custom_fields (id, name, label, type, is_required, accepted_file_types, is_active, teams)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, field.ID, field.Name, field.Label, field.Type, field.IsRequired,
		nullString(field.AcceptedFileTypes), field.IsActive, pq.Array(field.Teams)).
		Scan(&field.CreatedAt, &field.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert custom field: %w", HandleUniqueError(err))
	}

	return nil
}

func (r *CustomFieldRepository) UpdateField(ctx context.Context, field *domain.CustomField) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		UPDATE custom_fields
		SET name = $2, label = $3, type = $4, is_required = $5,
		    accepted_file_types = $6, is_active = $7, teams = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, field.ID, field.Name, field.Label, field.Type, field.IsRequired,
		nullString(field.AcceptedFileTypes), field.IsActive, pq.Array(field.Teams)).
		Scan(&field.CreatedAt, &field.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update custom field %s: %w", field.ID, HandleUniqueError(HandleNoRowsError(err)))
	}

	return nil
}

func (r *CustomFieldRepository) DeleteField(ctx context.Context, id string) error {
	conn := r.db.Conn(ctx)

	res, err := conn.ExecContext(ctx, "DELETE FROM custom_fields WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete custom field %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCustomField(row rowScanner) (*domain.CustomField, error) {
	var (
		field     domain.CustomField
		fileTypes sql.NullString
		teams     pq.StringArray
	)
	err := row.Scan(&field.ID, &field.Name, &field.Label, &field.Type, &field.IsRequired,
		&fileTypes, &field.IsActive, &teams, &field.CreatedAt, &field.UpdatedAt)
	if err != nil {
		return nil, err
	}

	field.AcceptedFileTypes = fileTypes.String
	field.Teams = []string(teams)
	if field.Teams == nil {
		field.Teams = []string{}
	}
	return &field, nil
}
