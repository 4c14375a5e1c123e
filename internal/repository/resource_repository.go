package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/church-cms/internal/resource"
	apperrors "github.com/spec-kit/church-cms/pkg/util"
)

// Record is one stored entity projected to its public field set: the JSON
// field names mapped to their values, plus "id".
type Record map[string]any

// ResourceStore is the store contract shared by every managed entity type.
// Absent rows are reported as pgx.ErrNoRows; constraint violations are
// already translated to domain errors.
type ResourceStore interface {
	List(ctx context.Context) ([]Record, error)
	GetByKey(ctx context.Context, key string) (Record, error)
	Create(ctx context.Context, fields map[string]any) (Record, error)
	Update(ctx context.Context, key string, fields map[string]any) (Record, error)
	Delete(ctx context.Context, key string) error
}

type resourceRepository struct {
	pool *pgxpool.Pool
	desc resource.Descriptor
}

// NewResourceRepository returns a Postgres-backed store for one descriptor.
// One generic implementation serves every entity type; the descriptor supplies
// the table, key column and field list.
func NewResourceRepository(pool *pgxpool.Pool, desc resource.Descriptor) ResourceStore {
	return &resourceRepository{pool: pool, desc: desc}
}

func (r *resourceRepository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.pool.Query(ctx, r.selectClause()+` FROM `+r.desc.Table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *resourceRepository) GetByKey(ctx context.Context, key string) (Record, error) {
	return r.getByColumn(ctx, r.desc.KeyColumn(), key)
}

func (r *resourceRepository) Create(ctx context.Context, fields map[string]any) (Record, error) {
	id := uuid.NewString()

	columns := []string{"id"}
	args := []any{id}
	for _, f := range r.desc.Fields {
		val, ok := fields[f.Name]
		if !ok {
			continue
		}
		columns = append(columns, f.Column)
		args = append(args, asText(val))
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		r.desc.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "))

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return nil, mapConstraintError(r.desc.Name, err)
	}
	return r.getByColumn(ctx, "id", id)
}

func (r *resourceRepository) Update(ctx context.Context, key string, fields map[string]any) (Record, error) {
	assignments := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for _, f := range r.desc.Fields {
		val, ok := fields[f.Name]
		if !ok {
			continue
		}
		args = append(args, asText(val))
		assignments = append(assignments, fmt.Sprintf("%s=$%d", f.Column, len(args)))
	}
	assignments = append(assignments, "updated_at=NOW()")

	args = append(args, key)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s=$%d`,
		r.desc.Table,
		strings.Join(assignments, ", "),
		r.desc.KeyColumn(),
		len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, mapConstraintError(r.desc.Name, err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	// The lookup key itself may have been overwritten by this update.
	lookup := key
	if val, ok := fields[r.desc.KeyField]; ok {
		lookup = asText(val)
	}
	return r.getByColumn(ctx, r.desc.KeyColumn(), lookup)
}

func (r *resourceRepository) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s=$1`, r.desc.Table, r.desc.KeyColumn())
	cmd, err := r.pool.Exec(ctx, query, key)
	if err != nil {
		return mapConstraintError(r.desc.Name, err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *resourceRepository) getByColumn(ctx context.Context, column, value string) (Record, error) {
	query := fmt.Sprintf(`%s FROM %s WHERE %s=$1`, r.selectClause(), r.desc.Table, column)
	rows, err := r.pool.Query(ctx, query, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}
	return r.scanRecord(rows)
}

func (r *resourceRepository) selectClause() string {
	return `SELECT id, ` + strings.Join(r.desc.Columns(), ", ")
}

func (r *resourceRepository) scanRecord(rows pgx.Rows) (Record, error) {
	fields := r.desc.Fields
	targets := make([]any, len(fields)+1)
	values := make([]any, len(fields)+1)
	for i := range targets {
		targets[i] = &values[i]
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, err
	}

	record := make(Record, len(fields)+1)
	record["id"] = values[0]
	for i, f := range fields {
		record[f.Name] = values[i+1]
	}
	return record, nil
}

// asText normalizes scalar JSON values for text columns. Decoded JSON
// numbers arrive as float64 and must not pick up exponent notation.
func asText(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// mapConstraintError surfaces store-enforced constraint violations as client
// errors rather than internal failures: unique conflicts as 409, broken
// references as 400.
func mapConstraintError(entity string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		return apperrors.NewConflict(entity + " already exists")
	case "23503":
		return apperrors.NewValidationError(entity + " references a missing entity")
	case "23502":
		return apperrors.NewValidationError(entity + " is missing a required field")
	default:
		return err
	}
}
