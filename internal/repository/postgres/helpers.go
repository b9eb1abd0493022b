package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/postgres"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// mapError converts a driver error into the error taxonomy. entity and id only
// feed the caller-facing hint.
func mapError(err error, entity, id string) error {
	if err == nil {
		return nil
	}

	if ierr.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("%s with ID %s not found", entity, id).
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}

	var pqErr *pq.Error
	if ierr.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ierr.WithError(err).
				WithHintf("%s already exists", entity).
				WithReportableDetails(map[string]any{"constraint": pqErr.Constraint}).
				Mark(ierr.ErrAlreadyExists)
		case pqForeignKeyViolation:
			return ierr.WithError(err).
				WithHintf("%s references a record that does not exist or is still referenced", entity).
				WithReportableDetails(map[string]any{"constraint": pqErr.Constraint}).
				Mark(ierr.ErrConflict)
		case pqCheckViolation:
			return ierr.WithError(err).
				WithHintf("%s violates a data constraint", entity).
				Mark(ierr.ErrValidation)
		}
	}

	return ierr.WithError(err).
		WithMessagef("%s query failed", strings.ToLower(entity)).
		Mark(ierr.ErrDatabase)
}

func notFound(entity, id string) error {
	return ierr.NewErrorf("%s %s not found", strings.ToLower(entity), id).
		WithHintf("%s with ID %s not found", entity, id).
		WithReportableDetails(map[string]any{"id": id}).
		Mark(ierr.ErrNotFound)
}

// requireAffected turns a zero-row update into a not-found error
func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, entity, id)
	}
	if n == 0 {
		return notFound(entity, id)
	}
	return nil
}

// selectBuilder assembles the WHERE, ORDER and paging clauses of list queries.
// Placeholders are written as ? and rebound for the driver.
type selectBuilder struct {
	columns string
	table   string
	conds   []string
	args    []interface{}
}

func newSelect(columns, table string) *selectBuilder {
	return &selectBuilder{columns: columns, table: table}
}

func (b *selectBuilder) where(cond string, args ...interface{}) *selectBuilder {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
	return b
}

// whereIf adds the condition only when value is non-empty
func (b *selectBuilder) whereIf(value string, cond string) *selectBuilder {
	if value == "" {
		return b
	}
	return b.where(cond, value)
}

func (b *selectBuilder) visible(includeDeleted bool) *selectBuilder {
	if includeDeleted {
		return b
	}
	return b.where("is_deleted = FALSE")
}

func (b *selectBuilder) whereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

func (b *selectBuilder) list(q postgres.Querier, filter *types.QueryFilter, orderBy string) (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s", b.columns, b.table, b.whereClause(), orderBy)
	args := append([]interface{}{}, b.args...)
	if !filter.IsUnlimited() {
		query += " LIMIT ?"
		args = append(args, filter.GetLimit())
	}
	if offset := filter.GetOffset(); offset > 0 {
		query += " OFFSET ?"
		args = append(args, offset)
	}
	return q.Rebind(query), args
}

func (b *selectBuilder) count(q postgres.Querier) (string, []interface{}) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.table, b.whereClause())
	return q.Rebind(query), b.args
}

func getOne[T any](ctx context.Context, q postgres.Querier, entity, id, query string, args ...interface{}) (*T, error) {
	var out T
	if err := q.GetContext(ctx, &out, q.Rebind(query), args...); err != nil {
		return nil, mapError(err, entity, id)
	}
	return &out, nil
}

// softDelete flips is_deleted on a live row; a missing or already deleted row is not found
func softDelete(ctx context.Context, db *postgres.DB, table, entity, id string) error {
	q := db.GetQuerier(ctx)
	query := q.Rebind(`UPDATE ` + table + ` SET is_deleted = TRUE, updated_at = ?, updated_by = ?
		WHERE id = ? AND is_deleted = FALSE`)

	res, err := q.ExecContext(ctx, query, time.Now().UTC(), types.GetUserID(ctx), id)
	if err != nil {
		return mapError(err, entity, id)
	}
	return requireAffected(res, entity, id)
}
