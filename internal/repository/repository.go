// internal/repository/repository.go

// Package repository is the filtered query layer over Postgres. Every
// read builds its statement incrementally: conditions and bound args
// accumulate in lock-step so placeholder indices always match. The only
// dynamic identifier anywhere is the feedback sort column, which is
// checked against a closed allow-list.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tuali-backend/internal/common/database"
	"tuali-backend/internal/common/errors"
	"tuali-backend/internal/common/logger"
	"tuali-backend/internal/common/metrics"
)

type Repository struct {
	db           *database.PostgresClient
	logger       logger.Logger
	queryTimeout time.Duration
}

func New(db *database.PostgresClient, log logger.Logger, queryTimeout time.Duration) *Repository {
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &Repository{
		db:           db,
		logger:       log.With(map[string]interface{}{"component": "repository"}),
		queryTimeout: queryTimeout,
	}
}

// withTimeout bounds every statement so a slow query cannot hold a
// pooled connection past the configured limit.
func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.queryTimeout)
}

func (r *Repository) observe(entity string, start time.Time) {
	metrics.QueryDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds())
}

func (r *Repository) dataError(operation string, err error) error {
	r.logger.Error("query failed", map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	})
	return errors.NewDataAccessError(operation, err)
}

// condBuilder accumulates WHERE predicates and their bound args.
type condBuilder struct {
	conds []string
	args  []interface{}
}

func (b *condBuilder) add(expr string, vals ...interface{}) {
	// expr uses %d verbs for its placeholder positions.
	idx := make([]interface{}, len(vals))
	for i := range vals {
		idx[i] = len(b.args) + i + 1
	}
	b.conds = append(b.conds, fmt.Sprintf(expr, idx...))
	b.args = append(b.args, vals...)
}

func (b *condBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	clause := " WHERE " + b.conds[0]
	for _, c := range b.conds[1:] {
		clause += " AND " + c
	}
	return clause
}

func closeRows(rows *sql.Rows, log logger.Logger) {
	if err := rows.Close(); err != nil {
		log.Warn("rows close failed", map[string]interface{}{"error": err.Error()})
	}
}
