package reports

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/querier"
)

// labelCache memoizes the follow-up lookups made while building one
// activity feed. Failed lookups are cached as empty labels.
type labelCache struct {
	db          querier.Querier
	departments map[string]string
	codes       map[string]string
}

func newLabelCache(db querier.Querier) *labelCache {
	return &labelCache{db: db, departments: map[string]string{}, codes: map[string]string{}}
}

func (c *labelCache) department(ctx context.Context, id string) string {
	return c.lookup(ctx, c.departments, id, "SELECT name FROM departments WHERE id = $1")
}

func (c *labelCache) employeeCode(ctx context.Context, id string) string {
	return c.lookup(ctx, c.codes, id, "SELECT employee_code FROM employees WHERE id = $1")
}

func (c *labelCache) lookup(ctx context.Context, cache map[string]string, id, query string) string {
	if id == "" {
		return ""
	}
	if label, ok := cache[id]; ok {
		return label
	}
	var label string
	if err := c.db.QueryRow(ctx, query, id).Scan(&label); err != nil {
		if !isNoRows(err) {
			slog.Debug("activity label lookup failed", "id", id, "err", err)
		}
		label = ""
	}
	cache[id] = label
	return label
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
