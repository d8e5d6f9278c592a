package querier

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTx runs fn inside a transaction and commits when fn succeeds. The
// transaction is rolled back when fn fails or panics; a panic is re-raised
// after the rollback.
func WithTx(ctx context.Context, db Querier, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("transaction rollback failed", "err", rbErr)
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	committed = true
	return nil
}

// UniqueIDs drops repeated ids, keeping the first occurrence of each.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func NullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// Patch accumulates column assignments for a partial UPDATE.
type Patch struct {
	columns []string
	Args    []any
}

func (p *Patch) Set(column string, value any) {
	p.Args = append(p.Args, value)
	p.columns = append(p.columns, column+" = $"+strconv.Itoa(len(p.Args)))
}

func (p *Patch) Empty() bool {
	return len(p.columns) == 0
}

func (p *Patch) Clause() string {
	return strings.Join(p.columns, ", ")
}

// Arg appends a trailing argument (usually the WHERE key) and returns its placeholder.
func (p *Patch) Arg(value any) string {
	p.Args = append(p.Args, value)
	return "$" + strconv.Itoa(len(p.Args))
}

// BulkValues renders a multi-row VALUES list with sequential placeholders
// starting after offset existing arguments.
func BulkValues(offset int, rows [][]any) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(rows)*4)
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, value := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			args = append(args, value)
			b.WriteString("$" + strconv.Itoa(offset+len(args)))
		}
		b.WriteByte(')')
	}
	return b.String(), args
}
