// Package catalogsql renders catalog predicates as parameterised SQL.
// Shared by the database/sql backends so every engine binds values the
// same way and only the dialect details differ.
package catalogsql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// Dialect describes how one SQL engine spells a case-insensitive match
type Dialect struct {
	// Name identifies the dialect in errors and logs
	Name string

	// Operator is the case-insensitive pattern operator (ILIKE or LIKE)
	Operator string

	// Placeholder renders the bind marker for the n-th parameter (1-based)
	Placeholder func(n int) string

	// Fold, when set, names a SQL function that lowercases a column. The
	// column is wrapped in it and bound patterns are lowercased in Go, for
	// engines whose Operator only ignores ASCII case.
	Fold string
}

// Postgres uses ILIKE with numbered placeholders
var Postgres = Dialect{
	Name:        "postgres",
	Operator:    "ILIKE",
	Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
}

// SQLiteFold is the Unicode lowercasing function the SQLite backend
// registers with the driver. Built-in LIKE and lower() only fold ASCII.
const SQLiteFold = "unicode_lower"

// SQLite uses LIKE over folded columns with ? placeholders
var SQLite = Dialect{
	Name:        "sqlite",
	Operator:    "LIKE",
	Placeholder: func(int) string { return "?" },
	Fold:        SQLiteFold,
}

// Pattern returns the bound LIKE pattern for a search value
func (d Dialect) Pattern(value string) string {
	if d.Fold != "" {
		value = strings.ToLower(value)
	}
	return domain.LikePattern(value)
}

func (d Dialect) column(f domain.Field) (string, error) {
	col, err := QuoteIdent(f)
	if err != nil {
		return "", err
	}
	if d.Fold != "" {
		col = d.Fold + "(" + col + ")"
	}
	return col, nil
}

// QuoteIdent quotes a catalog column. Only known columns are accepted.
func QuoteIdent(f domain.Field) (string, error) {
	if !f.IsValid() {
		return "", fmt.Errorf("%w: unknown catalog field %q", domain.ErrInvalidInput, f)
	}
	return `"` + string(f) + `"`, nil
}

// Where renders p as a WHERE body plus its bound arguments.
//
// Each Match becomes its own placeholder so dialects with positional ?
// markers bind correctly; the same value may therefore appear several
// times in args. Values are LIKE-escaped and wrapped in %.
func (d Dialect) Where(p domain.Predicate) (string, []any, error) {
	if p.IsEmpty() {
		return "", nil, fmt.Errorf("%w: empty predicate", domain.ErrInvalidInput)
	}

	var (
		args    []any
		clauses = make([]string, 0, len(p.Clauses))
	)
	for _, clause := range p.Clauses {
		if len(clause) == 0 {
			continue
		}
		parts := make([]string, 0, len(clause))
		for _, m := range clause {
			if m.Param < 0 || m.Param >= len(p.Params) {
				return "", nil, fmt.Errorf("%w: parameter %d out of range", domain.ErrInvalidInput, m.Param)
			}
			col, err := d.column(m.Field)
			if err != nil {
				return "", nil, err
			}
			args = append(args, d.Pattern(p.Params[m.Param]))
			parts = append(parts, fmt.Sprintf(`%s %s %s ESCAPE '\'`, col, d.Operator, d.Placeholder(len(args))))
		}
		clauses = append(clauses, "("+strings.Join(parts, " OR ")+")")
	}
	if len(clauses) == 0 {
		return "", nil, fmt.Errorf("%w: empty predicate", domain.ErrInvalidInput)
	}
	return strings.Join(clauses, " AND "), args, nil
}

// Select renders the full catalog query for p
func (d Dialect) Select(p domain.Predicate, limit int) (string, []any, error) {
	where, args, err := d.Where(p)
	if err != nil {
		return "", nil, err
	}

	cols := make([]string, 0, len(domain.CatalogFields))
	for _, f := range domain.CatalogFields {
		col, _ := QuoteIdent(f)
		cols = append(cols, "COALESCE("+col+", '')")
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		strings.Join(cols, ", "), domain.CatalogTable, where)
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT " + d.Placeholder(len(args))
	}
	return query, args, nil
}

// Querier is the subset of *sql.DB used to run catalog queries
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query runs the catalog query for p on q. An empty predicate returns
// an empty result without touching the database.
func (d Dialect) Query(ctx context.Context, q Querier, p domain.Predicate, limit int) ([]*domain.DocumentRecord, error) {
	if p.IsEmpty() {
		return []*domain.DocumentRecord{}, nil
	}

	query, args, err := d.Select(p, limit)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s catalog query: %w", d.Name, err)
	}
	defer rows.Close()

	return ScanRecords(rows)
}

// ScanRecords reads rows selected in domain.CatalogFields order
func ScanRecords(rows *sql.Rows) ([]*domain.DocumentRecord, error) {
	records := make([]*domain.DocumentRecord, 0)
	for rows.Next() {
		var r domain.DocumentRecord
		if err := rows.Scan(
			&r.Product,
			&r.DocType,
			&r.Title,
			&r.Description,
			&r.GeneratedKeywords,
			&r.Link,
		); err != nil {
			return nil, err
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}
