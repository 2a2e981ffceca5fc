// Package sqlite provides an embedded single-file catalog store.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sqlite "modernc.org/sqlite"

	"github.com/custodia-labs/docfinder/internal/adapters/driven/catalogsql"
	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
)

//go:embed schema.sql
var schema string

func init() {
	// Catalog matching folds case with this instead of LIKE's ASCII-only rule
	if err := sqlite.RegisterDeterministicScalarFunction(catalogsql.SQLiteFold, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("register %s: %v", catalogsql.SQLiteFold, err))
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Verify interface compliance
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore implements driven.CatalogStore on a SQLite file
type CatalogStore struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the catalog database at path.
// The content_repo table is created when missing.
func Open(ctx context.Context, path string) (*CatalogStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &CatalogStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *CatalogStore) Path() string {
	return s.path
}

// Query returns at most limit records matching p
func (s *CatalogStore) Query(ctx context.Context, p domain.Predicate, limit int) ([]*domain.DocumentRecord, error) {
	return catalogsql.SQLite.Query(ctx, s.db, p, limit)
}

// Insert adds records to the catalog in one transaction.
// Used by the import command; the serving path never writes.
func (s *CatalogStore) Insert(ctx context.Context, records ...*domain.DocumentRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO content_repo ("Product", "Doc_type", "Content_Title", "Description", "Generated_Keywords", "Link")
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.Product,
			r.DocType,
			r.Title,
			r.Description,
			r.GeneratedKeywords,
			r.Link,
		); err != nil {
			return fmt.Errorf("inserting %q: %w", r.Link, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of catalog rows
func (s *CatalogStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content_repo").Scan(&n)
	return n, err
}

// Ping checks if the database is reachable
func (s *CatalogStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *CatalogStore) Close() error {
	return s.db.Close()
}
