package postgres

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// testDB connects to DOCFINDER_TEST_DATABASE_URL or skips the test
func testDB(t *testing.T) *DB {
	t.Helper()
	dbURL := os.Getenv("DOCFINDER_TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("DOCFINDER_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// The fixture table needs a writable session
	cfg := DefaultConfig(dbURL)
	cfg.ReadOnly = false
	db, err := Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `
		CREATE TEMP TABLE content_repo (
			"Product" TEXT, "Doc_type" TEXT, "Content_Title" TEXT,
			"Description" TEXT, "Generated_Keywords" TEXT, "Link" TEXT
		)`)
	require.NoError(t, err)
	return db
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("postgres://localhost/catalog")
	assert.Equal(t, "postgres://localhost/catalog", cfg.URL)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	assert.True(t, cfg.ReadOnly)
}

func TestConfig_DSN(t *testing.T) {
	cfg := DefaultConfig("postgres://user:pw@db:5432/catalog?sslmode=disable")
	dsn, err := cfg.DSN()
	require.NoError(t, err)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "disable", q.Get("sslmode"))
	assert.Equal(t, "docfinder", q.Get("application_name"))
	assert.Equal(t, "on", q.Get("default_transaction_read_only"))
	assert.Equal(t, "10000", q.Get("statement_timeout"))
	assert.Equal(t, "db:5432", u.Host)
}

func TestConfig_DSNKeepsExplicitParams(t *testing.T) {
	cfg := DefaultConfig("postgresql://db/catalog?application_name=reporting")
	cfg.ReadOnly = false
	cfg.StatementTimeout = 0

	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://db/catalog?application_name=reporting", dsn)
}

func TestConfig_DSNKeyValueForm(t *testing.T) {
	cfg := DefaultConfig("host=db dbname=catalog statement_timeout=500")

	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "host=db dbname=catalog statement_timeout=500 application_name=docfinder default_transaction_read_only=on", dsn)
}

func TestConfig_DSNErrors(t *testing.T) {
	_, err := DefaultConfig("  ").DSN()
	assert.Error(t, err)

	_, err = DefaultConfig("postgres://db:badport/x").DSN()
	assert.Error(t, err)

	_, err = Connect(context.Background(), DefaultConfig(""))
	assert.Error(t, err)
}

func TestCatalogStore_Query(t *testing.T) {
	db := testDB(t)
	// Temp tables are per-connection
	db.SetMaxOpenConns(1)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO content_repo VALUES
		('ADMP Cloud Edition', 'Datasheet', 'Cloud datasheet', 'd', NULL, 'https://example.com/1'),
		('Log360', 'Datasheet', '100% SIEM', 'd', 'siem', 'https://example.com/2')`)
	require.NoError(t, err)

	store := NewCatalogStore(db)

	var b domain.PredicateBuilder
	b.AnyOf("admp", domain.FieldProduct)
	records, err := store.Query(ctx, b.Build(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://example.com/1", records[0].Link)
	assert.Equal(t, "", records[0].GeneratedKeywords)

	var wild domain.PredicateBuilder
	wild.AnyOf("0%", domain.FieldTitle)
	records, err = store.Query(ctx, wild.Build(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Log360", records[0].Product)

	records, err = store.Query(ctx, domain.Predicate{}, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
