package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/custodia-labs/docfinder/internal/adapters/driven/sqlite"
	httpadapter "github.com/custodia-labs/docfinder/internal/adapters/driving/http"
	"github.com/custodia-labs/docfinder/internal/config"
	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven/mocks"
)

const recordsJSON = `[
  {"Product": "ADManager Plus", "Doc_type": "User Guide", "Content_Title": "ADManager Plus User Guide",
   "Description": "Installing and using ADManager Plus", "Link": "https://www.example.com/admp-guide.pdf"},
  {"Product": "Log360", "Doc_type": "Release Notes", "Content_Title": "Log360 Release Notes",
   "Description": "What changed", "Link": "https://www.example.com/log360-rn"},
  null
]`

func writeRecords(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(recordsJSON), 0o600))
	return path
}

func TestImportRecords(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "catalog.db")

	n, err := importRecords(ctx, dbPath, writeRecords(t))
	require.NoError(t, err)
	assert.Equal(t, 2, n, "null entries are skipped")

	store, err := sqlite.Open(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestImportRecords_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	_, err := importRecords(ctx, filepath.Join(dir, "c.db"), filepath.Join(dir, "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not":"an array"}`), 0o600))
	_, err = importRecords(ctx, filepath.Join(dir, "c.db"), bad)
	assert.Error(t, err)
}

func TestOpenCatalog(t *testing.T) {
	ctx := context.Background()

	store, err := openCatalog(ctx, config.CatalogConfig{
		Backend:    domain.CatalogSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "catalog.db"),
	})
	require.NoError(t, err)
	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Close())

	_, err = openCatalog(ctx, config.CatalogConfig{Backend: "mysql"})
	assert.ErrorIs(t, err, domain.ErrInvalidBackend)
}

func TestPostgresConfig(t *testing.T) {
	cfg := postgresConfig(config.CatalogConfig{
		Backend:          domain.CatalogGorm,
		DatabaseURL:      "postgres://db/catalog",
		StatementTimeout: 3 * time.Second,
		MaxOpenConns:     7,
		MaxIdleConns:     2,
		ConnMaxLifetime:  time.Minute,
		ConnMaxIdleTime:  30 * time.Second,
	})

	assert.Equal(t, "postgres://db/catalog", cfg.URL)
	assert.True(t, cfg.ReadOnly)
	assert.Equal(t, "docfinder", cfg.ApplicationName)
	assert.Equal(t, 3*time.Second, cfg.StatementTimeout)
	assert.Equal(t, 7, cfg.MaxOpenConns)
	assert.Equal(t, 2, cfg.MaxIdleConns)
	assert.Equal(t, time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Second, cfg.ConnMaxIdleTime)
}

func TestOpenCatalog_PostgresBackendsRejectEmptyURL(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []domain.CatalogBackend{domain.CatalogPostgres, domain.CatalogGorm} {
		t.Run(string(backend), func(t *testing.T) {
			_, err := openCatalog(ctx, config.CatalogConfig{Backend: backend})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "database url is empty")
		})
	}
}

// newTestApp wires the real services over a seeded SQLite catalog and a
// scripted generator, without touching the network.
func newTestApp(t *testing.T, gen *mocks.MockTextGenerator) *app {
	t.Helper()
	ctx := context.Background()

	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	_, err := importRecords(ctx, dbPath, writeRecords(t))
	require.NoError(t, err)

	store, err := sqlite.Open(ctx, dbPath)
	require.NoError(t, err)

	a := &app{
		cfg: &config.Config{
			Assistant:  config.AssistantConfig{ResultLimit: 10, HistoryTurns: 10, SummaryMaxChars: 8000},
			Vocabulary: domain.DefaultVocabulary(),
			Policy:     domain.DefaultLinkPolicy(),
		},
		logger:    zap.NewNop(),
		catalog:   store,
		generator: gen,
	}
	a.buildServices()
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func newTestHandler(a *app) http.Handler {
	return httpadapter.NewServer(httpadapter.DefaultConfig(), httpadapter.Services{
		Chat:    a.chat,
		Search:  a.search,
		Summary: a.summary,
	}, a.catalog, a.cachePinger(), a.logger).Handler()
}

func TestApp_ChatOverHTTP(t *testing.T) {
	gen := mocks.NewMockTextGenerator(`{"product": "ADMP", "docType": "User Guide", "keywords": []}`)
	handler := newTestHandler(newTestApp(t, gen))

	body := bytes.NewBufferString(`{"message": "ADMP user guide"}`)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/chat", body))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp domain.ChatResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, domain.ResponseDocuments, resp.Type)
	assert.Equal(t, "I found 1 document(s) for you:", resp.Message)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "https://www.example.com/admp-guide.pdf", resp.Data[0].Link)
	assert.NotEmpty(t, rr.Header().Get(httpadapter.RequestIDHeader))
}

func TestApp_SearchDegradesWhenGeneratorFails(t *testing.T) {
	gen := mocks.NewMockTextGenerator()
	gen.Err = assert.AnError
	handler := newTestHandler(newTestApp(t, gen))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/search", strings.NewReader(`{"query": "release notes"}`)))

	require.Equal(t, http.StatusOK, rr.Code)
	var records []domain.DocumentRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Log360", records[0].Product)
}

func TestApp_SummarizeRestrictedLinkSkipsNetwork(t *testing.T) {
	gen := mocks.NewMockTextGenerator("should not be used")
	handler := newTestHandler(newTestApp(t, gen))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/summarize", strings.NewReader(`{"url": "https://workdrive.example.com/file/abc"}`))
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp httpadapter.SummarizeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, domain.ReasonRestricted, resp.Summary)
	assert.Empty(t, gen.Prompts())
}

func TestApp_Ready(t *testing.T) {
	handler := newTestHandler(newTestApp(t, mocks.NewMockTextGenerator()))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/ready", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"catalog":"healthy"`)
	assert.NotContains(t, rr.Body.String(), "cache")
}

func TestCommands(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, version+"\n", out.String())

	out.Reset()
	vocabularyCmd.SetOut(&out)
	require.NoError(t, runVocabulary(vocabularyCmd, nil))
	assert.Contains(t, out.String(), "ADManager Plus")
	assert.Contains(t, out.String(), "workdrive")
}

func TestPrintRecords(t *testing.T) {
	var out bytes.Buffer
	searchCmd.SetOut(&out)

	require.NoError(t, printRecords(searchCmd, nil))
	assert.Equal(t, "No documents found.\n", out.String())

	out.Reset()
	require.NoError(t, printRecords(searchCmd, []*domain.DocumentRecord{
		{Product: "Log360", DocType: "Release Notes", Title: "Log360 Release Notes", Link: "https://www.example.com/rn"},
	}))
	assert.Equal(t, "1. Log360 Release Notes\n   Log360 | Release Notes\n   https://www.example.com/rn\n", out.String())
}
