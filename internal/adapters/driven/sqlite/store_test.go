package sqlite

import (
	"context"
	"database/sql/driver"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

func newTestStore(t *testing.T) *CatalogStore {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	err = store.Insert(context.Background(),
		&domain.DocumentRecord{Product: "ADMP Cloud Edition", DocType: "Datasheet", Title: "Cloud datasheet", Link: "https://example.com/1"},
		&domain.DocumentRecord{Product: "ADManager Plus v7", DocType: "Case study", Title: "Bank automates AD", Link: "https://example.com/2"},
		&domain.DocumentRecord{Product: "Log360", DocType: "Datasheet", Title: "100% SIEM", GeneratedKeywords: "siem_cloud", Link: "https://example.com/3"},
		&domain.DocumentRecord{Product: "Log360", DocType: "Other", Title: "Log360 case study", Link: "https://example.com/4"},
	)
	require.NoError(t, err)
	return store
}

func links(records []*domain.DocumentRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Link)
	}
	return out
}

func TestOpen_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")
	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, path, store.Path())
	require.NoError(t, store.Ping(context.Background()))

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCatalogStore_ProductAliases(t *testing.T) {
	store := newTestStore(t)

	var b domain.PredicateBuilder
	b.Add(domain.Clause{
		{Field: domain.FieldProduct, Param: b.Param("ADManager Plus")},
		{Field: domain.FieldProduct, Param: b.Param("ADMP")},
	})

	records, err := store.Query(context.Background(), b.Build(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/1", "https://example.com/2"}, links(records))
}

func TestCatalogStore_CaseInsensitive(t *testing.T) {
	store := newTestStore(t)

	var b domain.PredicateBuilder
	b.AnyOf("LOG360", domain.FieldProduct)
	b.AnyOf("case study", domain.FieldDocType, domain.FieldTitle)

	records, err := store.Query(context.Background(), b.Build(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/4"}, links(records))
}

func TestCatalogStore_CaseInsensitiveBeyondASCII(t *testing.T) {
	store := newTestStore(t)
	err := store.Insert(context.Background(),
		&domain.DocumentRecord{Product: "Übersicht Suite", DocType: "Handbuch", Title: "ÉTUDE DE CAS", Link: "https://example.com/5"},
	)
	require.NoError(t, err)

	var b domain.PredicateBuilder
	b.AnyOf("übersicht", domain.FieldProduct)
	b.AnyOf("étude", domain.FieldTitle)

	records, err := store.Query(context.Background(), b.Build(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/5"}, links(records))
}

func TestUnicodeLower(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{"ÜBERSICHT", "übersicht"},
		{[]byte("ÉTUDE"), "étude"},
		{nil, nil},
		{int64(7), int64(7)},
	}
	for _, tt := range tests {
		got, err := unicodeLower(nil, []driver.Value{tt.in})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestCatalogStore_WildcardsAreLiteral(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		value string
		want  []string
	}{
		{"0%", []string{"https://example.com/3"}},
		{"%", []string{"https://example.com/3"}},
		{"_", []string{"https://example.com/3"}},
		{"siem_", []string{"https://example.com/3"}},
		{"d_t", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var b domain.PredicateBuilder
			b.AnyOf(tt.value, domain.FieldTitle, domain.FieldKeywords)
			records, err := store.Query(context.Background(), b.Build(), 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, links(records))
		})
	}
}

func TestCatalogStore_Injection(t *testing.T) {
	store := newTestStore(t)

	var b domain.PredicateBuilder
	b.AnyOf(`x' OR '1'='1`, domain.FieldTitle)
	records, err := store.Query(context.Background(), b.Build(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestCatalogStore_LimitAndEmpty(t *testing.T) {
	store := newTestStore(t)

	var b domain.PredicateBuilder
	b.AnyOf("https", domain.FieldLink)
	records, err := store.Query(context.Background(), b.Build(), 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = store.Query(context.Background(), domain.Predicate{}, 10)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
