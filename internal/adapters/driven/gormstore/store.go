// Package gormstore is the ORM-backed catalog store.
package gormstore

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	pgadapter "github.com/custodia-labs/docfinder/internal/adapters/driven/postgres"
	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CatalogStore = (*CatalogStore)(nil)

// catalogRow maps one content_repo row
type catalogRow struct {
	Product           string `gorm:"column:Product"`
	DocType           string `gorm:"column:Doc_type"`
	Title             string `gorm:"column:Content_Title"`
	Description       string `gorm:"column:Description"`
	GeneratedKeywords string `gorm:"column:Generated_Keywords"`
	Link              string `gorm:"column:Link"`
}

func (catalogRow) TableName() string {
	return domain.CatalogTable
}

func (r catalogRow) toDomain() *domain.DocumentRecord {
	return &domain.DocumentRecord{
		Product:           r.Product,
		DocType:           r.DocType,
		Title:             r.Title,
		Description:       r.Description,
		GeneratedKeywords: r.GeneratedKeywords,
		Link:              r.Link,
	}
}

// CatalogStore implements driven.CatalogStore with GORM
type CatalogStore struct {
	db *gorm.DB
}

// Open connects to PostgreSQL through GORM and verifies the connection.
// Session parameters and pool limits come from cfg, the same settings
// the lib/pq backend uses.
func Open(ctx context.Context, cfg pgadapter.Config) (*CatalogStore, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return New(db), nil
}

// New wraps an existing GORM handle
func New(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// Query returns at most limit records matching p
func (s *CatalogStore) Query(ctx context.Context, p domain.Predicate, limit int) ([]*domain.DocumentRecord, error) {
	records := make([]*domain.DocumentRecord, 0)
	if p.IsEmpty() {
		return records, nil
	}

	tx, err := s.where(s.db.WithContext(ctx), p)
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var rows []catalogRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gorm catalog query: %w", err)
	}

	for _, r := range rows {
		records = append(records, r.toDomain())
	}
	return records, nil
}

// where adds one OR group per clause. Columns go through the dialector's
// quoting and every value is a bound variable.
func (s *CatalogStore) where(tx *gorm.DB, p domain.Predicate) (*gorm.DB, error) {
	tx = tx.Model(&catalogRow{})
	for _, c := range p.Clauses {
		if len(c) == 0 {
			continue
		}
		exprs := make([]clause.Expression, 0, len(c))
		for _, m := range c {
			if !m.Field.IsValid() {
				return nil, fmt.Errorf("%w: unknown catalog field %q", domain.ErrInvalidInput, m.Field)
			}
			if m.Param < 0 || m.Param >= len(p.Params) {
				return nil, fmt.Errorf("%w: parameter %d out of range", domain.ErrInvalidInput, m.Param)
			}
			exprs = append(exprs, clause.Expr{
				SQL:  `? ILIKE ? ESCAPE '\'`,
				Vars: []any{clause.Column{Name: string(m.Field)}, domain.LikePattern(p.Params[m.Param])},
			})
		}
		tx = tx.Where(clause.Or(exprs...))
	}
	return tx, nil
}

// Ping checks if the database is reachable
func (s *CatalogStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (s *CatalogStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
