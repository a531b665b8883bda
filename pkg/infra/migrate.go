package infra

import (
	"fmt"
	"sync"

	"github.com/cenkalti/backoff"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	postgres_wrapper "github.com/joripage/lob-engine/pkg/infra/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateTool applies schema migrations. A single shared instance
// serializes runs so concurrent callers (parallel test packages) never
// race on the schema version.
type MigrateTool struct {
	mu sync.Mutex
}

var (
	toolOnce sync.Once
	tool     *MigrateTool
)

func GetMigrateTool() *MigrateTool {
	toolOnce.Do(func() {
		tool = &MigrateTool{}
	})
	return tool
}

// Migrate brings the schema at connStr up to the latest version found
// at source. A dirty version left by an interrupted run is forced back
// one step before retrying.
func (mt *MigrateTool) Migrate(source, connStr string) error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mg, err := migrate.New(source, connStr)
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}
	defer mg.Close()

	version, dirty, err := mg.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		if err := mg.Force(int(version) - 1); err != nil {
			return fmt.Errorf("clear dirty version %d: %w", version, err)
		}
	}

	if err := mg.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	zap.S().Infow("migration done", "source", source)
	return nil
}

// ConnectAndMigrate connects with exponential backoff and migrates,
// returning the ready database handle. Intended for test setup.
func (mt *MigrateTool) ConnectAndMigrate(cfg *postgres_wrapper.PostgresConfig, source string) (*gorm.DB, error) {
	var db *gorm.DB
	err := backoff.Retry(func() error {
		var errNested error
		db, errNested = postgres_wrapper.InitPostgres(cfg)
		return errNested
	}, backoff.NewExponentialBackOff())
	if err != nil {
		return nil, err
	}

	if err := mt.Migrate(source, cfg.MigrationConnURL); err != nil {
		return nil, err
	}
	return db, nil
}
