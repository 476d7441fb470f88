package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

// Generator creates new migration files for both tools.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.generator"),
		now:         time.Now,
	}
}

// CreateMigration writes a goose file and a golang-migrate up/down pair, and
// returns the paths of the pair.
func (g *Generator) CreateMigration(name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("migration name is required")
	}
	g.logger.Infow("creating new migration", "name", name)

	now := g.now().UTC()
	version := now.Format("20060102150405")

	gooseDir := filepath.Join(g.scriptsPath, "goose")
	migrateDir := filepath.Join(g.scriptsPath, "migrate")
	for _, dir := range []string{gooseDir, migrateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create scripts directory: %w", err)
		}
	}

	if err := goose.CreateWithTemplate(nil, gooseDir, nil, name, "sql"); err != nil {
		return nil, fmt.Errorf("failed to create goose migration: %w", err)
	}

	upFilePath := filepath.Join(migrateDir, fmt.Sprintf("%s_%s.up.sql", version, name))
	downFilePath := filepath.Join(migrateDir, fmt.Sprintf("%s_%s.down.sql", version, name))

	if err := os.WriteFile(upFilePath, []byte(upTemplate(name, now)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to create up migration file: %w", err)
	}
	if err := os.WriteFile(downFilePath, []byte(downTemplate(name, now)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created successfully",
		"goose_dir", gooseDir,
		"up_file", upFilePath,
		"down_file", downFilePath)

	return []string{upFilePath, downFilePath}, nil
}

func upTemplate(name string, now time.Time) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s

`, name, now.Format("2006-01-02 15:04:05"))
}

func downTemplate(name string, now time.Time) string {
	return fmt.Sprintf(`-- Rollback Migration: %s
-- Created: %s

`, name, now.Format("2006-01-02 15:04:05"))
}
