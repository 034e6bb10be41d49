package database

import (
	"embed"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"coblog/internal/middleware"

	"gorm.io/gorm"
)

// Migration is one versioned schema change with its rollback script.
type Migration struct {
	Version    int
	Name       string
	UpScript   string
	DownScript string
}

//go:embed migrations/*.sql
var migrationFS embed.FS

var migrations []Migration

func init() {
	if err := registerMigrations(migrationFS); err != nil {
		middleware.Logger.Error("failed to register embedded migrations", slog.String("error", err.Error()))
	}
}

func registerMigrations(efs embed.FS) error {
	entries, err := efs.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}

		base := strings.TrimSuffix(name, ".up.sql")
		parts := strings.SplitN(base, "_", 2)
		if len(parts) != 2 {
			middleware.Logger.Warn("Skipping migration with invalid naming", slog.String("file", name))
			continue
		}

		var version int
		fmt.Sscanf(parts[0], "%d", &version)

		upBytes, err := efs.ReadFile(filepath.Join("migrations", name))
		if err != nil {
			return fmt.Errorf("failed to read up migration %s: %w", name, err)
		}

		downName := base + ".down.sql"
		downBytes, err := efs.ReadFile(filepath.Join("migrations", downName))
		if err != nil {
			return fmt.Errorf("failed to read down migration %s: %w", downName, err)
		}

		migrations = append(migrations, Migration{
			Version:    version,
			Name:       parts[1],
			UpScript:   string(upBytes),
			DownScript: string(downBytes),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return nil
}

type schemaMigration struct {
	Version int `gorm:"primaryKey"`
	Name    string
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

// MigrateUp applies all unapplied migrations in version order, each inside
// its own transaction together with the version bookkeeping row.
func MigrateUp(db *gorm.DB) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("failed to prepare schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int64
		if err := db.Model(&schemaMigration{}).Where("version = ?", m.Version).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(m.UpScript).Error; err != nil {
				return err
			}
			return tx.Create(&schemaMigration{Version: m.Version, Name: m.Name}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %04d_%s failed: %w", m.Version, m.Name, err)
		}
		middleware.Logger.Info("Applied migration",
			slog.Int("version", m.Version), slog.String("name", m.Name))
	}
	return nil
}

// MigrateDown rolls back the most recently applied migration.
func MigrateDown(db *gorm.DB) error {
	var last schemaMigration
	if err := db.Order("version DESC").First(&last).Error; err != nil {
		return fmt.Errorf("no applied migrations to roll back: %w", err)
	}

	for _, m := range migrations {
		if m.Version != last.Version {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(m.DownScript).Error; err != nil {
				return err
			}
			return tx.Delete(&schemaMigration{}, "version = ?", m.Version).Error
		})
		if err != nil {
			return fmt.Errorf("rollback %04d_%s failed: %w", m.Version, m.Name, err)
		}
		middleware.Logger.Info("Rolled back migration",
			slog.Int("version", m.Version), slog.String("name", m.Name))
		return nil
	}
	return fmt.Errorf("migration version %d not found in embedded scripts", last.Version)
}
