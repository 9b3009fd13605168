// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"club-site/database"
	"club-site/internal/domain/admins"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated sqlite-backed handle with foreign keys enforced.
// Each call gets its own database file.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "club.db")
	dsn := "sqlite:file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := database.Open(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// one connection keeps sqlite writers serialized
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

// SeedAdmin inserts an allowlist row and returns it.
func SeedAdmin(t testing.TB, db *gorm.DB, githubID, username string, super bool) *admins.AllowedAdmin {
	t.Helper()
	a := admins.AllowedAdmin{
		GithubID:       githubID,
		GithubUsername: username,
		IsSuperAdmin:   super,
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatal(err)
	}
	return &a
}
