package database

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Cascade behaviour depends on foreign keys being enforced, so every
// SQLite DSN carries _foreign_keys=1 and the pragma is re-applied after
// connecting.
func openSQLite(cfg Config) (*gorm.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		var err error
		if dsn, err = sqliteDSN(cfg.Path); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}
	return db, nil
}

func sqliteDSN(path string) (string, error) {
	params := url.Values{}
	params.Set("_foreign_keys", "1")

	path = strings.TrimSpace(path)
	if path == "" || strings.EqualFold(path, ":memory:") {
		params.Set("cache", "shared")
		return "file::memory:?" + params.Encode(), nil
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}

	params.Set("_journal_mode", "WAL")
	params.Set("_busy_timeout", "5000")
	return "file:" + filepath.ToSlash(path) + "?" + params.Encode(), nil
}
