package config

import (
	"fmt"
	"os"
	"path/filepath"

	"zenith/internal/repository/sqlite"
)

// MemoryDBPath selects a private in-memory database.
const MemoryDBPath = ":memory:"

// CreateRepository opens the run log at cfg.Audit.DBPath, creating its
// directory when needed.
func CreateRepository(cfg *Config) (sqlite.Repository, error) {
	dbPath := cfg.Audit.DBPath
	if dbPath != MemoryDBPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	repo, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(MemoryDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
