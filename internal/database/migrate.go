package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type MigrationDirection string

const (
	MigrateUp   MigrationDirection = "up"
	MigrateDown MigrationDirection = "down"
)

var ErrMigrationsNotFound = errors.New("migrations directory not found")

// FindMigrationsDir resolves configured to an absolute directory. Relative
// paths are tried against the working directory and up to five of its
// parents, then next to the executable.
func FindMigrationsDir(configured string) (string, error) {
	if configured == "" {
		configured = "migrations"
	}
	if filepath.IsAbs(configured) {
		if isDir(configured) {
			return configured, nil
		}
		return "", fmt.Errorf("%w: %s", ErrMigrationsNotFound, configured)
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		current := cwd
		for i := 0; i < 6; i++ {
			candidates = append(candidates, filepath.Join(current, configured))
			parent := filepath.Dir(current)
			if parent == current {
				break
			}
			current = parent
		}
	}
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		candidates = append(candidates,
			filepath.Join(exeDir, configured),
			filepath.Join(exeDir, "..", configured),
			filepath.Join(exeDir, "..", "..", configured),
		)
	}

	for _, candidate := range candidates {
		if isDir(candidate) {
			return filepath.Abs(candidate)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMigrationsNotFound, configured)
}

// RunMigrations applies every pending migration in dir, or rolls all of
// them back for MigrateDown. ErrNoChange is not an error.
func RunMigrations(dbURL, dir string, direction MigrationDirection) error {
	m, err := migrate.New("file://"+filepath.ToSlash(dir), dbURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()

	switch direction {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
