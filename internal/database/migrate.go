package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	"quiz-arena/internal/config"
	"quiz-arena/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/postgres/*.sql migrations/oracle/*.sql
var migrationsFS embed.FS

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// RunMigrations applies the embedded schema for the given driver.
// Postgres goes through golang-migrate; Oracle has no upstream migrate driver,
// so it uses the statement runner below with its own version table.
func RunMigrations(ctx context.Context, db *sql.DB, driver string, dir Direction) error {
	switch driver {
	case config.DriverPgx:
		return migratePostgres(db, dir)
	case config.DriverOracle:
		return migrateOracle(ctx, db, dir)
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
}

func migratePostgres(db *sql.DB, dir Direction) error {
	src, err := iofs.New(migrationsFS, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}
	target, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("could not create migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", target)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	if dir == Down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", dir, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read migration version: %w", verr)
	}
	logger.Get().Info("Migrations completed", zap.String("direction", string(dir)), zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

type migrationFile struct {
	version uint64
	name    string
}

// listMigrations returns the files for one direction, ordered for execution.
func listMigrations(fsys fs.FS, root string, dir Direction) ([]migrationFile, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	suffix := "." + string(dir) + ".sql"
	var files []migrationFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		prefix, _, ok := strings.Cut(e.Name(), "_")
		if !ok {
			return nil, fmt.Errorf("migration %s has no version prefix", e.Name())
		}
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %s has invalid version: %w", e.Name(), err)
		}
		files = append(files, migrationFile{version: v, name: e.Name()})
	}

	sort.Slice(files, func(i, j int) bool {
		if dir == Down {
			return files[i].version > files[j].version
		}
		return files[i].version < files[j].version
	})
	return files, nil
}

// splitStatements breaks a script into single statements. go-ora executes one
// statement per call and rejects a trailing semicolon.
func splitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func migrateOracle(ctx context.Context, db *sql.DB, dir Direction) error {
	l := logger.Get()

	var exists int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`).Scan(&exists); err != nil {
		return fmt.Errorf("could not inspect schema_migrations: %w", err)
	}
	if exists == 0 {
		if _, err := db.ExecContext(ctx, `CREATE TABLE schema_migrations (version NUMBER(19) PRIMARY KEY, applied_at TIMESTAMP WITH TIME ZONE NOT NULL)`); err != nil {
			return fmt.Errorf("could not create schema_migrations: %w", err)
		}
	}

	applied := make(map[uint64]bool)
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("could not read applied migrations: %w", err)
	}
	for rows.Next() {
		var v uint64
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return fmt.Errorf("could not scan migration version: %w", err)
		}
		applied[v] = true
	}
	rows.Close()

	files, err := listMigrations(migrationsFS, "migrations/oracle", dir)
	if err != nil {
		return err
	}

	for _, f := range files {
		if (dir == Up) == applied[f.version] {
			continue
		}

		content, err := fs.ReadFile(migrationsFS, "migrations/oracle/"+f.name)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", f.name, err)
		}
		for _, stmt := range splitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", f.name, err)
			}
		}

		if dir == Up {
			_, err = db.ExecContext(ctx, `INSERT INTO schema_migrations (version, applied_at) VALUES (:1, :2)`, f.version, time.Now().UTC())
		} else {
			_, err = db.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = :1`, f.version)
		}
		if err != nil {
			return fmt.Errorf("could not record migration %s: %w", f.name, err)
		}
		l.Info("Executed migration", zap.String("file", f.name))
	}

	l.Info("Migrations completed", zap.String("direction", string(dir)))
	return nil
}
