// Command seed applies the schema migrations and loads reference data
// (statuses, roles, catalog entries and the first admin account).
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"tastemap/internal/auth"
	"tastemap/internal/db"
	"tastemap/internal/domain/statuses"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type role struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type seedFile struct {
	Roles     []role   `yaml:"roles"`
	Amenities []string `yaml:"amenities"`
	Cuisines  []string `yaml:"cuisines"`
	Admin     struct {
		FirstName string `yaml:"first_name"`
		Email     string `yaml:"email"`
	} `yaml:"admin"`
}

func loadSeed(r io.Reader) (*seedFile, error) {
	var s seedFile
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(s.Roles))
	for _, r := range s.Roles {
		names[r.Name] = true
	}
	for _, required := range []string{auth.RoleUser, auth.RoleOwner, auth.RoleAdmin} {
		if !names[required] {
			return nil, fmt.Errorf("seed file is missing role %q", required)
		}
	}
	return &s, nil
}

// pendingMigrations returns the files not yet recorded, in lexical order.
func pendingMigrations(files []string, applied map[string]bool) []string {
	var out []string
	for _, f := range files {
		if strings.HasSuffix(f, ".sql") && !applied[f] {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

func migrate(conn *sql.DB, logger *zap.SugaredLogger) error {
	if _, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return err
	}

	rows, err := conn.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return err
	}
	applied := map[string]bool{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return err
		}
		applied[v] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	entries, err := fs.ReadDir(db.Migrations, "migrations")
	if err != nil {
		return err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		files = append(files, e.Name())
	}

	for _, name := range pendingMigrations(files, applied) {
		body, err := fs.ReadFile(db.Migrations, "migrations/"+name)
		if err != nil {
			return err
		}

		tx, err := conn.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			tx.Rollback()
			return fmt.Errorf("%s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		logger.Infow("migration applied", "version", name)
	}
	return nil
}

func seed(conn *sql.DB, s *seedFile, adminPassword string, logger *zap.SugaredLogger) error {
	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, st := range statuses.All() {
		if _, err := tx.Exec(`
			INSERT INTO statuses (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, st.ID, st.Name); err != nil {
			return fmt.Errorf("status %s: %w", st.Name, err)
		}
	}

	for _, r := range s.Roles {
		if _, err := tx.Exec(`
			INSERT INTO roles (name, description) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, updated_at = NOW()`,
			r.Name, r.Description); err != nil {
			return fmt.Errorf("role %s: %w", r.Name, err)
		}
	}

	for table, names := range map[string][]string{"amenities": s.Amenities, "cuisines": s.Cuisines} {
		for _, n := range names {
			if _, err := tx.Exec(`INSERT INTO `+table+` (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, n); err != nil {
				return fmt.Errorf("%s %s: %w", table, n, err)
			}
		}
	}

	if adminPassword == "" {
		logger.Warn("SEED_ADMIN_PASSWORD not set, skipping admin account")
		return tx.Commit()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var adminID int64
	err = tx.QueryRow(`
		INSERT INTO users (first_name, email, password, is_active)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET is_active = TRUE
		RETURNING id`, s.Admin.FirstName, s.Admin.Email, hash).Scan(&adminID)
	if err != nil {
		return fmt.Errorf("admin user: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT DO NOTHING`, adminID, auth.RoleAdmin); err != nil {
		return fmt.Errorf("admin role: %w", err)
	}
	logger.Infow("admin account ready", "email", s.Admin.Email, "id", adminID)

	return tx.Commit()
}

func main() {
	seedPath := flag.String("file", "cmd/seed/seed.yaml", "reference data to load")
	migrateOnly := flag.Bool("migrate-only", false, "apply migrations and stop")
	flag.Parse()

	zl, _ := zap.NewDevelopment()
	defer zl.Sync()
	logger := zl.Sugar()

	if err := godotenv.Load(); err != nil {
		logger.Infow("no .env file loaded", "error", err)
	}

	addr := os.Getenv("DB_ADDR")
	if addr == "" {
		logger.Fatal(errors.New("DB_ADDR is not set"))
	}

	conn, err := sql.Open("postgres", addr)
	if err != nil {
		logger.Fatal(err)
	}
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		logger.Fatal(err)
	}

	if err := migrate(conn, logger); err != nil {
		logger.Fatalw("migration failed", "error", err)
	}
	if *migrateOnly {
		return
	}

	f, err := os.Open(*seedPath)
	if err != nil {
		logger.Fatal(err)
	}
	defer f.Close()

	s, err := loadSeed(f)
	if err != nil {
		logger.Fatalw("invalid seed file", "path", *seedPath, "error", err)
	}

	if err := seed(conn, s, os.Getenv("SEED_ADMIN_PASSWORD"), logger); err != nil {
		logger.Fatalw("seeding failed", "error", err)
	}
	logger.Info("seed complete")
}
