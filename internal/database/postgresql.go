package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"shortlink/internal/base62"
	"shortlink/internal/types"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Database struct {
	db *sqlx.DB
}

func ConnectPostgres(ctx context.Context, url string) (*Database, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, err
	}

	pg := &Database{db: db}

	if err := pg.RunMigrations(); err != nil {
		return nil, err
	}

	return pg, nil
}

func (db *Database) RunMigrations() error {
	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(db.db.DB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance(
		"iofs", d,
		"postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	slog.Info("Database migrations applied successfully")
	return nil
}

// CreateLink inserts one links row. With a custom code the UNIQUE
// constraint arbitrates concurrent inserts: exactly one wins, the rest get
// ErrShortcodeConflict. Without one, the code is derived from the serial id
// the INSERT itself allocated, so no two generated codes can collide.
func (db *Database) CreateLink(ctx context.Context, originalURL string, validityMinutes int, customCode string) (*types.ShortLink, error) {
	if customCode != "" {
		return db.createWithCustomCode(ctx, originalURL, validityMinutes, customCode)
	}
	return db.createWithGeneratedCode(ctx, originalURL, validityMinutes)
}

func (db *Database) createWithCustomCode(ctx context.Context, originalURL string, validityMinutes int, code string) (*types.ShortLink, error) {
	query := `INSERT INTO links (shortcode, original_url, created_at, expires_at)
	          VALUES ($1, $2, NOW(), NOW() + make_interval(mins => $3))
	          RETURNING id, shortcode, original_url, created_at, expires_at`

	link := &types.ShortLink{}
	err := db.db.GetContext(ctx, link, query, code, originalURL, validityMinutes)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, types.ErrShortcodeConflict
		}
		return nil, fmt.Errorf("failed to insert link: %w", err)
	}

	return link, nil
}

func (db *Database) createWithGeneratedCode(ctx context.Context, originalURL string, validityMinutes int) (*types.ShortLink, error) {
	query := `INSERT INTO links (shortcode, original_url, created_at, expires_at)
	          VALUES (NULL, $1, NOW(), NOW() + make_interval(mins => $2))
	          RETURNING id, original_url, created_at, expires_at`

	link := &types.ShortLink{}
	err := db.db.GetContext(ctx, link, query, originalURL, validityMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to insert link: %w", err)
	}

	// A custom code may already occupy the encoded value; fall back to a
	// suffixed code once. The row keeps its id either way.
	code := base62.Encode(link.ID)
	if err := db.setShortCode(ctx, link.ID, code); err != nil {
		if !isUniqueViolation(err) {
			return nil, err
		}
		code = fmt.Sprintf("%s-%d", code, link.CreatedAt.Unix()%1000)
		if err := db.setShortCode(ctx, link.ID, code); err != nil {
			return nil, err
		}
	}
	link.ShortCode = code

	return link, nil
}

func (db *Database) setShortCode(ctx context.Context, id int64, code string) error {
	_, err := db.db.ExecContext(ctx, `UPDATE links SET shortcode = $1 WHERE id = $2`, code, id)
	if err != nil && !isUniqueViolation(err) {
		return fmt.Errorf("failed to set shortcode: %w", err)
	}
	return err
}

// GetLink looks a link up by shortcode. It does not evaluate expiry:
// that is the service's call, so "expired" and "missing" stay distinct.
func (db *Database) GetLink(ctx context.Context, shortCode string) (*types.ShortLink, error) {
	query := `SELECT id, shortcode, original_url, created_at, expires_at
	            FROM links
	           WHERE shortcode = $1`

	link := &types.ShortLink{}
	err := db.db.GetContext(ctx, link, query, shortCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return link, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (db *Database) Close() error {
	return db.db.Close()
}
