package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"time"

	"shortlink/internal/types"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/golang-migrate/migrate/v4"
	clickmigrations "github.com/golang-migrate/migrate/v4/database/clickhouse"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/clickhouse/*.sql
var migrationsClickHouseFS embed.FS

// Analytics is the append-only click ledger. Rows are never updated or
// deleted, and they are kept even after the link they reference expires.
type Analytics struct {
	db *sql.DB
}

func ConnectClickHouse(ctx context.Context, addr, user, pass, dbName string) (*Analytics, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
			Username: user,
			Password: pass,
		},
		DialTimeout: time.Second * 30,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err := conn.PingContext(ctx); err != nil {
		return nil, err
	}

	a := &Analytics{db: conn}

	if err := a.runMigrations(); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Analytics) runMigrations() error {
	d, err := iofs.New(migrationsClickHouseFS, "migrations/clickhouse")
	if err != nil {
		return err
	}

	driver, err := clickmigrations.WithInstance(a.db, &clickmigrations.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance(
		"iofs", d,
		"clickhouse", driver,
	)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	slog.Info("ClickHouse migrations applied successfully")
	return nil
}

func (a *Analytics) Close() error {
	return a.db.Close()
}

// RecordClick appends one click event. The client address is reduced to its
// network prefix before anything touches the table; the raw address is
// never written. The insert is synchronous: a failed append is the
// caller's error, not a dropped log line.
func (a *Analytics) RecordClick(ctx context.Context, click types.ClickData) error {
	query := `INSERT INTO clicks (shortcode, clicked_at, referrer, client_net, locale)
	          VALUES (?, ?, ?, ?, ?)`

	_, err := a.db.ExecContext(ctx, query,
		click.ShortCode,
		click.ClickedAt.UTC(),
		click.Referrer,
		maskClientNet(click.RemoteAddr),
		click.Locale,
	)
	if err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}

	return nil
}

// ClicksFor returns every click recorded for the shortcode in ascending
// clicked_at order. Links are not joined: events outlive link expiry.
func (a *Analytics) ClicksFor(ctx context.Context, shortCode string) ([]types.ClickEvent, error) {
	query := `SELECT shortcode, clicked_at, referrer, client_net, locale
	            FROM clicks
	           WHERE shortcode = ?
	           ORDER BY clicked_at`

	rows, err := a.db.QueryContext(ctx, query, shortCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query clicks: %w", err)
	}
	defer rows.Close()

	clicks := make([]types.ClickEvent, 0)
	for rows.Next() {
		var c types.ClickEvent
		if err := rows.Scan(&c.ShortCode, &c.ClickedAt, &c.Referrer, &c.ClientNet, &c.Locale); err != nil {
			return nil, fmt.Errorf("failed to scan click: %w", err)
		}
		clicks = append(clicks, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clicks: %w", err)
	}

	return clicks, nil
}

// maskClientNet coarsens an address to /24 (IPv4) or /48 (IPv6).
// Anything unparsable is stored as empty rather than verbatim.
func maskClientNet(remoteAddr string) string {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return ""
	}
	addr = addr.Unmap()

	bits := 48
	if addr.Is4() {
		bits = 24
	}

	prefix, err := addr.Prefix(bits)
	if err != nil {
		return ""
	}

	return prefix.String()
}
