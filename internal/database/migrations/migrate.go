// Package migrations applies the embedded SQL schema files in filename
// order. A MySQL named lock serializes concurrent server starts, so two
// instances booting at once never race on DDL.
package migrations

import (
    "context"
    "database/sql"
    "embed"
    "fmt"
    "sort"
    "strings"
)

//go:embed *.sql
var migrationFiles embed.FS

const lockName = "hall_booking_migrations"

// Apply runs every pending migration inside one connection.
func Apply(ctx context.Context, db *sql.DB) error {
    entries, err := migrationFiles.ReadDir(".")
    if err != nil {
        return fmt.Errorf("read migrations: %w", err)
    }

    names := make([]string, 0, len(entries))
    for _, e := range entries {
        if e.IsDir() {
            continue
        }
        names = append(names, e.Name())
    }
    sort.Strings(names)

    conn, err := db.Conn(ctx)
    if err != nil {
        return fmt.Errorf("acquire conn: %w", err)
    }
    defer func() { _ = conn.Close() }()

    var got sql.NullInt64
    if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, 30)", lockName).Scan(&got); err != nil {
        return fmt.Errorf("acquire migration lock: %w", err)
    }
    if !got.Valid || got.Int64 != 1 {
        return fmt.Errorf("migration lock %q not acquired", lockName)
    }
    defer func() {
        _, _ = conn.ExecContext(context.Background(), "SELECT RELEASE_LOCK(?)", lockName)
    }()

    if _, err := conn.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
    name VARCHAR(255) PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`); err != nil {
        return fmt.Errorf("ensure schema_migrations: %w", err)
    }

    for _, name := range names {
        var applied bool
        if err := conn.QueryRowContext(ctx,
            "SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name=?)", name).Scan(&applied); err != nil {
            return fmt.Errorf("check migration %s: %w", name, err)
        }
        if applied {
            continue
        }

        sqlBytes, err := migrationFiles.ReadFile(name)
        if err != nil {
            return fmt.Errorf("read migration %s: %w", name, err)
        }
        // The MySQL driver executes one statement per call, so split on
        // the ; statement terminator.
        for _, stmt := range strings.Split(string(sqlBytes), ";") {
            stmt = strings.TrimSpace(stmt)
            if stmt == "" {
                continue
            }
            if _, err := conn.ExecContext(ctx, stmt); err != nil {
                return fmt.Errorf("exec migration %s: %w", name, err)
            }
        }
        if _, err := conn.ExecContext(ctx,
            "INSERT INTO schema_migrations (name) VALUES (?)", name); err != nil {
            return fmt.Errorf("record migration %s: %w", name, err)
        }
    }
    return nil
}
