// Package sqlite provides durable storage for the ledger daemon: asset and
// holding records, treasury account balances and the append-only audit
// journal, all in one embedded SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle. It implements the domain store, journal and
// treasury interfaces.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema migrations.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One writer at a time; the service guard already serializes operations.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}
	for _, stmt := range Migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return &DB{db: db}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Migrations returns the schema migration statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// Asset catalog. Decimal columns are stored as TEXT to keep
		// fixed-point values exact.
		`CREATE TABLE IF NOT EXISTS assets (
			id                 INTEGER PRIMARY KEY,
			name               TEXT NOT NULL,
			image_ref          TEXT NOT NULL DEFAULT '',
			total_shares       INTEGER NOT NULL,
			available_shares   INTEGER NOT NULL,
			price_per_unit     TEXT NOT NULL,
			cumulative_revenue TEXT NOT NULL DEFAULT '0',
			cumulative_expense TEXT NOT NULL DEFAULT '0',
			accumulator        TEXT NOT NULL DEFAULT '0',
			active             INTEGER NOT NULL DEFAULT 1,
			created_at         TEXT NOT NULL
		)`,

		// Per-(asset, holder) positions.
		`CREATE TABLE IF NOT EXISTS holdings (
			asset_id INTEGER NOT NULL REFERENCES assets(id),
			holder   TEXT NOT NULL,
			units    INTEGER NOT NULL DEFAULT 0,
			debt     TEXT NOT NULL DEFAULT '0',
			PRIMARY KEY (asset_id, holder)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_holdings_holder ON holdings(holder)`,

		// Treasury account balances.
		`CREATE TABLE IF NOT EXISTS treasury_accounts (
			account TEXT PRIMARY KEY,
			balance TEXT NOT NULL DEFAULT '0'
		)`,

		// Append-only audit journal.
		`CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			time        TEXT NOT NULL,
			kind        TEXT NOT NULL,
			asset_id    INTEGER NOT NULL DEFAULT 0,
			holder      TEXT NOT NULL DEFAULT '',
			units       INTEGER NOT NULL DEFAULT 0,
			amount      TEXT NOT NULL DEFAULT '0',
			accumulator TEXT NOT NULL DEFAULT '0',
			note        TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_time ON events(time)`,

		// Registry id counter.
		`CREATE TABLE IF NOT EXISTS registry_meta (
			key   TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		)`,
		`INSERT OR IGNORE INTO registry_meta (key, value) VALUES ('next_asset_id', 1)`,
	}
}
