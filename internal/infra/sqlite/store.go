package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

// ─── Asset Store ────────────────────────────────────────────────────────────

// PutAsset inserts or replaces an asset record.
func (d *DB) PutAsset(a domain.Asset) error {
	active := 0
	if a.Active {
		active = 1
	}
	_, err := d.db.Exec(`
		INSERT INTO assets (id, name, image_ref, total_shares, available_shares,
			price_per_unit, cumulative_revenue, cumulative_expense, accumulator,
			active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name               = excluded.name,
			image_ref          = excluded.image_ref,
			total_shares       = excluded.total_shares,
			available_shares   = excluded.available_shares,
			price_per_unit     = excluded.price_per_unit,
			cumulative_revenue = excluded.cumulative_revenue,
			cumulative_expense = excluded.cumulative_expense,
			accumulator        = excluded.accumulator,
			active             = excluded.active`,
		int64(a.ID), a.Name, a.ImageRef, int64(a.TotalShares), int64(a.AvailableShares),
		a.PricePerUnit.String(), a.CumulativeRevenue.String(), a.CumulativeExpense.String(),
		a.Accumulator.String(), active, a.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// GetAsset looks up an asset by id.
func (d *DB) GetAsset(id domain.AssetID) (domain.Asset, bool, error) {
	row := d.db.QueryRow(`
		SELECT id, name, image_ref, total_shares, available_shares,
			price_per_unit, cumulative_revenue, cumulative_expense, accumulator,
			active, created_at
		FROM assets WHERE id = ?`, int64(id))
	a, err := scanAsset(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Asset{}, false, nil
	}
	if err != nil {
		return domain.Asset{}, false, err
	}
	return a, true, nil
}

// ListAssets returns all assets in id (creation) order.
func (d *DB) ListAssets() ([]domain.Asset, error) {
	rows, err := d.db.Query(`
		SELECT id, name, image_ref, total_shares, available_shares,
			price_per_unit, cumulative_revenue, cumulative_expense, accumulator,
			active, created_at
		FROM assets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Asset
	for rows.Next() {
		a, err := scanAsset(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// NextAssetID returns and advances the sequential id counter.
func (d *DB) NextAssetID() (domain.AssetID, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	if err := tx.QueryRow(`SELECT value FROM registry_meta WHERE key = 'next_asset_id'`).Scan(&id); err != nil {
		return 0, fmt.Errorf("read id counter: %w", err)
	}
	if _, err := tx.Exec(`UPDATE registry_meta SET value = value + 1 WHERE key = 'next_asset_id'`); err != nil {
		return 0, fmt.Errorf("advance id counter: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return domain.AssetID(id), nil
}

func scanAsset(scan func(...any) error) (domain.Asset, error) {
	var (
		a                       domain.Asset
		id, total, avail        int64
		price, rev, exp, accum  string
		active                  int
		createdAt               string
	)
	if err := scan(&id, &a.Name, &a.ImageRef, &total, &avail,
		&price, &rev, &exp, &accum, &active, &createdAt); err != nil {
		return domain.Asset{}, err
	}
	a.ID = domain.AssetID(id)
	a.TotalShares = uint64(total)
	a.AvailableShares = uint64(avail)
	a.Active = active != 0

	var err error
	if a.PricePerUnit, err = decimal.NewFromString(price); err != nil {
		return domain.Asset{}, fmt.Errorf("asset %d price: %w", id, err)
	}
	if a.CumulativeRevenue, err = decimal.NewFromString(rev); err != nil {
		return domain.Asset{}, fmt.Errorf("asset %d revenue: %w", id, err)
	}
	if a.CumulativeExpense, err = decimal.NewFromString(exp); err != nil {
		return domain.Asset{}, fmt.Errorf("asset %d expense: %w", id, err)
	}
	if a.Accumulator, err = decimal.NewFromString(accum); err != nil {
		return domain.Asset{}, fmt.Errorf("asset %d accumulator: %w", id, err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return domain.Asset{}, fmt.Errorf("asset %d created_at: %w", id, err)
	}
	return a, nil
}

// ─── Holding Store ──────────────────────────────────────────────────────────

// PutHolding inserts or replaces a holding record.
func (d *DB) PutHolding(h domain.Holding) error {
	_, err := d.db.Exec(`
		INSERT INTO holdings (asset_id, holder, units, debt)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(asset_id, holder) DO UPDATE SET
			units = excluded.units,
			debt  = excluded.debt`,
		int64(h.AssetID), h.Holder, int64(h.Units), h.Debt.String())
	return err
}

// GetHolding looks up one (asset, holder) position.
func (d *DB) GetHolding(assetID domain.AssetID, holder string) (domain.Holding, bool, error) {
	row := d.db.QueryRow(`
		SELECT asset_id, holder, units, debt FROM holdings
		WHERE asset_id = ? AND holder = ?`, int64(assetID), holder)
	h, err := scanHolding(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Holding{}, false, nil
	}
	if err != nil {
		return domain.Holding{}, false, err
	}
	return h, true, nil
}

// HoldingsByHolder returns the holder's positions in asset-id order.
func (d *DB) HoldingsByHolder(holder string) ([]domain.Holding, error) {
	return d.queryHoldings(`
		SELECT asset_id, holder, units, debt FROM holdings
		WHERE holder = ? ORDER BY asset_id`, holder)
}

// HoldingsByAsset returns every position in one asset.
func (d *DB) HoldingsByAsset(assetID domain.AssetID) ([]domain.Holding, error) {
	return d.queryHoldings(`
		SELECT asset_id, holder, units, debt FROM holdings
		WHERE asset_id = ? ORDER BY holder`, int64(assetID))
}

func (d *DB) queryHoldings(query string, arg any) ([]domain.Holding, error) {
	rows, err := d.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Holding
	for rows.Next() {
		h, err := scanHolding(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func scanHolding(scan func(...any) error) (domain.Holding, error) {
	var (
		h               domain.Holding
		assetID, units  int64
		debt            string
	)
	if err := scan(&assetID, &h.Holder, &units, &debt); err != nil {
		return domain.Holding{}, err
	}
	h.AssetID = domain.AssetID(assetID)
	h.Units = uint64(units)
	var err error
	if h.Debt, err = decimal.NewFromString(debt); err != nil {
		return domain.Holding{}, fmt.Errorf("holding (%d, %s) debt: %w", assetID, h.Holder, err)
	}
	return h, nil
}

// ─── Journal ────────────────────────────────────────────────────────────────

// Append records one audit event.
func (d *DB) Append(e domain.Event) error {
	_, err := d.db.Exec(`
		INSERT INTO events (id, time, kind, asset_id, holder, units, amount, accumulator, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Time.UTC().Format(time.RFC3339Nano), string(e.Kind), int64(e.AssetID),
		e.Holder, int64(e.Units), e.Amount.String(), e.Accumulator.String(), e.Note)
	return err
}

// Events returns the most recent events, newest first.
func (d *DB) Events(limit int) ([]domain.Event, error) {
	query := `SELECT id, time, kind, asset_id, holder, units, amount, accumulator, note
		FROM events ORDER BY time DESC, id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = d.db.Query(query+` LIMIT ?`, limit)
	} else {
		rows, err = d.db.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var (
			e               domain.Event
			ts, kind        string
			assetID, units  int64
			amount, accum   string
		)
		if err := rows.Scan(&e.ID, &ts, &kind, &assetID, &e.Holder, &units, &amount, &accum, &e.Note); err != nil {
			return nil, err
		}
		e.Kind = domain.EventKind(kind)
		e.AssetID = domain.AssetID(assetID)
		e.Units = uint64(units)
		if e.Time, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("event %s time: %w", e.ID, err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("event %s amount: %w", e.ID, err)
		}
		if e.Accumulator, err = decimal.NewFromString(accum); err != nil {
			return nil, fmt.Errorf("event %s accumulator: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ─── Treasury ───────────────────────────────────────────────────────────────

// Deposit credits an account with value arriving from outside the system.
func (d *DB) Deposit(account string, amount decimal.Decimal) error {
	if account == "" {
		return fmt.Errorf("deposit: account must not be empty")
	}
	if amount.IsNegative() {
		return fmt.Errorf("deposit: negative amount %s", amount)
	}
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := creditTx(tx, account, amount); err != nil {
		return err
	}
	return tx.Commit()
}

// Transfer moves value between two accounts. Debit and credit commit
// together or not at all.
func (d *DB) Transfer(from, to string, amount decimal.Decimal) error {
	if from == "" || to == "" {
		return fmt.Errorf("transfer: accounts must not be empty")
	}
	if amount.IsNegative() {
		return fmt.Errorf("transfer: negative amount %s", amount)
	}
	if amount.IsZero() {
		return nil
	}
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	balance, err := balanceTx(tx, from)
	if err != nil {
		return err
	}
	if balance.LessThan(amount) {
		return fmt.Errorf("transfer: account %s holds %s, need %s", from, balance, amount)
	}
	if err := setBalanceTx(tx, from, balance.Sub(amount)); err != nil {
		return err
	}
	if err := creditTx(tx, to, amount); err != nil {
		return err
	}
	return tx.Commit()
}

// BalanceOf returns an account's balance. Unknown accounts hold zero.
func (d *DB) BalanceOf(account string) decimal.Decimal {
	var raw string
	err := d.db.QueryRow(`SELECT balance FROM treasury_accounts WHERE account = ?`, account).Scan(&raw)
	if err != nil {
		return decimal.Zero
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return balance
}

func balanceTx(tx *sql.Tx, account string) (decimal.Decimal, error) {
	var raw string
	err := tx.QueryRow(`SELECT balance FROM treasury_accounts WHERE account = ?`, account).Scan(&raw)
	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

func creditTx(tx *sql.Tx, account string, amount decimal.Decimal) error {
	balance, err := balanceTx(tx, account)
	if err != nil {
		return err
	}
	return setBalanceTx(tx, account, balance.Add(amount))
}

func setBalanceTx(tx *sql.Tx, account string, balance decimal.Decimal) error {
	_, err := tx.Exec(`
		INSERT INTO treasury_accounts (account, balance) VALUES (?, ?)
		ON CONFLICT(account) DO UPDATE SET balance = excluded.balance`,
		account, balance.String())
	return err
}
