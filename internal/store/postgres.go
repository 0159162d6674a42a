package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
)

// postgresStore implements SnapshotStore for PostgreSQL.
type postgresStore struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewPostgresStore opens a connection pool for the given DSN.
func NewPostgresStore(dsn string, timeout time.Duration) (SnapshotStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &postgresStore{db: db, timeout: timeout}, nil
}

// NewPostgresStoreWithDB wraps an existing pool (tests use sqlmock).
func NewPostgresStoreWithDB(db *sqlx.DB, timeout time.Duration) SnapshotStore {
	return &postgresStore{db: db, timeout: timeout}
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS snapshots (
		id UUID PRIMARY KEY,
		loaded_at TIMESTAMPTZ NOT NULL,
		asset_count INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS snapshot_assets (
		snapshot_id UUID NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		symbol TEXT NOT NULL,
		name TEXT,
		market_cap_rank DOUBLE PRECISION,
		current_price DOUBLE PRECISION,
		market_cap DOUBLE PRECISION,
		total_volume DOUBLE PRECISION,
		supply_utilization DOUBLE PRECISION,
		force_demand DOUBLE PRECISION,
		force_supply DOUBLE PRECISION,
		force_volatility DOUBLE PRECISION,
		force_liquidity DOUBLE PRECISION,
		force_speculation DOUBLE PRECISION,
		equilibrium_shift DOUBLE PRECISION,
		equilibrium_center DOUBLE PRECISION,
		equilibrium_lower DOUBLE PRECISION,
		equilibrium_upper DOUBLE PRECISION,
		tension_score DOUBLE PRECISION,
		PRIMARY KEY (snapshot_id, symbol)
	);`

const insertSnapshotSQL = `
	INSERT INTO snapshots (id, loaded_at, asset_count)
	VALUES ($1, $2, $3)`

const insertAssetSQL = `
	INSERT INTO snapshot_assets (
		snapshot_id, symbol, name, market_cap_rank,
		current_price, market_cap, total_volume, supply_utilization,
		force_demand, force_supply, force_volatility, force_liquidity, force_speculation,
		equilibrium_shift, equilibrium_center, equilibrium_lower, equilibrium_upper,
		tension_score
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

// EnsureSchema creates the snapshot tables when they do not exist.
func (s *postgresStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return nil
}

// SaveSnapshot inserts the header and every asset row atomically.
func (s *postgresStore) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertSnapshotSQL, snap.ID, snap.LoadedAt, snap.Len()); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("duplicate snapshot %s: %w", snap.ID, err)
		}
		return fmt.Errorf("insert snapshot header: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertAssetSQL)
	if err != nil {
		return fmt.Errorf("prepare asset insert: %w", err)
	}
	defer stmt.Close()

	for i := range snap.Assets {
		a := &snap.Assets[i]
		if _, err := stmt.ExecContext(ctx,
			snap.ID, a.Symbol, a.Name, a.MarketCapRank,
			a.CurrentPrice, a.MarketCap, a.TotalVolume, a.SupplyUtilization,
			a.ForceDemand, a.ForceSupply, a.ForceVolatility, a.ForceLiquidity, a.ForceSpeculation,
			a.EquilibriumShift, a.EquilibriumCenter, a.EquilibriumLower, a.EquilibriumUpper,
			a.TensionScore,
		); err != nil {
			return fmt.Errorf("insert asset %s: %w", a.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}
	return nil
}
