// Package store persists augmented snapshots to PostgreSQL so successive
// runs can be compared later. Persistence is optional; nothing in the
// pipeline depends on it.
package store

import (
	"context"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
)

// SnapshotStore records processed snapshots.
type SnapshotStore interface {
	// EnsureSchema creates the backing tables when absent.
	EnsureSchema(ctx context.Context) error

	// SaveSnapshot inserts the snapshot header and all asset rows in one
	// transaction. Saving the same snapshot ID twice is a duplicate error.
	SaveSnapshot(ctx context.Context, snap domain.Snapshot) error
}
