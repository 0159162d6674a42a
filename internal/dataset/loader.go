package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/config"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/engine"
)

// Loader produces the processed snapshot: raw CSV → clean → pipeline, with a
// processed-file materialization (delete to invalidate) and an optional
// Redis layer keyed on the raw file's content hash. Because the cache key is
// the whole input's identity, a changed raw file can never serve a stale
// table.
type Loader struct {
	cfg   config.DataConfig
	ttl   config.RedisConfig
	pipe  engine.Pipeline
	cache SnapshotCache
}

// NewLoader builds a loader; cache may be nil.
func NewLoader(cfg config.DataConfig, redisCfg config.RedisConfig, pipe engine.Pipeline, cache SnapshotCache) *Loader {
	return &Loader{cfg: cfg, ttl: redisCfg, pipe: pipe, cache: cache}
}

// LoadRaw reads the raw dataset without cleaning or derivation.
func (l *Loader) LoadRaw() (domain.Snapshot, error) {
	assets, err := ReadRawFile(l.cfg.RawPath)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.NewSnapshot(assets), nil
}

// LoadProcessed returns the fully augmented snapshot, computing it only on a
// complete cache miss.
func (l *Loader) LoadProcessed(ctx context.Context) (domain.Snapshot, error) {
	key, haveKey := l.cacheKey()
	if haveKey && l.cache != nil {
		if b, ok := l.cache.Get(ctx, key); ok {
			snap, err := UnmarshalSnapshot(b)
			if err == nil {
				log.Debug().Int("rows", snap.Len()).Msg("processed snapshot served from cache")
				return snap, nil
			}
			log.Warn().Err(err).Msg("discarding corrupt cached snapshot")
		}
	}

	if snap, ok, err := ReadSnapshotFile(l.cfg.ProcessedPath); err != nil {
		return domain.Snapshot{}, err
	} else if ok {
		log.Debug().Int("rows", snap.Len()).Str("path", l.cfg.ProcessedPath).Msg("processed snapshot served from file")
		return snap, nil
	}

	raw, err := l.LoadRaw()
	if err != nil {
		return domain.Snapshot{}, err
	}
	cleaned := Clean(raw.Assets)
	log.Info().Int("raw_rows", raw.Len()).Int("clean_rows", len(cleaned)).Msg("computing equilibrium snapshot")

	snap := l.pipe.Run(domain.NewSnapshot(cleaned))

	if err := WriteSnapshotFile(snap, l.cfg.ProcessedPath); err != nil {
		return domain.Snapshot{}, fmt.Errorf("materialize processed snapshot: %w", err)
	}
	if haveKey && l.cache != nil {
		if b, err := MarshalSnapshot(snap); err == nil {
			l.cache.Set(ctx, key, b, l.ttl.TTL())
		}
	}
	return snap, nil
}

// Invalidate removes the processed materialization; the next load recomputes.
func (l *Loader) Invalidate() error {
	if err := os.Remove(l.cfg.ProcessedPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("invalidate processed snapshot: %w", err)
	}
	return nil
}

// cacheKey hashes the raw file bytes; no raw file, no cache participation.
func (l *Loader) cacheKey() (string, bool) {
	b, err := os.ReadFile(l.cfg.RawPath)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(b)
	return "equilibrium:snapshot:" + hex.EncodeToString(sum[:]), true
}
