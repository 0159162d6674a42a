package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
)

// ReadRawFile parses the raw dataset CSV. Column mapping is header-driven;
// unknown columns are ignored, absent numeric columns read as missing, and
// unparseable cells coerce to missing rather than failing the load.
func ReadRawFile(path string) ([]domain.Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRawDataNotFound, path)
		}
		return nil, fmt.Errorf("open raw dataset %s: %w", path, err)
	}
	defer f.Close()

	assets, err := parseTable(f)
	if err != nil {
		return nil, fmt.Errorf("parse raw dataset %s: %w", path, err)
	}
	return assets, nil
}

// Clean drops rows missing the fields the engine requires: symbol,
// current_price, market_cap, total_volume. This is the caller-side contract;
// the engine assumes it holds.
func Clean(assets []domain.Asset) []domain.Asset {
	kept := make([]domain.Asset, 0, len(assets))
	for _, a := range assets {
		if a.Symbol == "" {
			continue
		}
		if math.IsNaN(a.CurrentPrice) || math.IsNaN(a.MarketCap) || math.IsNaN(a.TotalVolume) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

// WriteSnapshotFile materializes the full augmented table as CSV, creating
// parent directories as needed.
func WriteSnapshotFile(snap domain.Snapshot, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := writeTable(f, snap); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadSnapshotFile loads a previously materialized table.
func ReadSnapshotFile(path string) (domain.Snapshot, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Snapshot{}, false, nil
		}
		return domain.Snapshot{}, false, fmt.Errorf("open processed dataset %s: %w", path, err)
	}
	defer f.Close()

	assets, err := parseTable(f)
	if err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("parse processed dataset %s: %w", path, err)
	}
	return domain.NewSnapshot(assets), true, nil
}

// MarshalSnapshot serializes the table to CSV bytes (cache payload).
func MarshalSnapshot(snap domain.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTable(&buf, snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalSnapshot parses a table previously produced by MarshalSnapshot.
func UnmarshalSnapshot(b []byte) (domain.Snapshot, error) {
	assets, err := parseTable(bytes.NewReader(b))
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.NewSnapshot(assets), nil
}

func parseTable(r io.Reader) ([]domain.Asset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var assets []domain.Asset
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var a domain.Asset
		a.Symbol = cell(record, index, colSymbol)
		a.Name = cell(record, index, colName)
		for _, c := range numericColumns {
			c.set(&a, parseNumeric(cell(record, index, c.name)))
		}
		assets = append(assets, a)
	}
	return assets, nil
}

func writeTable(w io.Writer, snap domain.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns()); err != nil {
		return err
	}

	record := make([]string, 0, len(numericColumns)+2)
	for i := range snap.Assets {
		a := &snap.Assets[i]
		record = record[:0]
		record = append(record, a.Symbol, a.Name)
		for _, c := range numericColumns {
			record = append(record, formatNumeric(c.get(a)))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cell(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseNumeric coerces a cell to float64, mapping empty or malformed input
// to missing.
func parseNumeric(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// formatNumeric renders missing values as empty cells so the round trip
// preserves NaN semantics.
func formatNumeric(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
