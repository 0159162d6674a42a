package dataset

import (
	"fmt"
	"strings"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
)

// BySymbol returns the first row whose symbol matches, case-insensitively.
func BySymbol(snap domain.Snapshot, symbol string) (domain.Asset, error) {
	want := strings.ToUpper(symbol)
	for i := range snap.Assets {
		if strings.ToUpper(snap.Assets[i].Symbol) == want {
			return snap.Assets[i], nil
		}
	}
	return domain.Asset{}, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
}

// ByIndex returns the row at position i.
func ByIndex(snap domain.Snapshot, i int) (domain.Asset, error) {
	if i < 0 || i >= snap.Len() {
		return domain.Asset{}, fmt.Errorf("%w: index %d for dataset of size %d", ErrIndexOutOfRange, i, snap.Len())
	}
	return snap.Assets[i], nil
}
