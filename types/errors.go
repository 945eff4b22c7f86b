package types

import (
	"cosmossdk.io/errors"
)

// ModuleName identifies this package's error codespace.
const ModuleName = "liquiditybook"

// Liquidity book sentinel errors, one per failure contract in spec.md §7.
var (
	ErrInsufficientLiquidity = errors.Register(ModuleName, 1, "insufficient liquidity to complete swap")
	ErrEvenBinCount          = errors.Register(ModuleName, 2, "bin count must be odd")
	ErrNoLiquidity           = errors.Register(ModuleName, 3, "both input coins are zero-value")
	ErrInvalidPoolID         = errors.Register(ModuleName, 4, "receipt does not belong to this pool")

	// ErrBinNotFound guards an invariant violation, not a caller contract:
	// a receipt should never outlive the bins it references (spec.md §3
	// invariants), so this only fires if that invariant has already been
	// broken elsewhere.
	ErrBinNotFound = errors.Register(ModuleName, 5, "bin referenced by receipt no longer exists")
)
