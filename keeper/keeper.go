// Package keeper implements the three mutating subsystems of the liquidity
// book core: provisioning, the bin-walking swap engine, and time-aware
// withdrawal, plus the empty-bin sweep. Every exported method on Keeper is
// an atomic transaction against the pool it owns (spec.md §5): it runs to
// completion without suspension, and a single mutex per Keeper serializes
// mutating calls the way spec.md requires when a pool is hosted by a
// multi-threaded runtime.
package keeper

import (
	"container/list"
	"sync"

	"cosmossdk.io/log"

	"github.com/paw-chain/liquiditybook/asset"
	"github.com/paw-chain/liquiditybook/fp"
	"github.com/paw-chain/liquiditybook/types"
)

// Keeper owns one Pool plus the custody vaults backing its bin ledger. The
// vaults are the only place actual asset.Asset values live between calls —
// Bin.BalanceLeft/Right are just the bookkeeping integers that must always
// sum to the corresponding vault's Value(), mirroring how a resource-
// oriented runtime (the one the Move original targeted) splits a Coin's
// custody from a pool's internal Balance ledger. spec.md §1 puts custody
// primitives out of scope for the core itself; this is the minimal amount
// of custody modeling needed to make the Asset capability interface
// exercised rather than decorative.
type Keeper struct {
	mu sync.Mutex

	pool *types.Pool

	vaultLeft  asset.Asset
	vaultRight asset.Asset

	logger  log.Logger
	metrics *Metrics
}

// New wraps an existing Pool in a Keeper. vaultLeft and vaultRight must be
// zero-valued assets of the pool's two asset types; they accumulate the
// pool's actual custody as provisioning and swaps run.
func New(pool *types.Pool, vaultLeft, vaultRight asset.Asset, logger log.Logger) *Keeper {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Keeper{
		pool:       pool,
		vaultLeft:  vaultLeft,
		vaultRight: vaultRight,
		logger:     logger,
		metrics:    NewMetrics(pool.ID),
	}
}

// NewPool creates a fresh pool and wraps it in a Keeper in one step, the
// Go-native shape of spec.md §6's new_pool operation. zeroLeft and
// zeroRight are used only for their Zero() type tag; their own value is
// ignored.
func NewPool(binStepBps uint64, startingPrice fp.FP, feeBps uint64, zeroLeft, zeroRight asset.Asset, logger log.Logger) *Keeper {
	pool := types.NewPool(binStepBps, startingPrice, feeBps)
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger.Info("pool created", "pool_id", pool.ID, "starting_price", startingPrice.String(), "bin_step_bps", binStepBps, "fee_bps", pool.FeeBps)
	return New(pool, zeroLeft.Zero(), zeroRight.Zero(), logger)
}

// Metrics exposes the Keeper's Prometheus instrumentation so a host process
// can register it with its own registry.
func (k *Keeper) Metrics() *Metrics {
	return k.metrics
}

// PoolID returns the identity a Receipt must match to be accepted by
// Withdraw.
func (k *Keeper) PoolID() uint64 {
	return k.pool.ID
}

// FeeBps returns the pool's trading fee, already clamped to
// types.MaxFeeBps.
func (k *Keeper) FeeBps() uint64 {
	return k.pool.FeeBps
}

// ActiveBinID returns the id of the bin currently tracking the market
// price.
func (k *Keeper) ActiveBinID() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pool.ActiveBinID
}

// ActivePrice returns the active bin's price.
func (k *Keeper) ActivePrice() fp.FP {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pool.ActiveBin().Price
}

// GetBin returns a read-only snapshot of the bin at id, if any.
func (k *Keeper) GetBin(id uint64) (*types.Bin, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	b, ok := k.pool.GetBin(id)
	if !ok {
		return nil, false
	}
	snap := *b
	snap.FeeLogLeft, snap.FeeLogRight = list.New(), list.New()
	for e := b.FeeLogLeft.Front(); e != nil; e = e.Next() {
		entry := *e.Value.(*types.FeeEntry)
		snap.FeeLogLeft.PushBack(&entry)
	}
	for e := b.FeeLogRight.Front(); e != nil; e = e.Next() {
		entry := *e.Value.(*types.FeeEntry)
		snap.FeeLogRight.PushBack(&entry)
	}
	return &snap, true
}

// BalanceLeft returns a bin's current left-side balance.
func BalanceLeft(b *types.Bin) uint64 { return b.BalanceLeft }

// BalanceRight returns a bin's current right-side balance.
func BalanceRight(b *types.Bin) uint64 { return b.BalanceRight }
