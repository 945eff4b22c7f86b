package keeper

// BinCount returns the number of bins currently tracked by the pool,
// mirroring the diagnostic surface the teacher's x/dex/keeper/pool.go
// exposes over its own store-backed pool records.
func (k *Keeper) BinCount() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.pool.Bins)
}

// BinStepBps returns the pool's fixed multiplicative gap between
// consecutive bin prices.
func (k *Keeper) BinStepBps() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pool.BinStepBps
}
