package keeper

// CleanEmptyBins removes every non-active bin with zero balance and zero
// provided principal. It never runs inside a swap or withdrawal; callers
// invoke it explicitly to bound a long-lived pool's bin map (spec.md §4.7).
// It returns the number of bins removed.
func (k *Keeper) CleanEmptyBins() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	removed := k.pool.CleanEmptyBins()
	if removed > 0 {
		k.metrics.binsSwept.Add(float64(removed))
		k.logger.Debug("swept empty bins", "pool_id", k.pool.ID, "count", removed)
	}
	return removed
}
