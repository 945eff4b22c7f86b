package types

// LiquidityEntry is one bin's worth of a provisioning deposit: the amounts
// of L and R attributed to the depositor in that bin.
type LiquidityEntry struct {
	BinID uint64
	Left  uint64
	Right uint64
}

// Receipt is the non-transferable proof of a deposit. It is the sole
// precondition for withdrawal and is consumed — logically destroyed — by
// it; this package does not enforce single-use itself (it holds no
// registry of live receipts), since object lifecycle is the host runtime's
// concern (spec.md §1). keeper.Withdraw reads the *Receipt it is given and
// does not mark it spent; the caller is expected to discard it after a
// successful call.
type Receipt struct {
	PoolID        uint64
	DepositTimeMs uint64
	Liquidity     []LiquidityEntry
}
