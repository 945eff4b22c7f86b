package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/liquiditybook/asset"
	"github.com/paw-chain/liquiditybook/fp"
	"github.com/paw-chain/liquiditybook/types"
)

const (
	denomLeft  = "L"
	denomRight = "R"
)

func newTestPool(t *testing.T, binStepBps, feeBps uint64, price fp.FP) *Keeper {
	t.Helper()
	return NewPool(binStepBps, price, feeBps, asset.NewCoin(denomLeft, 0), asset.NewCoin(denomRight, 0), log.NewNopLogger())
}

func priceHalf(t *testing.T) fp.FP {
	t.Helper()
	p, err := fp.FromUint64Fraction(1, 2)
	require.NoError(t, err)
	return p
}

// TestSwap_SingleBinRoundTrip is scenario 1 of spec.md §8: step=20bps,
// price=0.5, fee=20bps, 10bn L and 10bn R in one bin.
func TestSwap_SingleBinRoundTrip(t *testing.T) {
	k := newTestPool(t, 20, 20, priceHalf(t))

	coinL := asset.NewCoin(denomLeft, 10_000_000_000)
	coinR := asset.NewCoin(denomRight, 10_000_000_000)
	_, err := k.ProvideLiquidityUniform(1, coinL, coinR, 1000)
	require.NoError(t, err)

	rOut, err := k.SwapLTR(asset.NewCoin(denomLeft, 1_000_000_000), 2000)
	require.NoError(t, err)
	require.EqualValues(t, 499_000_000, rOut.Value())

	lOut, err := k.SwapRTL(asset.NewCoin(denomRight, 1_000_000_000), 3000)
	require.NoError(t, err)
	require.EqualValues(t, 1_996_000_000, lOut.Value())
}

// TestSwap_MultiBinCrossing is scenario 2 of spec.md §8: step=20bps,
// price=0.5, fee=20bps, 3 bins each holding 2bn on the side the trade
// consumes. The active bin fills completely and the walk crosses into the
// next higher-priced bin for the remainder.
func TestSwap_MultiBinCrossing(t *testing.T) {
	k := newTestPool(t, 20, 20, priceHalf(t))

	activeID := k.ActiveBinID()
	stepFactor, err := k.pool.StepFactor()
	require.NoError(t, err)

	k.pool.ActiveBin().BalanceRight = 2_000_000_000
	nextPrice := k.pool.ActiveBin().Price.Mul(stepFactor)
	k.pool.Bins[activeID+1] = types.NewBin(nextPrice)
	k.pool.Bins[activeID+1].BalanceRight = 2_000_000_000
	k.pool.Bins[activeID+2] = types.NewBin(nextPrice.Mul(stepFactor))
	k.pool.Bins[activeID+2].BalanceRight = 2_000_000_000
	// Back the bin balances set above with the vault custody they stand for.
	require.NoError(t, k.vaultRight.Join(asset.NewCoin(denomRight, 6_000_000_000)))

	out, err := k.SwapLTR(asset.NewCoin(denomLeft, 6_000_000_000), 1000)
	require.NoError(t, err)
	require.EqualValues(t, 2_995_988_000, out.Value())
	require.Equal(t, activeID+1, k.ActiveBinID())
}

// TestSwap_InsufficientLiquidity exercises the failure contract: a trade
// exceeding every bin's capacity fails once the walk runs out of bins.
func TestSwap_InsufficientLiquidity(t *testing.T) {
	k := newTestPool(t, 20, 20, priceHalf(t))
	k.pool.ActiveBin().BalanceRight = 1_000
	require.NoError(t, k.vaultRight.Join(asset.NewCoin(denomRight, 1_000)))

	_, err := k.SwapLTR(asset.NewCoin(denomLeft, 1_000_000_000), 1000)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestProvideLiquidity_EvenBinCount(t *testing.T) {
	k := newTestPool(t, 20, 20, priceHalf(t))
	_, err := k.ProvideLiquidityUniform(2, asset.NewCoin(denomLeft, 100), asset.NewCoin(denomRight, 100), 1000)
	require.ErrorIs(t, err, types.ErrEvenBinCount)
}

func TestProvideLiquidity_NoLiquidity(t *testing.T) {
	k := newTestPool(t, 20, 20, priceHalf(t))
	_, err := k.ProvideLiquidityUniform(3, asset.NewCoin(denomLeft, 0), asset.NewCoin(denomRight, 0), 1000)
	require.ErrorIs(t, err, types.ErrNoLiquidity)
}

// TestProvideLiquidity_RemainderIntoActiveBin checks the §4.4 guarantee
// that total provided assets equal total input assets exactly, with any
// rounding dust landing in the active bin.
func TestProvideLiquidity_RemainderIntoActiveBin(t *testing.T) {
	k := newTestPool(t, 20, 20, priceHalf(t))
	receipt, err := k.ProvideLiquidityUniform(3, asset.NewCoin(denomLeft, 100), asset.NewCoin(denomRight, 100), 1000)
	require.NoError(t, err)

	var totalLeft, totalRight uint64
	for _, e := range receipt.Liquidity {
		totalLeft += e.Left
		totalRight += e.Right
	}
	require.EqualValues(t, 100, totalLeft)
	require.EqualValues(t, 100, totalRight)
}

// TestWithdraw_FeeDistributionSingleLP is scenario 3: one LP, a swap of 1bn
// L, a swap of the R it returned back to L, then a full withdrawal
// recovering principal plus every fee collected in bins it was deposited in.
func TestWithdraw_FeeDistributionSingleLP(t *testing.T) {
	k := newTestPool(t, 20, 20, priceHalf(t))

	receipt, err := k.ProvideLiquidityUniform(3,
		asset.NewCoin(denomLeft, 300_000_000_000),
		asset.NewCoin(denomRight, 300_000_000_000),
		1000)
	require.NoError(t, err)

	rOut, err := k.SwapLTR(asset.NewCoin(denomLeft, 1_000_000_000), 2000)
	require.NoError(t, err)
	_, err = k.SwapRTL(rOut, 3000)
	require.NoError(t, err)

	outL, outR, err := k.Withdraw(receipt)
	require.NoError(t, err)
	require.GreaterOrEqual(t, outL.Value(), uint64(300_000_000_000))
	require.GreaterOrEqual(t, outR.Value(), uint64(300_000_000_000))
}

// TestWithdraw_FeeDistributionEqualLPs is scenario 4: five LPs depositing
// identical amounts into the same bin each earn exactly one-fifth of every
// fee generated after all five have deposited. Payouts are compared by their
// left-equivalent size at the bin's price, since a withdrawal may pay part of
// one asset's principal in the other asset.
func TestWithdraw_FeeDistributionEqualLPs(t *testing.T) {
	k := newTestPool(t, 20, 20, priceHalf(t))

	receipts := make([]*types.Receipt, 5)
	for i := range receipts {
		r, err := k.ProvideLiquidityUniform(1,
			asset.NewCoin(denomLeft, 100_000_000_000),
			asset.NewCoin(denomRight, 100_000_000_000),
			1000)
		require.NoError(t, err)
		receipts[i] = r
	}

	_, err := k.SwapLTR(asset.NewCoin(denomLeft, 1_000_000_000), 2000)
	require.NoError(t, err)

	var earned [5]uint64
	for i, r := range receipts {
		outL, outR, err := k.Withdraw(r)
		require.NoError(t, err)
		earned[i], err = k.pool.ActiveBin().AsL(outL.Value(), outR.Value())
		require.NoError(t, err)
	}
	for i := 1; i < len(earned); i++ {
		require.InDelta(t, earned[0], earned[i], 1)
	}
}

// TestWithdraw_FeeHijackingPrevention is scenario 5: a late, much larger LP
// depositing after a swap and withdrawing immediately earns no fees.
func TestWithdraw_FeeHijackingPrevention(t *testing.T) {
	k := newTestPool(t, 20, 20, priceHalf(t))

	receiptA, err := k.ProvideLiquidityUniform(1,
		asset.NewCoin(denomLeft, 10_000_000_000),
		asset.NewCoin(denomRight, 10_000_000_000),
		1000)
	require.NoError(t, err)

	_, err = k.SwapLTR(asset.NewCoin(denomLeft, 1_000_000_000), 2000)
	require.NoError(t, err)

	receiptB, err := k.ProvideLiquidityUniform(1,
		asset.NewCoin(denomLeft, 1_000_000_000_000),
		asset.NewCoin(denomRight, 1_000_000_000_000),
		3000)
	require.NoError(t, err)

	outL, outR, err := k.Withdraw(receiptB)
	require.NoError(t, err)
	require.EqualValues(t, 1_000_000_000_000, outL.Value())
	require.EqualValues(t, 1_000_000_000_000, outR.Value())

	_, _, err = k.Withdraw(receiptA)
	require.NoError(t, err)
}

// TestWithdraw_WrongPool is scenario 6.
func TestWithdraw_WrongPool(t *testing.T) {
	p1 := newTestPool(t, 20, 20, priceHalf(t))
	p2 := newTestPool(t, 20, 20, priceHalf(t))

	receipt, err := p2.ProvideLiquidityUniform(1, asset.NewCoin(denomLeft, 1000), asset.NewCoin(denomRight, 1000), 1000)
	require.NoError(t, err)

	_, _, err = p1.Withdraw(receipt)
	require.ErrorIs(t, err, types.ErrInvalidPoolID)
}

func TestCleanEmptyBins_RemovesDrainedBins(t *testing.T) {
	k := newTestPool(t, 20, 20, priceHalf(t))
	receipt, err := k.ProvideLiquidityUniform(3,
		asset.NewCoin(denomLeft, 300), asset.NewCoin(denomRight, 300), 1000)
	require.NoError(t, err)

	before := k.BinCount()
	require.Equal(t, 3, before)

	_, _, err = k.Withdraw(receipt)
	require.NoError(t, err)

	removed := k.CleanEmptyBins()
	require.Equal(t, 2, removed)
	require.Equal(t, 1, k.BinCount())
}
