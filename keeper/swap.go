package keeper

import (
	"github.com/paw-chain/liquiditybook/asset"
	"github.com/paw-chain/liquiditybook/fp"
	"github.com/paw-chain/liquiditybook/types"
)

// feeFraction returns fee_bps/10000 as an FP, the fraction applied to an
// input-side swap leg.
func (k *Keeper) feeFraction() (fp.FP, error) {
	return fp.FromUint64Fraction(k.pool.FeeBps, 10000)
}

// inverseFeeFraction returns (10000-fee_bps)/10000, the divisor used to back
// out the fee owed on a bin-capped leg from the output we can actually
// deliver (spec.md §4.5 step 4).
func (k *Keeper) inverseFeeFraction() (fp.FP, error) {
	return fp.FromUint64Fraction(10000-k.pool.FeeBps, 10000)
}

// SwapLTR exchanges coinLeft for R, walking bins upward (increasing id,
// rising price) from the active bin until the input is exhausted. It fails
// with ErrInsufficientLiquidity if input remains and no higher bin exists.
func (k *Keeper) SwapLTR(coinLeft asset.Asset, nowMs uint64) (asset.Asset, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	out := k.vaultRight.Zero()
	var feeTotal uint64
	for coinLeft.Value() > 0 {
		bin := k.pool.ActiveBin()

		feeFrac, err := k.feeFraction()
		if err != nil {
			return nil, err
		}
		fee, err := feeFrac.MulU64(coinLeft.Value())
		if err != nil {
			return nil, err
		}

		swapLeft := coinLeft.Value()
		swapRight, err := bin.Price.MulU64(swapLeft - fee)
		if err != nil {
			return nil, err
		}

		if swapRight > bin.BalanceRight {
			swapRight = bin.BalanceRight
			swapLeft, err = bin.Price.DivU64(swapRight)
			if err != nil {
				return nil, err
			}
			invFrac, err := k.inverseFeeFraction()
			if err != nil {
				return nil, err
			}
			invSwapLeft, err := invFrac.DivU64(swapLeft)
			if err != nil {
				return nil, err
			}
			fee = invSwapLeft - swapLeft
			swapLeft += fee
		}

		spent, err := coinLeft.Split(swapLeft)
		if err != nil {
			return nil, err
		}
		if err := k.vaultLeft.Join(spent); err != nil {
			return nil, err
		}
		bin.BalanceLeft += swapLeft

		received, err := k.vaultRight.Split(swapRight)
		if err != nil {
			return nil, err
		}
		bin.BalanceRight -= swapRight
		if err := out.Join(received); err != nil {
			return nil, err
		}

		if err := bin.RecordFeeLeft(fee, nowMs); err != nil {
			return nil, err
		}
		feeTotal += fee

		if bin.BalanceRight == 0 {
			if !k.pool.SetActiveBinID(k.pool.ActiveBinID + 1) {
				if coinLeft.Value() > 0 {
					k.metrics.swapInsufficient.Inc()
					return nil, types.ErrInsufficientLiquidity
				}
			}
		}
	}

	k.metrics.swapsTotal.WithLabelValues("ltr").Inc()
	k.metrics.feesCollected.WithLabelValues("left").Add(float64(feeTotal))
	return out, nil
}

// SwapRTL exchanges coinRight for L, walking bins downward (decreasing id,
// falling price) from the active bin until the input is exhausted. It is
// the mirror of SwapLTR, using DivU64 where SwapLTR uses MulU64.
func (k *Keeper) SwapRTL(coinRight asset.Asset, nowMs uint64) (asset.Asset, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	out := k.vaultLeft.Zero()
	var feeTotal uint64
	for coinRight.Value() > 0 {
		bin := k.pool.ActiveBin()

		feeFrac, err := k.feeFraction()
		if err != nil {
			return nil, err
		}
		fee, err := feeFrac.MulU64(coinRight.Value())
		if err != nil {
			return nil, err
		}

		swapRight := coinRight.Value()
		swapLeft, err := bin.Price.DivU64(swapRight - fee)
		if err != nil {
			return nil, err
		}

		if swapLeft > bin.BalanceLeft {
			swapLeft = bin.BalanceLeft
			swapRight, err = bin.Price.MulU64(swapLeft)
			if err != nil {
				return nil, err
			}
			invFrac, err := k.inverseFeeFraction()
			if err != nil {
				return nil, err
			}
			invSwapRight, err := invFrac.DivU64(swapRight)
			if err != nil {
				return nil, err
			}
			fee = invSwapRight - swapRight
			swapRight += fee
		}

		spent, err := coinRight.Split(swapRight)
		if err != nil {
			return nil, err
		}
		if err := k.vaultRight.Join(spent); err != nil {
			return nil, err
		}
		bin.BalanceRight += swapRight

		received, err := k.vaultLeft.Split(swapLeft)
		if err != nil {
			return nil, err
		}
		bin.BalanceLeft -= swapLeft
		if err := out.Join(received); err != nil {
			return nil, err
		}

		if err := bin.RecordFeeRight(fee, nowMs); err != nil {
			return nil, err
		}
		feeTotal += fee

		if bin.BalanceLeft == 0 {
			if !k.pool.SetActiveBinID(k.pool.ActiveBinID - 1) {
				if coinRight.Value() > 0 {
					k.metrics.swapInsufficient.Inc()
					return nil, types.ErrInsufficientLiquidity
				}
			}
		}
	}

	k.metrics.swapsTotal.WithLabelValues("rtl").Inc()
	k.metrics.feesCollected.WithLabelValues("right").Add(float64(feeTotal))
	return out, nil
}
