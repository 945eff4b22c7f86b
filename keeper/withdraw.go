package keeper

import (
	"github.com/paw-chain/liquiditybook/asset"
	"github.com/paw-chain/liquiditybook/types"
)

// Withdraw consumes receipt and pays out its principal plus every fee
// accrued, per bin, since the receipt's deposit timestamp. It fails with
// ErrInvalidPoolID if the receipt was not issued by this Keeper's pool, and
// with ErrBinNotFound if a referenced bin no longer exists — which can only
// happen if an invariant elsewhere has already been violated, since bins
// holding outstanding receipts are never swept (spec.md §4.7).
func (k *Keeper) Withdraw(receipt *types.Receipt) (coinLeftOut, coinRightOut asset.Asset, err error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if receipt.PoolID != k.pool.ID {
		return nil, nil, types.ErrInvalidPoolID
	}

	outLeft := k.vaultLeft.Zero()
	outRight := k.vaultRight.Zero()

	for _, entry := range receipt.Liquidity {
		bin, ok := k.pool.GetBin(entry.BinID)
		if !ok {
			return nil, nil, types.ErrBinNotFound
		}

		shareAsL, err := bin.AsL(entry.Left, entry.Right)
		if err != nil {
			return nil, nil, err
		}

		feesLeft, err := types.DistributeFees(bin.FeeLogLeft, shareAsL, receipt.DepositTimeMs)
		if err != nil {
			return nil, nil, err
		}
		feesRight, err := types.DistributeFees(bin.FeeLogRight, shareAsL, receipt.DepositTimeMs)
		if err != nil {
			return nil, nil, err
		}

		payoutLeft := entry.Left + feesLeft
		gotLeft, crossedRight, err := bin.PayLeftPrincipal(payoutLeft)
		if err != nil {
			return nil, nil, err
		}
		payoutRight := entry.Right + feesRight
		gotRight, crossedLeft, err := bin.PayRightPrincipal(payoutRight)
		if err != nil {
			return nil, nil, err
		}

		bin.ProvidedLeft -= entry.Left
		bin.ProvidedRight -= entry.Right

		totalLeft := gotLeft + crossedLeft
		totalRight := gotRight + crossedRight

		if bin.ProvidedLeft == 0 && bin.ProvidedRight == 0 {
			totalLeft += bin.BalanceLeft
			totalRight += bin.BalanceRight
			bin.BalanceLeft = 0
			bin.BalanceRight = 0
		}

		if totalLeft > 0 {
			chunk, err := k.vaultLeft.Split(totalLeft)
			if err != nil {
				return nil, nil, err
			}
			if err := outLeft.Join(chunk); err != nil {
				return nil, nil, err
			}
		}
		if totalRight > 0 {
			chunk, err := k.vaultRight.Split(totalRight)
			if err != nil {
				return nil, nil, err
			}
			if err := outRight.Join(chunk); err != nil {
				return nil, nil, err
			}
		}
	}

	k.metrics.liquidityWithdraw.WithLabelValues("left").Add(float64(outLeft.Value()))
	k.metrics.liquidityWithdraw.WithLabelValues("right").Add(float64(outRight.Value()))

	return outLeft, outRight, nil
}
