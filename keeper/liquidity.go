package keeper

import (
	"github.com/paw-chain/liquiditybook/asset"
	"github.com/paw-chain/liquiditybook/types"
)

// ProvideLiquidityUniform splits coinLeft and coinRight evenly across
// binCount bins centered on the active bin, minting bins on demand, and
// dumps the rounding remainder of both coins into the active bin so total
// provided assets equal total input assets exactly (spec.md §4.4). It
// consumes both coins fully and returns the receipt a later Withdraw call
// must present.
func (k *Keeper) ProvideLiquidityUniform(binCount uint64, coinLeft, coinRight asset.Asset, nowMs uint64) (*types.Receipt, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if binCount%2 == 0 {
		return nil, types.ErrEvenBinCount
	}
	if coinLeft.Value() == 0 && coinRight.Value() == 0 {
		return nil, types.ErrNoLiquidity
	}

	half := (binCount - 1) / 2
	leftPerBin := coinLeft.Value() / (half + 1)
	rightPerBin := coinRight.Value() / (half + 1)

	stepFactor, err := k.pool.StepFactor()
	if err != nil {
		return nil, err
	}

	activeBin := k.pool.ActiveBin()
	activeID := k.pool.ActiveBinID
	activePrice := activeBin.Price

	receipt := &types.Receipt{
		PoolID:        k.pool.ID,
		DepositTimeMs: nowMs,
	}

	leftPrior := activePrice
	for n := uint64(1); n <= half; n++ {
		binID := activeID - n
		bin, created, err := k.pool.GetOrCreateBinBelow(binID, leftPrior, stepFactor)
		if err != nil {
			return nil, err
		}
		leftPrior = bin.Price
		if created {
			k.metrics.binsCreated.Inc()
			k.logger.Debug("created bin", "pool_id", k.pool.ID, "bin_id", binID, "price", bin.Price.String())
		}
		if leftPerBin > 0 {
			chunk, err := coinLeft.Split(leftPerBin)
			if err != nil {
				return nil, err
			}
			if err := k.vaultLeft.Join(chunk); err != nil {
				return nil, err
			}
			bin.Deposit(leftPerBin, 0)
			receipt.Liquidity = append(receipt.Liquidity, types.LiquidityEntry{BinID: activeID - n, Left: leftPerBin})
		}
	}

	rightPrior := activePrice
	for n := uint64(1); n <= half; n++ {
		binID := activeID + n
		bin, created := k.pool.GetOrCreateBinAbove(binID, rightPrior, stepFactor)
		rightPrior = bin.Price
		if created {
			k.metrics.binsCreated.Inc()
			k.logger.Debug("created bin", "pool_id", k.pool.ID, "bin_id", binID, "price", bin.Price.String())
		}
		if rightPerBin > 0 {
			chunk, err := coinRight.Split(rightPerBin)
			if err != nil {
				return nil, err
			}
			if err := k.vaultRight.Join(chunk); err != nil {
				return nil, err
			}
			bin.Deposit(0, rightPerBin)
			receipt.Liquidity = append(receipt.Liquidity, types.LiquidityEntry{BinID: activeID + n, Right: rightPerBin})
		}
	}

	remainderLeft := coinLeft.Value()
	remainderRight := coinRight.Value()
	if remainderLeft > 0 || remainderRight > 0 {
		leftChunk, err := coinLeft.WithdrawAll()
		if err != nil {
			return nil, err
		}
		rightChunk, err := coinRight.WithdrawAll()
		if err != nil {
			return nil, err
		}
		if err := k.vaultLeft.Join(leftChunk); err != nil {
			return nil, err
		}
		if err := k.vaultRight.Join(rightChunk); err != nil {
			return nil, err
		}
		activeBin.Deposit(remainderLeft, remainderRight)
		receipt.Liquidity = append(receipt.Liquidity, types.LiquidityEntry{BinID: activeID, Left: remainderLeft, Right: remainderRight})
	}

	if err := coinLeft.DestroyZero(); err != nil {
		return nil, err
	}
	if err := coinRight.DestroyZero(); err != nil {
		return nil, err
	}

	k.metrics.liquidityProvided.WithLabelValues("left").Add(float64(leftPerBin*half + remainderLeft))
	k.metrics.liquidityProvided.WithLabelValues("right").Add(float64(rightPerBin*half + remainderRight))

	return receipt, nil
}
