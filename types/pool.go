package types

import (
	"sync/atomic"

	"github.com/paw-chain/liquiditybook/fp"
)

// MaxFeeBps is the protocol-wide ceiling on a pool's trading fee: 0.5%,
// expressed in ten-thousandths (spec.md §3).
const MaxFeeBps = 50

// originBinID is the id of the first bin a pool is created with, chosen so
// that arbitrarily many bins can be added on either side before the id
// space over- or underflows.
const originBinID = uint64(1) << 63

var poolIDSeq atomic.Uint64

// nextPoolID hands out the identity stamped on every new Pool, mirroring
// the teacher's incrementing PoolCountKey counter (x/dex/keeper/pool.go)
// without a backing key-value store: there is only ever one process-wide
// sequence, which is exactly what a store-backed counter degenerates to
// when the store is just memory.
func nextPoolID() uint64 {
	return poolIDSeq.Add(1)
}

// Pool owns an ordered mapping of bin id to Bin, plus the parameters fixed
// at construction time.
type Pool struct {
	ID uint64

	Bins        map[uint64]*Bin
	ActiveBinID uint64

	BinStepBps uint64
	FeeBps     uint64
}

// StepFactor returns 1 + bin_step_bps/10000, the multiplicative gap between
// consecutive bin prices.
func (p *Pool) StepFactor() (fp.FP, error) {
	return fp.FromUint64Fraction(10000+p.BinStepBps, 10000)
}

// NewPool creates a pool with a single bin at originBinID, priced at
// startingPrice, with feeBps clamped to MaxFeeBps.
func NewPool(binStepBps uint64, startingPrice fp.FP, feeBps uint64) *Pool {
	if feeBps > MaxFeeBps {
		feeBps = MaxFeeBps
	}
	p := &Pool{
		ID:          nextPoolID(),
		Bins:        make(map[uint64]*Bin),
		ActiveBinID: originBinID,
		BinStepBps:  binStepBps,
		FeeBps:      feeBps,
	}
	p.Bins[originBinID] = NewBin(startingPrice)
	return p
}

// ActiveBin returns the bin currently tracking the market price. It panics
// if ActiveBinID has no backing bin, which the invariants in spec.md §3
// guarantee never happens between operations.
func (p *Pool) ActiveBin() *Bin {
	b, ok := p.Bins[p.ActiveBinID]
	if !ok {
		panic("liquiditybook: active bin id has no backing bin")
	}
	return b
}

// GetBin returns the bin at id, if any.
func (p *Pool) GetBin(id uint64) (*Bin, bool) {
	b, ok := p.Bins[id]
	return b, ok
}

// SetActiveBinID moves the active-bin pointer to id if, and only if, a bin
// exists there. It reports whether the move happened.
func (p *Pool) SetActiveBinID(id uint64) bool {
	if _, ok := p.Bins[id]; !ok {
		return false
	}
	p.ActiveBinID = id
	return true
}

// GetOrCreateBinAbove returns the bin at id, creating it at price =
// priorPrice * stepFactor if it does not already exist. Price is computed
// by a single successive multiplication from the neighbouring bin's price
// rather than by Pow so that
// a bin created by a later deposit at the same offset lands on the exact
// same mantissa as one created earlier (spec.md §4.4). The second return
// value reports whether a new bin was created, so callers can gate
// creation-only telemetry.
func (p *Pool) GetOrCreateBinAbove(id uint64, priorPrice fp.FP, stepFactor fp.FP) (*Bin, bool) {
	if b, ok := p.Bins[id]; ok {
		return b, false
	}
	b := NewBin(priorPrice.Mul(stepFactor))
	p.Bins[id] = b
	return b, true
}

// GetOrCreateBinBelow returns the bin at id, creating it at price =
// priorPrice / stepFactor if it does not already exist. The second
// return value reports whether a new bin was created.
func (p *Pool) GetOrCreateBinBelow(id uint64, priorPrice fp.FP, stepFactor fp.FP) (*Bin, bool, error) {
	if b, ok := p.Bins[id]; ok {
		return b, false, nil
	}
	price, err := priorPrice.Div(stepFactor)
	if err != nil {
		return nil, false, err
	}
	b := NewBin(price)
	p.Bins[id] = b
	return b, true, nil
}

// CleanEmptyBins removes every non-active bin with zero balance and zero
// provided principal. It never runs inside a swap or withdrawal — callers
// invoke it explicitly to keep a long-lived pool's bin map bounded
// (spec.md §4.7).
func (p *Pool) CleanEmptyBins() int {
	removed := 0
	for id, b := range p.Bins {
		if id == p.ActiveBinID {
			continue
		}
		if b.IsEmpty() {
			delete(p.Bins, id)
			removed++
		}
	}
	return removed
}
