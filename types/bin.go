package types

import (
	"container/list"

	"github.com/paw-chain/liquiditybook/fp"
)

// FeeEntry records one fee collection event inside a bin's fee log. Amount
// and TotalBinSizeAsL are mutated downward as withdrawals consume their
// pro-rata share; the entry is removed from its log once Amount reaches
// zero (spec.md §3).
type FeeEntry struct {
	Amount          uint64
	TimestampMs     uint64
	TotalBinSizeAsL uint64
}

// Bin is a single discrete price level: a fixed exchange rate plus the
// paired inventory currently held at that rate, the principal currently
// attributed to liquidity providers, and the fee events generated by
// traders crossing the bin.
//
// FeeLogLeft/FeeLogRight are ordered oldest-to-newest (insertion order);
// withdrawal walks them from the back (newest) toward the front (oldest)
// and stops at the depositor's own timestamp, so the ordering must never
// be disturbed — see DistributeFees.
type Bin struct {
	Price fp.FP

	BalanceLeft  uint64
	BalanceRight uint64

	ProvidedLeft  uint64
	ProvidedRight uint64

	FeeLogLeft  *list.List
	FeeLogRight *list.List
}

// NewBin returns an empty bin fixed at price.
func NewBin(price fp.FP) *Bin {
	return &Bin{
		Price:       price,
		FeeLogLeft:  list.New(),
		FeeLogRight: list.New(),
	}
}

// AsL converts a (left, right) pair to its left-equivalent size at this
// bin's price: L + floor(R/price). This compresses the R-valued fraction to
// zero once price > 1; spec.md §9 preserves the formula verbatim for
// behavioral compatibility with the system it was distilled from and flags
// the regime as a known open question rather than "fixing" it.
func (b *Bin) AsL(left, right uint64) (uint64, error) {
	rAsL, err := b.Price.DivU64(right)
	if err != nil {
		return 0, err
	}
	sum := left + rAsL
	if sum < left {
		return 0, fp.ErrOverflow
	}
	return sum, nil
}

// Deposit records a liquidity provider's contribution, increasing both the
// live balance and the provided-principal ledger. It never touches fee
// logs — fees only accrue on swaps.
func (b *Bin) Deposit(left, right uint64) {
	b.BalanceLeft += left
	b.BalanceRight += right
	b.ProvidedLeft += left
	b.ProvidedRight += right
}

// RecordFeeLeft appends a fee entry to the left-denominated log (fees paid
// by L->R traders), computing TotalBinSizeAsL from the bin's current
// provided principal.
func (b *Bin) RecordFeeLeft(amount, timestampMs uint64) error {
	size, err := b.AsL(b.ProvidedLeft, b.ProvidedRight)
	if err != nil {
		return err
	}
	b.FeeLogLeft.PushBack(&FeeEntry{Amount: amount, TimestampMs: timestampMs, TotalBinSizeAsL: size})
	return nil
}

// RecordFeeRight appends a fee entry to the right-denominated log (fees
// paid by R->L traders).
func (b *Bin) RecordFeeRight(amount, timestampMs uint64) error {
	size, err := b.AsL(b.ProvidedLeft, b.ProvidedRight)
	if err != nil {
		return err
	}
	b.FeeLogRight.PushBack(&FeeEntry{Amount: amount, TimestampMs: timestampMs, TotalBinSizeAsL: size})
	return nil
}

// DistributeFees walks log from newest (back) to oldest (front), accruing
// a pro-rata earned share of every entry generated at or after
// depositTimeMs, mutating each surviving entry's Amount and
// TotalBinSizeAsL downward and removing any that reach zero. It stops at —
// and never touches — the first entry older than depositTimeMs, which is
// what prevents a late-arriving LP from retroactively claiming fees
// (spec.md §4.6).
func DistributeFees(log *list.List, shareAsL uint64, depositTimeMs uint64) (uint64, error) {
	var earnedTotal uint64
	for e := log.Back(); e != nil; {
		entry := e.Value.(*FeeEntry)
		if entry.TimestampMs < depositTimeMs {
			break
		}
		prev := e.Prev()

		earned, err := fp.MulDivFloor(entry.Amount, shareAsL, entry.TotalBinSizeAsL)
		if err != nil {
			return 0, err
		}
		earnedTotal += earned
		entry.Amount -= earned
		entry.TotalBinSizeAsL -= shareAsL
		if entry.Amount == 0 {
			log.Remove(e)
		}

		e = prev
	}
	return earnedTotal, nil
}

// payPrincipalLeg pays amount out of primary, falling back to converting
// any shortfall into secondary at price. If even secondary falls short, a
// shortfall of at most one unit is tolerated (taking all that remains);
// anything larger leaves secondary completely untouched, per spec.md §4.6.
func payPrincipalLeg(primary, secondary *uint64, amount uint64, convert func(remainder uint64) (uint64, error)) (fromPrimary, fromSecondary uint64, err error) {
	if *primary >= amount {
		*primary -= amount
		return amount, 0, nil
	}
	fromPrimary = *primary
	*primary = 0
	remainder := amount - fromPrimary

	needSecondary, err := convert(remainder)
	if err != nil {
		return 0, 0, err
	}
	if *secondary >= needSecondary {
		*secondary -= needSecondary
		return fromPrimary, needSecondary, nil
	}

	shortfall := needSecondary - *secondary
	if shortfall <= 1 {
		fromSecondary = *secondary
		*secondary = 0
		return fromPrimary, fromSecondary, nil
	}
	// Larger shortfalls leave the bin's remaining secondary balance
	// untouched rather than partially draining it.
	return fromPrimary, 0, nil
}

// PayLeftPrincipal pays amount of L out of the bin, crossing into R at the
// bin's price if L alone is insufficient.
func (b *Bin) PayLeftPrincipal(amount uint64) (left, right uint64, err error) {
	return payPrincipalLeg(&b.BalanceLeft, &b.BalanceRight, amount, func(remainder uint64) (uint64, error) {
		return b.Price.MulU64(remainder)
	})
}

// PayRightPrincipal pays amount of R out of the bin, crossing into L at the
// bin's price if R alone is insufficient.
func (b *Bin) PayRightPrincipal(amount uint64) (right, left uint64, err error) {
	return payPrincipalLeg(&b.BalanceRight, &b.BalanceLeft, amount, func(remainder uint64) (uint64, error) {
		return b.Price.DivU64(remainder)
	})
}

// IsEmpty reports whether the bin holds no balance and no provided
// principal, the condition the empty-bin sweep removes bins on.
func (b *Bin) IsEmpty() bool {
	return b.BalanceLeft == 0 && b.BalanceRight == 0 && b.ProvidedLeft == 0 && b.ProvidedRight == 0
}
