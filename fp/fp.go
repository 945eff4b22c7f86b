// Package fp implements the deterministic, unsigned fixed-point number used
// throughout the liquidity book for bin prices and for converting between
// the two pool assets. A value is a 256-bit mantissa scaled by 10^18; it can
// never be negative, and every operation rounds toward zero.
package fp

import (
	"fmt"

	"cosmossdk.io/errors"
	"github.com/holiman/uint256"
)

const codespace = "fp"

var (
	// ErrDivideByZero is returned whenever a denominator or divisor of zero
	// reaches an arithmetic operation.
	ErrDivideByZero = errors.Register(codespace, 1, "divide by zero")
	// ErrOverflow is returned when a truncating cast to a 64-bit integer, or
	// a mantissa product, would not fit in its target width.
	ErrOverflow = errors.Register(codespace, 2, "arithmetic overflow")
)

// Scale is 10^18, the number of decimal places carried by every mantissa.
var Scale = uint256.NewInt(1_000_000_000_000_000_000)

// FP is a non-negative rational k/10^18 for 0 <= k < 2^256, represented by
// its mantissa k. The zero value is the FP for 0.
type FP struct {
	m uint256.Int
}

// FromMantissa builds an FP directly from a raw mantissa. The caller owns m;
// FromMantissa copies it.
func FromMantissa(m *uint256.Int) FP {
	var f FP
	f.m.Set(m)
	return f
}

// Zero returns the FP for 0.
func Zero() FP { return FP{} }

// One returns the FP for 1.
func One() FP {
	var f FP
	f.m.Set(Scale)
	return f
}

// FromFraction returns floor(n*Scale/d). It fails with ErrDivideByZero if d
// is zero.
func FromFraction(n, d *uint256.Int) (FP, error) {
	if d.IsZero() {
		return FP{}, ErrDivideByZero
	}
	q, overflow := new(uint256.Int).MulDivOverflow(n, Scale, d)
	if overflow {
		return FP{}, ErrOverflow
	}
	return FP{m: *q}, nil
}

// FromUint64Fraction is FromFraction for plain uint64 operands, the common
// case for bin-step and fee ratios (e.g. (10000+bin_step_bps, 10000)).
func FromUint64Fraction(n, d uint64) (FP, error) {
	return FromFraction(uint256.NewInt(n), uint256.NewInt(d))
}

// Mantissa returns a copy of the underlying 256-bit mantissa.
func (a FP) Mantissa() *uint256.Int {
	return new(uint256.Int).Set(&a.m)
}

// Add returns a+b.
func (a FP) Add(b FP) FP {
	var r FP
	r.m.Add(&a.m, &b.m)
	return r
}

// AbsDiff returns |a-b|. FP has no sign, so subtraction is always the
// unsigned absolute difference per spec.
func (a FP) AbsDiff(b FP) FP {
	var r FP
	if a.m.Cmp(&b.m) >= 0 {
		r.m.Sub(&a.m, &b.m)
	} else {
		r.m.Sub(&b.m, &a.m)
	}
	return r
}

// Mul returns floor(a*b), computed over a 512-bit intermediate so that
// mantissas near 10^38 never wrap silently.
func (a FP) Mul(b FP) FP {
	var r FP
	q, _ := new(uint256.Int).MulDivOverflow(&a.m, &b.m, Scale)
	r.m = *q
	return r
}

// Div returns floor(a/b). It fails with ErrDivideByZero if b is zero, and
// with ErrOverflow if the quotient's mantissa would not fit in 256 bits.
func (a FP) Div(b FP) (FP, error) {
	if b.m.IsZero() {
		return FP{}, ErrDivideByZero
	}
	q, overflow := new(uint256.Int).MulDivOverflow(&a.m, Scale, &b.m)
	if overflow {
		return FP{}, ErrOverflow
	}
	return FP{m: *q}, nil
}

// Pow returns a raised to the non-negative integer power p by repeated,
// left-to-right multiplication. Pow(a, 0) is One().
func (a FP) Pow(p uint64) FP {
	result := One()
	for i := uint64(0); i < p; i++ {
		result = result.Mul(a)
	}
	return result
}

// MulU64 returns floor(a*u), truncated to a uint64. It fails with
// ErrOverflow if the result does not fit in 64 bits.
func (a FP) MulU64(u uint64) (uint64, error) {
	q, overflow := new(uint256.Int).MulDivOverflow(&a.m, uint256.NewInt(u), Scale)
	if overflow || !q.IsUint64() {
		return 0, ErrOverflow
	}
	return q.Uint64(), nil
}

// DivU64 returns floor(u/a) as a uint64 — "how many units of the priced
// asset correspond to u units of the other asset at price a". It fails with
// ErrDivideByZero if a is zero.
func (a FP) DivU64(u uint64) (uint64, error) {
	if a.m.IsZero() {
		return 0, ErrDivideByZero
	}
	q, overflow := new(uint256.Int).MulDivOverflow(uint256.NewInt(u), Scale, &a.m)
	if overflow || !q.IsUint64() {
		return 0, ErrOverflow
	}
	return q.Uint64(), nil
}

// DivByU64 returns floor(a/u) as an FP. It fails with ErrDivideByZero if u
// is zero.
func (a FP) DivByU64(u uint64) (FP, error) {
	if u == 0 {
		return FP{}, ErrDivideByZero
	}
	var r FP
	r.m.Div(&a.m, uint256.NewInt(u))
	return r, nil
}

// TruncateToU64 returns floor(a), the integer part of a. It fails with
// ErrOverflow if that integer part does not fit in 64 bits.
func (a FP) TruncateToU64() (uint64, error) {
	q := new(uint256.Int).Div(&a.m, Scale)
	if !q.IsUint64() {
		return 0, ErrOverflow
	}
	return q.Uint64(), nil
}

// Eq reports whether a and b have identical mantissas.
func (a FP) Eq(b FP) bool { return a.m.Eq(&b.m) }

// Cmp returns -1, 0 or 1 as a is less than, equal to, or greater than b.
func (a FP) Cmp(b FP) int { return a.m.Cmp(&b.m) }

// LT reports whether a < b.
func (a FP) LT(b FP) bool { return a.m.Lt(&b.m) }

// GT reports whether a > b.
func (a FP) GT(b FP) bool { return a.m.Gt(&b.m) }

// IsZero reports whether a is the FP for 0.
func (a FP) IsZero() bool { return a.m.IsZero() }

// Min returns the lesser of a and b by mantissa.
func Min(a, b FP) FP {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the greater of a and b by mantissa.
func Max(a, b FP) FP {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// String renders the mantissa alongside its scale for diagnostics; it is
// not used for serialization.
func (a FP) String() string {
	return fmt.Sprintf("%s/1e18", a.m.Dec())
}

// MulDivFloor returns floor(a*b/c) for plain (unscaled) uint64 operands. It
// is the same 512-bit-safe primitive Mul/Div use internally, exposed for
// callers outside this package that need to multiply two amounts together
// before dividing — the fee ledger's pro-rata share computation being the
// motivating case, since two uint64 amounts can multiply well past 2^64.
func MulDivFloor(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrDivideByZero
	}
	q, overflow := new(uint256.Int).MulDivOverflow(uint256.NewInt(a), uint256.NewInt(b), uint256.NewInt(c))
	if overflow || !q.IsUint64() {
		return 0, ErrOverflow
	}
	return q.Uint64(), nil
}
