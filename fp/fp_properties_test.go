package fp

import (
	"testing"

	"github.com/holiman/uint256"
	"pgregory.net/rapid"
)

func drawFP(t *rapid.T) FP {
	n := rapid.Uint64Range(0, 1_000_000).Draw(t, "n")
	d := rapid.Uint64Range(1, 1_000).Draw(t, "d")
	f, err := FromUint64Fraction(n, d)
	if err != nil {
		t.Fatalf("FromUint64Fraction(%d,%d): %v", n, d, err)
	}
	return f
}

// TestProperty_FromFractionTruncatesToIntegerDivision is spec.md §8's law
// "for all n,d>0: from_fraction(n,d).truncate_to_u64() == n/d".
func TestProperty_FromFractionTruncatesToIntegerDivision(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Uint64Range(1, 1_000_000_000_000).Draw(t, "n")
		d := rapid.Uint64Range(1, 1_000_000_000_000).Draw(t, "d")

		f, err := FromUint64Fraction(n, d)
		if err != nil {
			t.Fatalf("from_fraction(%d,%d): %v", n, d, err)
		}
		got, err := f.TruncateToU64()
		if err != nil {
			t.Fatalf("truncate_to_u64: %v", err)
		}
		if want := n / d; got != want {
			t.Fatalf("from_fraction(%d,%d).truncate_to_u64() = %d, want %d", n, d, got, want)
		}
	})
}

// TestProperty_MulCommutes is spec.md §8's law "a.mul(b).eq(b.mul(a))".
func TestProperty_MulCommutes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, b := drawFP(t), drawFP(t)
		if !a.Mul(b).Eq(b.Mul(a)) {
			t.Fatalf("mul not commutative: a=%s b=%s a.mul(b)=%s b.mul(a)=%s", a, b, a.Mul(b), b.Mul(a))
		}
	})
}

// TestProperty_DivThenMulWithinOneULP is spec.md §8's law "a.div(b).mul(b)
// differs from a by at most one ULP" for b != 0.
func TestProperty_DivThenMulWithinOneULP(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, b := drawFP(t), drawFP(t)
		if b.IsZero() {
			return
		}
		q, err := a.Div(b)
		if err != nil {
			t.Fatalf("div: %v", err)
		}
		back := q.Mul(b)
		if a.AbsDiff(back).Mantissa().Cmp(uint256.NewInt(1)) > 0 {
			t.Fatalf("a=%s b=%s round-trip=%s exceeds one ULP", a, b, back)
		}
	})
}

// TestProperty_PowSuccessor is spec.md §8's law "a.pow(p+1) == a.pow(p).mul(a)".
func TestProperty_PowSuccessor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawFP(t)
		p := rapid.Uint64Range(0, 6).Draw(t, "p")
		if !a.Pow(p+1).Eq(a.Pow(p).Mul(a)) {
			t.Fatalf("pow successor law failed for a=%s p=%d", a, p)
		}
	})
}
