// Package asset defines the opaque asset-handle capability the liquidity
// book core consumes from its host runtime. Custody, ownership and transfer
// primitives are explicitly out of scope for the core (spec.md §1); this
// package only states the contract the core needs and ships one reference
// implementation, Coin, so the package is independently testable.
package asset

import (
	"cosmossdk.io/errors"
)

const codespace = "asset"

var (
	// ErrInsufficientBalance is returned by Split when asked for more than
	// an asset currently holds.
	ErrInsufficientBalance = errors.Register(codespace, 1, "insufficient asset balance")
	// ErrTypeMismatch is returned by Join when the two assets do not carry
	// the same opaque type tag.
	ErrTypeMismatch = errors.Register(codespace, 2, "asset type mismatch")
	// ErrNotZero is returned by DestroyZero when the asset still carries
	// value.
	ErrNotZero = errors.Register(codespace, 3, "asset is not zero")
)

// Asset is the capability a host runtime exposes for a single fungible
// value: an amount plus an opaque type tag, supporting split/join/value
// operations. The core never inspects the tag itself — it only relies on
// Join rejecting a mismatched pair.
type Asset interface {
	// Value returns the amount currently held.
	Value() uint64
	// Split removes amount from the receiver and returns it as a new Asset
	// of the same type. It fails with ErrInsufficientBalance if amount
	// exceeds Value().
	Split(amount uint64) (Asset, error)
	// Join merges other into the receiver, zeroing other. It fails with
	// ErrTypeMismatch if the two assets do not share a type tag.
	Join(other Asset) error
	// Zero returns a new, empty Asset of the same type.
	Zero() Asset
	// DestroyZero consumes the receiver. It fails with ErrNotZero unless
	// Value() is 0.
	DestroyZero() error
	// WithdrawAll splits off the entire value, leaving the receiver empty.
	WithdrawAll() (Asset, error)
}

// Coin is the reference Asset implementation: an in-memory value tagged by
// a denom string. It is not a ledger, a wallet, or a custody system — it
// exists only to exercise the Asset contract in tests and examples.
type Coin struct {
	denom  string
	amount uint64
}

// NewCoin returns a Coin of the given denom and amount.
func NewCoin(denom string, amount uint64) *Coin {
	return &Coin{denom: denom, amount: amount}
}

// Denom returns the coin's type tag.
func (c *Coin) Denom() string { return c.denom }

// Value implements Asset.
func (c *Coin) Value() uint64 { return c.amount }

// Split implements Asset.
func (c *Coin) Split(amount uint64) (Asset, error) {
	if amount > c.amount {
		return nil, ErrInsufficientBalance
	}
	c.amount -= amount
	return &Coin{denom: c.denom, amount: amount}, nil
}

// Join implements Asset.
func (c *Coin) Join(other Asset) error {
	o, ok := other.(*Coin)
	if !ok || o.denom != c.denom {
		return ErrTypeMismatch
	}
	c.amount += o.amount
	o.amount = 0
	return nil
}

// Zero implements Asset.
func (c *Coin) Zero() Asset { return &Coin{denom: c.denom} }

// DestroyZero implements Asset.
func (c *Coin) DestroyZero() error {
	if c.amount != 0 {
		return ErrNotZero
	}
	return nil
}

// WithdrawAll implements Asset.
func (c *Coin) WithdrawAll() (Asset, error) {
	return c.Split(c.amount)
}
