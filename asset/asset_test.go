package asset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paw-chain/liquiditybook/asset"
)

func TestCoin_SplitJoinRoundTrip(t *testing.T) {
	c := asset.NewCoin("l", 100)
	chunk, err := c.Split(40)
	require.NoError(t, err)
	require.Equal(t, uint64(60), c.Value())
	require.Equal(t, uint64(40), chunk.Value())

	require.NoError(t, c.Join(chunk))
	require.Equal(t, uint64(100), c.Value())
	require.Equal(t, uint64(0), chunk.Value())
}

func TestCoin_Split_InsufficientBalance(t *testing.T) {
	c := asset.NewCoin("l", 10)
	_, err := c.Split(11)
	require.ErrorIs(t, err, asset.ErrInsufficientBalance)
}

func TestCoin_Join_TypeMismatch(t *testing.T) {
	l := asset.NewCoin("l", 10)
	r := asset.NewCoin("r", 10)
	require.ErrorIs(t, l.Join(r), asset.ErrTypeMismatch)
}

func TestCoin_DestroyZero(t *testing.T) {
	c := asset.NewCoin("l", 0)
	require.NoError(t, c.DestroyZero())

	nonzero := asset.NewCoin("l", 1)
	require.ErrorIs(t, nonzero.DestroyZero(), asset.ErrNotZero)
}

func TestCoin_WithdrawAll(t *testing.T) {
	c := asset.NewCoin("l", 50)
	all, err := c.WithdrawAll()
	require.NoError(t, err)
	require.Equal(t, uint64(0), c.Value())
	require.Equal(t, uint64(50), all.Value())
}

func TestCoin_Zero(t *testing.T) {
	c := asset.NewCoin("l", 50)
	z := c.Zero()
	require.Equal(t, uint64(0), z.Value())
	require.NoError(t, z.Join(c))
	require.Equal(t, uint64(50), z.Value())
}
