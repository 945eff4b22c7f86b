package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paw-chain/liquiditybook/clock"
)

func TestMock_AdvancesOnlyWhenTold(t *testing.T) {
	m := clock.NewMock(1_000)
	require.Equal(t, uint64(1_000), m.NowMs())
	m.Advance(5 * time.Second)
	require.Equal(t, uint64(6_000), m.NowMs())
}

func TestSystem_ReturnsMillisecondTimestamp(t *testing.T) {
	s := clock.NewSystem()
	before := uint64(time.Now().UnixMilli())
	got := s.NowMs()
	after := uint64(time.Now().UnixMilli())
	require.GreaterOrEqual(t, got, before)
	require.LessOrEqual(t, got, after)
}
