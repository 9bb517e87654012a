package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviseListedPrice_Deterministic(t *testing.T) {
	first := ReviseListedPrice(10.0, 10, 90)
	second := ReviseListedPrice(10.0, 10, 90)

	assert.Equal(t, first, second)
}

func TestReviseListedPrice_MonotonicInConsumedFraction(t *testing.T) {
	// 同价同量，剩余越少（成交占比越高），新挂牌价越高。
	prev := ReviseListedPrice(100.0, 10, 1000)
	for _, remaining := range []int{500, 100, 50, 10, 0} {
		cur := ReviseListedPrice(100.0, 10, remaining)
		assert.GreaterOrEqual(t, cur, prev, "remaining=%d", remaining)
		prev = cur
	}
}

func TestReviseListedPrice_Bounds(t *testing.T) {
	// 清空全部库存：上限系数 1.1。
	assert.Equal(t, 11.0, ReviseListedPrice(10.0, 100, 0))

	// 成交占比趋近 0：结果不低于 0.9 倍。
	low := ReviseListedPrice(10.0, 1, 1_000_000)
	assert.GreaterOrEqual(t, low, 9.0)
	assert.Less(t, low, 10.0)
}

func TestReviseListedPrice_RoundsToCents(t *testing.T) {
	// f = 10/100 = 0.1, factor = 0.92
	assert.Equal(t, 9.2, ReviseListedPrice(10.0, 10, 90))

	// f = 1/3，无限小数也要落到分位。
	got := ReviseListedPrice(9.99, 1, 2)
	cents := got * 100
	assert.InDelta(t, cents, float64(int64(cents+0.5)), 1e-9)
}
