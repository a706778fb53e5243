package rebalance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatioOf(t *testing.T) {
	assert.Equal(t, "25.00%", RatioOf(M(2500, KRW), M(10000, KRW)).String())
	// Division by a zero whole yields zero percent, not a panic.
	assert.True(t, RatioOf(M(2500, KRW), M(0, KRW)).IsZero())
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, "2500", P(25).Of(M(10000, KRW)).Text())
	assert.Equal(t, "33.4", P(33.4).Of(M(100, USD)).Text())
}

func TestPercentWeight(t *testing.T) {
	// 60 against a total of 150 is the fraction 0.4.
	assert.Equal(t, "0.4", P(60).Weight(P(150)).String())
	assert.True(t, P(60).Weight(P(0)).IsZero())
}
