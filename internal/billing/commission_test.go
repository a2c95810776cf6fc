package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	assert.True(t, ParseAmount("500").Equal(dec("500")))
	assert.True(t, ParseAmount(" 42.50 ").Equal(dec("42.50")))
	assert.True(t, ParseAmount("").IsZero())
	assert.True(t, ParseAmount("abc").IsZero())
	assert.True(t, ParseAmount("-100").IsZero())
}

func TestResolveRate(t *testing.T) {
	assert.True(t, ResolveRate("25", "30").Equal(dec("25")))
	assert.True(t, ResolveRate("", "20").Equal(dec("20")))
	assert.True(t, ResolveRate("garbage", "20").Equal(dec("20")))
	assert.True(t, ResolveRate("", "").Equal(dec("30")), "absent rate falls back to the 30 percent default")
	assert.True(t, ResolveRate("-5", "").Equal(dec("30")))
}

func TestComputeCommission(t *testing.T) {
	got := ComputeCommission(dec("1000"), ResolveRate("", ""))
	assert.True(t, got.Equal(dec("300")))

	got = ComputeCommission(dec("1000"), dec("25"))
	assert.True(t, got.Equal(dec("250")))

	assert.True(t, ComputeCommission(dec("0"), dec("30")).IsZero())
	assert.True(t, ComputeCommission(dec("-100"), dec("30")).IsZero())
}

func TestComputeCommission_Pure(t *testing.T) {
	first := ComputeCommission(dec("1234.56"), dec("30"))
	second := ComputeCommission(dec("1234.56"), dec("30"))
	assert.True(t, first.Equal(second))
}
