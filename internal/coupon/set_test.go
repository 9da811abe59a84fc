package coupon

import (
	"testing"

	"shopfront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSet(t *testing.T) {
	set := NewMapSet(4).(*mapSet)

	assert.Equal(t, 0, set.Size())

	set.Add(model.Coupon{Code: " summer10 ", DiscountValue: d("10")})
	set.Add(model.Coupon{Code: "WINTER", DiscountValue: d("5")})

	assert.Equal(t, 2, set.Size())

	c, ok := set.Get("SUMMER10")
	require.True(t, ok)
	assert.Equal(t, "SUMMER10", c.Code)

	_, ok = set.Get("summer10")
	assert.True(t, ok, "lookup is case-insensitive")

	_, ok = set.Get("MISSING")
	assert.False(t, ok)

	all := set.All()
	require.Len(t, all, 2)
	assert.Equal(t, "SUMMER10", all[0].Code)
	assert.Equal(t, "WINTER", all[1].Code)
}

func TestMerge_LaterSetsWin(t *testing.T) {
	first := NewMapSet(2).(*mapSet)
	first.Add(model.Coupon{Code: "A", DiscountValue: d("1")})
	first.Add(model.Coupon{Code: "B", DiscountValue: d("2")})

	second := NewMapSet(2).(*mapSet)
	second.Add(model.Coupon{Code: "B", DiscountValue: d("20")})
	second.Add(model.Coupon{Code: "C", DiscountValue: d("3")})

	merged := Merge(first, nil, second)

	assert.Equal(t, 3, merged.Size())
	b, ok := merged.Get("B")
	require.True(t, ok)
	assert.True(t, d("20").Equal(b.DiscountValue))
}
