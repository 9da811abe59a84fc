package coupon

import (
	"sort"
	"strings"

	"shopfront/internal/model"
)

// mapSet implements Set using a map keyed by upper-cased code.
type mapSet struct {
	coupons map[string]model.Coupon
}

// NewMapSet creates a new map-based coupon set.
func NewMapSet(capacity int) Set {
	return &mapSet{
		coupons: make(map[string]model.Coupon, capacity),
	}
}

func normaliseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Get returns the coupon with the given code.
func (s *mapSet) Get(code string) (model.Coupon, bool) {
	c, ok := s.coupons[normaliseCode(code)]
	return c, ok
}

// All returns every coupon in the set ordered by code.
func (s *mapSet) All() []model.Coupon {
	out := make([]model.Coupon, 0, len(s.coupons))
	for _, c := range s.coupons {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Size returns the number of coupons in the set.
func (s *mapSet) Size() int {
	return len(s.coupons)
}

// Add adds a coupon, replacing any previous definition with the same code.
func (s *mapSet) Add(c model.Coupon) {
	c.Code = normaliseCode(c.Code)
	s.coupons[c.Code] = c
}

// Merge folds the given sets into one. Later sets override earlier ones.
func Merge(sets ...Set) Set {
	total := 0
	for _, s := range sets {
		if s != nil {
			total += s.Size()
		}
	}
	merged := NewMapSet(total).(*mapSet)
	for _, s := range sets {
		if s == nil {
			continue
		}
		for _, c := range s.All() {
			merged.Add(c)
		}
	}
	return merged
}
