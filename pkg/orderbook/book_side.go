package orderbook

import "github.com/tidwall/btree"

// bookSide holds one side's price levels in a B-tree keyed by tick price.
// Best-level peek, level insert and level removal are all O(log n) in the
// number of distinct prices. Bids set descending=true so that the best
// level is the maximum key; asks take the minimum.
type bookSide struct {
	levels     *btree.Map[int64, *priceLevel]
	descending bool
}

func newBookSide(descending bool) *bookSide {
	return &bookSide{
		levels:     btree.NewMap[int64, *priceLevel](32),
		descending: descending,
	}
}

func (s *bookSide) len() int {
	return s.levels.Len()
}

// best returns the level first in line to trade, or nil if the side is empty.
func (s *bookSide) best() *priceLevel {
	var lvl *priceLevel
	var ok bool
	if s.descending {
		_, lvl, ok = s.levels.Max()
	} else {
		_, lvl, ok = s.levels.Min()
	}
	if !ok {
		return nil
	}
	return lvl
}

func (s *bookSide) getOrCreate(price int64) *priceLevel {
	if lvl, ok := s.levels.Get(price); ok {
		return lvl
	}
	lvl := newPriceLevel(price)
	s.levels.Set(price, lvl)
	return lvl
}

func (s *bookSide) remove(price int64) {
	s.levels.Delete(price)
}

// eachBestToWorst visits levels in matching priority order.
func (s *bookSide) eachBestToWorst(fn func(*priceLevel) bool) {
	iter := func(_ int64, lvl *priceLevel) bool { return fn(lvl) }
	if s.descending {
		s.levels.Reverse(iter)
	} else {
		s.levels.Scan(iter)
	}
}
