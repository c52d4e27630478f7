// Package economy holds the money balance and the daily shop rotation.
// This package is PURE and must NOT import any infrastructure packages.
package economy

import (
	"github.com/MRamiBalles/sdop/internal/domain/item"
	"github.com/MRamiBalles/sdop/internal/domain/rng"
	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

// Money is a non-negative balance.
type Money int32

const MaxMoney Money = 99_999_999

// Add credits amount, saturating at MaxMoney.
func (m *Money) Add(amount Money) {
	if amount <= 0 {
		return
	}
	if *m > MaxMoney-amount {
		*m = MaxMoney
		return
	}
	*m += amount
}

// Spend debits amount when the balance covers it.
func (m *Money) Spend(amount Money) bool {
	if amount < 0 || *m < amount {
		return false
	}
	*m -= amount
	return true
}

// DefaultShopItems is how many items the shop stocks per day.
const DefaultShopItems = 2

// Shop is the persisted shop state.
type Shop struct {
	ItemCount uint8 `json:"item_count"`
}

func NewShop() Shop {
	return Shop{ItemCount: DefaultShopItems}
}

// ItemSet returns the day's stock. The same date always yields the same items.
func (s Shop) ItemSet(ts timestamp.Timestamp) []item.ID {
	pool := item.Buyable()
	src := rng.New(ts.DateSeed())
	for i := len(pool) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	n := int(s.ItemCount)
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

// Price returns what id costs in the shop.
func Price(id item.ID) Money {
	def, _ := item.Get(id)
	return Money(def.Cost)
}
