// Package item defines the collectible items, foods and the inventory.
// This package is PURE and must NOT import any infrastructure packages.
package item

// ID identifies an item kind.
type ID uint8

const (
	ItemBall ID = iota
	ItemRug
	ItemTelescope
	ItemBait
	ItemShell
	ItemPearl
	ItemOldBoot
	ItemGoldenFish

	ItemCount
)

// MaxOwned caps how many of one item can be held.
const MaxOwned = 1_000_000

// Definition provides metadata about an item kind.
type Definition struct {
	Name      string
	Cost      int32
	Buyable   bool
	Catchable bool
}

// Registry contains all known items, indexed by ID.
var Registry = [ItemCount]Definition{
	ItemBall:       {Name: "Ball", Cost: 15, Buyable: true},
	ItemRug:        {Name: "Rug", Cost: 40, Buyable: true},
	ItemTelescope:  {Name: "Telescope", Cost: 120, Buyable: true},
	ItemBait:       {Name: "Bait", Cost: 5, Buyable: true},
	ItemShell:      {Name: "Shell", Cost: 8, Catchable: true},
	ItemPearl:      {Name: "Pearl", Cost: 80, Catchable: true},
	ItemOldBoot:    {Name: "Old Boot", Cost: 0, Catchable: true},
	ItemGoldenFish: {Name: "Golden Fish", Cost: 200, Catchable: true},
}

// Get returns the definition for id.
func Get(id ID) (Definition, bool) {
	if id >= ItemCount {
		return Definition{}, false
	}
	return Registry[id], true
}

// Buyable lists the items the shop may stock.
func Buyable() []ID {
	var out []ID
	for id, def := range Registry {
		if def.Buyable {
			out = append(out, ID(id))
		}
	}
	return out
}

// Catchable lists the items fishing can yield.
func Catchable() []ID {
	var out []ID
	for id, def := range Registry {
		if def.Catchable {
			out = append(out, ID(id))
		}
	}
	return out
}

// Inventory is a per-item owned count.
type Inventory struct {
	Owned [ItemCount]uint32 `json:"owned"`
}

// Add raises the count for id, clamped at MaxOwned.
func (inv *Inventory) Add(id ID, n uint32) {
	if id >= ItemCount {
		return
	}
	total := uint64(inv.Owned[id]) + uint64(n)
	if total > MaxOwned {
		total = MaxOwned
	}
	inv.Owned[id] = uint32(total)
}

// Remove takes n of id if that many are owned.
func (inv *Inventory) Remove(id ID, n uint32) bool {
	if id >= ItemCount || inv.Owned[id] < n {
		return false
	}
	inv.Owned[id] -= n
	return true
}

func (inv *Inventory) Count(id ID) uint32 {
	if id >= ItemCount {
		return 0
	}
	return inv.Owned[id]
}

func (inv *Inventory) Has(id ID) bool { return inv.Count(id) > 0 }
