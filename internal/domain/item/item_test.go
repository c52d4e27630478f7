package item

import "testing"

func TestInventoryClampsAtMaxOwned(t *testing.T) {
	var inv Inventory
	inv.Add(ItemShell, MaxOwned-1)
	inv.Add(ItemShell, 10)
	if got := inv.Count(ItemShell); got != MaxOwned {
		t.Errorf("expected clamp at %d, got %d", MaxOwned, got)
	}
}

func TestInventoryRemove(t *testing.T) {
	var inv Inventory
	inv.Add(ItemBait, 2)
	if !inv.Remove(ItemBait, 2) {
		t.Fatalf("expected removal of owned items")
	}
	if inv.Remove(ItemBait, 1) {
		t.Errorf("expected removal to fail with none owned")
	}
	if inv.Has(ItemBait) {
		t.Errorf("expected no bait left")
	}
}

func TestUnknownItemIgnored(t *testing.T) {
	var inv Inventory
	inv.Add(ItemCount, 5)
	if inv.Count(ItemCount) != 0 {
		t.Errorf("expected unknown item to be ignored")
	}
	if _, ok := Get(ItemCount); ok {
		t.Errorf("expected no definition for ItemCount")
	}
}

func TestBuyableAndCatchableDisjoint(t *testing.T) {
	for _, b := range Buyable() {
		for _, c := range Catchable() {
			if b == c {
				t.Errorf("item %d is both buyable and catchable", b)
			}
		}
	}
}

func TestUnlockedFood(t *testing.T) {
	u := DefaultUnlockedFood
	if !u.Has(FoodBread) || u.Has(FoodCake) {
		t.Fatalf("unexpected default set %b", u)
	}
	u.Unlock(FoodCake)
	if got := u.List(); len(got) != 3 || got[2] != FoodCake {
		t.Errorf("expected bread, apple, cake; got %v", got)
	}
	if !u.Valid() {
		t.Errorf("expected valid set")
	}
	if UnlockedFood(1 << 31).Valid() {
		t.Errorf("expected unknown bits to be invalid")
	}
}
