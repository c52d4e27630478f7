package item

// FoodID identifies a food.
type FoodID uint8

const (
	FoodBread FoodID = iota
	FoodApple
	FoodFish
	FoodCake

	FoodCount
)

// Food describes how much a meal fills and fattens.
type Food struct {
	Name   string
	Fill   float32
	Weight float32 // grams gained per full serving that overflows the stomach
}

var Foods = [FoodCount]Food{
	FoodBread: {Name: "Bread", Fill: 4, Weight: 5},
	FoodApple: {Name: "Apple", Fill: 2, Weight: 1},
	FoodFish:  {Name: "Fish", Fill: 6, Weight: 4},
	FoodCake:  {Name: "Cake", Fill: 5, Weight: 20},
}

func GetFood(id FoodID) Food {
	if id >= FoodCount {
		return Foods[FoodBread]
	}
	return Foods[id]
}

// UnlockedFood is a bitset over FoodID.
type UnlockedFood uint32

// DefaultUnlockedFood is what a new game starts with.
const DefaultUnlockedFood = UnlockedFood(1<<FoodBread | 1<<FoodApple)

func (u UnlockedFood) Has(id FoodID) bool {
	return id < FoodCount && u&(1<<id) != 0
}

func (u *UnlockedFood) Unlock(id FoodID) {
	if id < FoodCount {
		*u |= 1 << id
	}
}

// List returns the unlocked foods in id order.
func (u UnlockedFood) List() []FoodID {
	var out []FoodID
	for id := FoodID(0); id < FoodCount; id++ {
		if u.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Valid reports whether only known foods are set.
func (u UnlockedFood) Valid() bool {
	return u>>FoodCount == 0
}
