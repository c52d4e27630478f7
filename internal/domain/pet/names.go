package pet

import (
	"github.com/MRamiBalles/sdop/internal/domain/rng"
)

// MaxNameLen is the longest name the save layout can hold.
const MaxNameLen = 12

var names = []string{
	"Bobo", "Pip", "Mochi", "Tofu", "Nori", "Biscuit", "Pebble", "Dot",
	"Kiwi", "Sprocket", "Miso", "Button", "Juniper", "Waffle", "Ziggy", "Loaf",
}

// RandomName draws a name from the built-in list.
func RandomName(src *rng.Rng) string {
	return rng.Choice(src, names)
}

// UPID uniquely identifies one pet instance.
type UPID uint64

// GenUPID draws a non-zero id.
func GenUPID(src *rng.Rng) UPID {
	for {
		if id := UPID(src.U64()); id != 0 {
			return id
		}
	}
}
