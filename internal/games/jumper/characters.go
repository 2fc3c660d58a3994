package jumper

import "github.com/vovakirdan/tui-jumper/internal/core"

// Ability is the label of a character's special power.
// Abilities are shown in the shop only; the simulation does not read them yet.
type Ability string

const (
	AbilityNone       Ability = "none"
	AbilityDoubleJump Ability = "double jump"
	AbilityShield     Ability = "shield"
	AbilityHighJump   Ability = "high jump"
)

// Character is an immutable catalog entry.
type Character struct {
	Name    string
	Color   core.Color
	Glyph   rune
	Price   int // Unlock price in coins; 0 means free
	Ability Ability
}

var defaultCatalog = []Character{
	{Name: "Hopper", Color: core.ColorBrightGreen, Glyph: '@', Price: 0, Ability: AbilityNone},
	{Name: "Ninja", Color: core.ColorGray, Glyph: '&', Price: 100, Ability: AbilityDoubleJump},
	{Name: "Knight", Color: core.ColorBrightBlue, Glyph: '#', Price: 250, Ability: AbilityShield},
	{Name: "Rocket", Color: core.ColorOrange, Glyph: 'A', Price: 500, Ability: AbilityHighJump},
}

// DefaultCatalog returns a copy of the built-in character list.
// Entry 0 is free and always owned.
func DefaultCatalog() []Character {
	out := make([]Character, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}
