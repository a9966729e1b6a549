package formats

import "strings"

// BehaviorByte is a unit's behavior flag byte. The decoder exposes it
// raw; bit-level interpretation belongs to the editor consuming it.
type BehaviorByte uint8

// Behavior flag bits, low to high.
const (
	BehaviorActive BehaviorByte = 1 << iota
	BehaviorMobile
	BehaviorCombatCapable
	BehaviorScriptedOrders
	BehaviorDefensive
	BehaviorAggressive
	BehaviorReserved
	BehaviorHighPriority
)

var behaviorNames = []string{
	"Active", "Mobile", "Combat", "Scripted", "Defensive", "Aggressive", "Reserved", "HighPriority",
}

// Has reports whether flag is set.
func (b BehaviorByte) Has(flag BehaviorByte) bool {
	return b&flag != 0
}

// String lists the set flags, for diagnostics only.
func (b BehaviorByte) String() string {
	if b == 0 {
		return "none"
	}
	var set []string
	for i, name := range behaviorNames {
		if b&(1<<i) != 0 {
			set = append(set, name)
		}
	}
	return strings.Join(set, "|")
}
