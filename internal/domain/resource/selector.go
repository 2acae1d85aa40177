package resource

// Selector picks the harvest slots: index 0 is the token reward, 1..4 are lumber, brick,
// concrete and steel. Power is credited automatically and has no slot of its own.
type Selector [Count]bool

// SlotTokenReward is the selector index claiming the token reward.
const SlotTokenReward = 0

// Any reports whether at least one slot is selected
func (s Selector) Any() bool {
	for _, v := range s {
		if v {
			return true
		}
	}
	return false
}

// Kinds returns the resource kinds selected in slots 1..4.
func (s Selector) Kinds() []Kind {
	var kinds []Kind
	for i := 1; i < Count; i++ {
		if s[i] {
			kinds = append(kinds, Kind(i))
		}
	}
	return kinds
}
