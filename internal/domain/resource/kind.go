package resource

import (
	"fmt"
	"strings"
)

// Kind identifies one of the five resource kinds. The numeric value doubles as the index of
// the facility producing it (0 windfarm, 1 lumber mill, 2 brick factory, 3 concrete plant,
// 4 steel mill).
type Kind int

const (
	Power Kind = iota
	Lumber
	Brick
	Concrete
	Steel
)

// Count is the fixed number of resource kinds.
const Count = 5

var kindNames = [Count]string{"POWER", "LUMBER", "BRICK", "CONCRETE", "STEEL"}

var facilityNames = [Count]string{"WINDFARM", "LUMBER_MILL", "BRICK_FACTORY", "CONCRETE_PLANT", "STEEL_MILL"}

// AllKinds returns every kind in ledger order
func AllKinds() []Kind {
	return []Kind{Power, Lumber, Brick, Concrete, Steel}
}

// IsValid checks if the kind is one of the five resource kinds
func (k Kind) IsValid() bool {
	return k >= Power && k <= Steel
}

func (k Kind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("KIND(%d)", int(k))
	}
	return kindNames[k]
}

// FacilityName returns the name of the building that produces this kind.
func (k Kind) FacilityName() string {
	if !k.IsValid() {
		return fmt.Sprintf("FACILITY(%d)", int(k))
	}
	return facilityNames[k]
}

// ParseKind accepts a kind name, a facility name, or a numeric index.
func ParseKind(s string) (Kind, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i := 0; i < Count; i++ {
		if up == kindNames[i] || up == facilityNames[i] || up == fmt.Sprint(i) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("invalid resource kind: %s", s)
}
