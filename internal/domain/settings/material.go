package settings

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
)

// Material is a fortification material. The numeric ids are part of the public interface
// (0 brick, 1 concrete, 2 steel).
type Material int

const (
	MaterialBrick Material = iota
	MaterialConcrete
	MaterialSteel
)

// MaterialCount is the number of fortification materials
const MaterialCount = 3

// AllMaterials returns every material in id order
func AllMaterials() []Material {
	return []Material{MaterialBrick, MaterialConcrete, MaterialSteel}
}

// IsValid checks if the material id is known
func (m Material) IsValid() bool {
	return m >= MaterialBrick && m <= MaterialSteel
}

// Kind returns the resource kind the material is paid in.
func (m Material) Kind() resource.Kind {
	switch m {
	case MaterialConcrete:
		return resource.Concrete
	case MaterialSteel:
		return resource.Steel
	default:
		return resource.Brick
	}
}

func (m Material) String() string {
	switch m {
	case MaterialBrick:
		return "brick"
	case MaterialConcrete:
		return "concrete"
	case MaterialSteel:
		return "steel"
	default:
		return fmt.Sprintf("material(%d)", int(m))
	}
}

// ParseMaterial accepts a material name or its numeric id.
func ParseMaterial(s string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brick", "0":
		return MaterialBrick, nil
	case "concrete", "1":
		return MaterialConcrete, nil
	case "steel", "2":
		return MaterialSteel, nil
	}
	return 0, fmt.Errorf("invalid fortification material: %s", s)
}
