package commands

import (
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

func parseFacility(raw string) (resource.Kind, error) {
	kind, err := resource.ParseKind(raw)
	if err != nil {
		return 0, shared.NewValidationError("facility", err.Error())
	}
	return kind, nil
}

func parseMaterial(raw string) (settings.Material, error) {
	m, err := settings.ParseMaterial(raw)
	if err != nil {
		return 0, shared.NewValidationError("material", err.Error())
	}
	return m, nil
}

func bundleData(b resource.Bundle) []string {
	s := b.Strings()
	return s[:]
}
