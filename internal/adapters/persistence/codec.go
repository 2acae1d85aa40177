package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
)

func encodeBundle(b resource.Bundle) (string, error) {
	strs := b.Strings()
	bytes, err := json.Marshal(strs[:])
	if err != nil {
		return "", fmt.Errorf("failed to marshal bundle: %w", err)
	}
	return string(bytes), nil
}

func decodeBundle(raw string) (resource.Bundle, error) {
	if raw == "" {
		return resource.Bundle{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return resource.Bundle{}, fmt.Errorf("failed to unmarshal bundle: %w", err)
	}
	return resource.ParseBundle(values)
}

func decodeAmount(column, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s in database: %w", column, err)
	}
	return d, nil
}

func encodeMap(m map[string]interface{}) (string, error) {
	if m == nil {
		return "", nil
	}
	bytes, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return string(bytes), nil
}

func decodeMap(raw string) map[string]interface{} {
	if raw == "" {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		// If unmarshal fails, leave metadata as nil
		return nil
	}
	return m
}
