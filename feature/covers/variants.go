package covers

import (
	"encoding/json"
	"fmt"

	"cover-sync/core/reconcile"
)

// LookupMode selects the shape of the reference lookup file.
type LookupMode int

const (
	// LookupLevels is an object mapping "{category}_{title}_{f|t}_{difficulty}" to a rating.
	LookupLevels LookupMode = iota
	// LookupVersions is an array of version groups, each an array of variant keys.
	LookupVersions
)

func (m LookupMode) String() string {
	if m == LookupVersions {
		return "versions"
	}
	return "levels"
}

// VariantSpace is the set of expected variant keys for one run.
// Keys are removed as catalog entries claim them.
type VariantSpace struct {
	keys reconcile.KeySet
}

// VariantsFromVersions flattens version groups into one set.
func VariantsFromVersions(groups [][]string) *VariantSpace {
	keys := reconcile.NewKeySet()
	for _, group := range groups {
		for _, key := range group {
			keys.Add(key)
		}
	}
	return &VariantSpace{keys: keys}
}

// VariantsFromLevels strips the last two bytes of every key longer than two bytes.
// Shorter keys cannot carry a variant and are returned as dropped.
func VariantsFromLevels(levels map[string]float64) (*VariantSpace, []string) {
	keys := reconcile.NewKeySet()
	var dropped []string
	for key := range levels {
		if len(key) > 2 {
			keys.Add(key[:len(key)-2])
			continue
		}
		dropped = append(dropped, key)
	}
	return &VariantSpace{keys: keys}, reconcile.NewKeySet(dropped...).Sorted()
}

// ParseVariants decodes a reference lookup file in the given mode.
func ParseVariants(data []byte, mode LookupMode) (*VariantSpace, []string, error) {
	switch mode {
	case LookupVersions:
		var groups [][]string
		if err := json.Unmarshal(data, &groups); err != nil {
			return nil, nil, fmt.Errorf("failed to decode versions lookup: %w", err)
		}
		return VariantsFromVersions(groups), nil, nil
	case LookupLevels:
		var levels map[string]float64
		if err := json.Unmarshal(data, &levels); err != nil {
			return nil, nil, fmt.Errorf("failed to decode level lookup: %w", err)
		}
		space, dropped := VariantsFromLevels(levels)
		return space, dropped, nil
	default:
		return nil, nil, fmt.Errorf("unknown lookup mode %d", mode)
	}
}

// Contains reports whether key is still expected.
func (v *VariantSpace) Contains(key string) bool {
	return v.keys.Contains(key)
}

// Remove drops key; absent keys are ignored.
func (v *VariantSpace) Remove(key string) {
	v.keys.Remove(key)
}

// claim removes key if present and reports whether it did.
func (v *VariantSpace) claim(key string) bool {
	return v.keys.Remove(key)
}

// Len returns the number of keys not yet claimed.
func (v *VariantSpace) Len() int {
	return v.keys.Len()
}

// Remaining returns the unclaimed keys, sorted.
func (v *VariantSpace) Remaining() []string {
	return v.keys.Sorted()
}
