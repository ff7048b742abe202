package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer maps loosely written user input (flags, config values) onto a
// closed set of typed values.
type Normalizer[T comparable] struct {
	validValues  map[string]T
	defaultValue T
	validKeys    []string // Cached for error messages
}

// NewNormalizer creates a normalizer with a map of valid string->value pairs.
// Keys are compared after trimming and lower-casing.
func NewNormalizer[T comparable](values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))

	for k, v := range values {
		key := normalize(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}

	sort.Strings(validKeys)

	return &Normalizer[T]{
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize returns the value for raw, or the default value if raw is not recognized.
// Empty input yields the default.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, exists := n.validValues[normalize(raw)]; exists {
		return value
	}
	return n.defaultValue
}

// NormalizeWithError is like Normalize but rejects unrecognized non-empty input.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	cleaned := normalize(raw)
	if cleaned == "" {
		return n.defaultValue, nil
	}
	if value, exists := n.validValues[cleaned]; exists {
		return value, nil
	}

	var zero T
	return zero, fmt.Errorf("invalid value %q, valid options: %v", raw, n.validKeys)
}

// ValidKeys returns all valid normalized keys.
func (n *Normalizer[T]) ValidKeys() []string {
	result := make([]string, len(n.validKeys))
	copy(result, n.validKeys)
	return result
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
