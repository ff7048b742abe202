package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testEnum string

const (
	testEnumAlpha testEnum = "alpha"
	testEnumBeta  testEnum = "beta"
	testEnumGamma testEnum = "gamma"
)

func newTestNormalizer() *Normalizer[testEnum] {
	return NewNormalizer(map[string]testEnum{
		"alpha": testEnumAlpha,
		"beta":  testEnumBeta,
		"gamma": testEnumGamma,
	}, testEnumAlpha)
}

func TestNormalizer_Basic(t *testing.T) {
	normalizer := newTestNormalizer()

	tests := []struct {
		name     string
		input    string
		expected testEnum
	}{
		{"exact match", "alpha", testEnumAlpha},
		{"case insensitive", "ALPHA", testEnumAlpha},
		{"with spaces", "  beta  ", testEnumBeta},
		{"mixed case spaces", "  GaMmA  ", testEnumGamma},
		{"invalid input", "invalid", testEnumAlpha},
		{"empty input", "", testEnumAlpha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, normalizer.Normalize(tt.input))
		})
	}
}

func TestNormalizer_WithError(t *testing.T) {
	normalizer := newTestNormalizer()

	result, err := normalizer.NormalizeWithError("BETA")
	require.NoError(t, err)
	require.Equal(t, testEnumBeta, result)

	result, err = normalizer.NormalizeWithError("  ")
	require.NoError(t, err)
	require.Equal(t, testEnumAlpha, result)

	_, err = normalizer.NormalizeWithError("delta")
	require.Error(t, err)
	require.Contains(t, err.Error(), "alpha beta gamma")
}

func TestNormalizer_ValidKeysIsACopy(t *testing.T) {
	normalizer := newTestNormalizer()

	keys := normalizer.ValidKeys()
	require.Equal(t, []string{"alpha", "beta", "gamma"}, keys)

	keys[0] = "mutated"
	require.Equal(t, "alpha", normalizer.ValidKeys()[0])
}
