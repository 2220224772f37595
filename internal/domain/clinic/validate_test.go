package clinic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MaxLengths(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"owner ok", Owner{FirstName: "George", LastName: "Franklin", Telephone: "6085551023"}.Validate()},
		{"pet ok", Pet{Name: "Leo"}.Validate()},
		{"visit ok", Visit{Description: "rabies shot"}.Validate()},
	}
	for _, tc := range tests {
		assert.NoError(t, tc.err, tc.name)
	}

	err := Owner{FirstName: strings.Repeat("a", 31), Telephone: strings.Repeat("1", 21)}.Validate()
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "firstName must be at most 30 characters")
	assert.Contains(t, err.Error(), "telephone must be at most 20 characters")

	assert.ErrorIs(t, PetType{Name: strings.Repeat("x", 81)}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Specialty{Name: strings.Repeat("x", 81)}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Vet{LastName: strings.Repeat("x", 31)}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Visit{Description: strings.Repeat("x", 256)}.Validate(), ErrInvalidInput)
}

func TestValidate_CountsRunes(t *testing.T) {
	// 30 runas multibyte siguen siendo válidas
	assert.NoError(t, Pet{Name: strings.Repeat("ñ", 30)}.Validate())
}
