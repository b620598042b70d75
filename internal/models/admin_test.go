package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultColorScheme(t *testing.T) {
	scheme := DefaultColorScheme()

	assert.Equal(t, "#FF5A5F", scheme["primary"])
	assert.Equal(t, "#00A699", scheme["secondary"])
	assert.Equal(t, "#121212", scheme["background"])
	assert.Len(t, scheme, 14)

	// Each call returns a fresh copy
	scheme["primary"] = "#000000"
	assert.Equal(t, "#FF5A5F", DefaultColorScheme()["primary"])
}

func TestColorSchemeMerge(t *testing.T) {
	t.Run("Overrides win", func(t *testing.T) {
		merged := DefaultColorScheme().Merge(ColorScheme{"primary": "#123456"})
		assert.Equal(t, "#123456", merged["primary"])
		assert.Equal(t, "#00A699", merged["secondary"])
		assert.Len(t, merged, 14)
	})

	t.Run("Empty override is identity", func(t *testing.T) {
		defaults := DefaultColorScheme()
		merged := defaults.Merge(ColorScheme{})
		assert.Equal(t, defaults, merged)
	})

	t.Run("Unknown keys are kept", func(t *testing.T) {
		merged := DefaultColorScheme().Merge(ColorScheme{"accent": "#ABCDEF"})
		assert.Equal(t, "#ABCDEF", merged["accent"])
		assert.Len(t, merged, 15)
	})

	t.Run("Receiver is not mutated", func(t *testing.T) {
		defaults := DefaultColorScheme()
		defaults.Merge(ColorScheme{"primary": "#123456"})
		assert.Equal(t, "#FF5A5F", defaults["primary"])
	})
}
