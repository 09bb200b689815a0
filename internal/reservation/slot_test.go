package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSlots(t *testing.T) {
	slots := AllSlots()

	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "23:00", slots[14])
	assert.Equal(t, "00:00 (next day)", slots[15])
	assert.Equal(t, "02:00 (next day)", slots[17])
}

func TestIsValidSlot(t *testing.T) {
	tests := []struct {
		label string
		valid bool
	}{
		{"09:00", true},
		{"23:00", true},
		{"00:00 (next day)", true},
		{"02:00 (next day)", true},
		{"08:00", false},
		{"03:00 (next day)", false},
		{"00:00", false},
		{"9:00", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidSlot(tt.label))
		})
	}
}

func TestNormalizeSlots(t *testing.T) {
	t.Run("Removes duplicates preserving first appearance", func(t *testing.T) {
		out := NormalizeSlots([]string{"10:00", "09:00", "10:00", "09:00", "11:00"})
		assert.Equal(t, []string{"10:00", "09:00", "11:00"}, out)
	})

	t.Run("Empty input stays empty", func(t *testing.T) {
		assert.Empty(t, NormalizeSlots(nil))
	})
}
