package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictWindowBounds(t *testing.T) {
	requested := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	from, to := ConflictWindowBounds(requested)

	assert.Equal(t, time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC), to)
}

func TestParseFilterDate(t *testing.T) {
	t.Run("Date Only Lower Bound", func(t *testing.T) {
		parsed, err := ParseFilterDate("2025-03-10", false)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), parsed)
	})

	t.Run("Date Only Upper Bound Covers Day", func(t *testing.T) {
		parsed, err := ParseFilterDate("2025-03-10", true)
		require.NoError(t, err)
		assert.Equal(t, 2025, parsed.Year())
		assert.Equal(t, 23, parsed.Hour())
		assert.Equal(t, 59, parsed.Minute())
	})

	t.Run("RFC3339", func(t *testing.T) {
		parsed, err := ParseFilterDate("2025-03-10T08:30:00Z", true)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC), parsed)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ParseFilterDate("10/03/2025", false)
		assert.Error(t, err)
	})
}
