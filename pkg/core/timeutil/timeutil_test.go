package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	assert.Equal(t, 0, ToMinutes("00:00"))
	assert.Equal(t, 990, ToMinutes("16:30"))
	assert.Equal(t, 1430, ToMinutes("23:50"))
	assert.Equal(t, 10, ToMinutes("00:10"))
}

func TestToMinutes_MalformedInputDefaultsToZero(t *testing.T) {
	// Bad time data scores as midnight instead of failing
	assert.Equal(t, 0, ToMinutes(""))
	assert.Equal(t, 0, ToMinutes("1630"))
	assert.Equal(t, 0, ToMinutes("ab:cd"))
	assert.Equal(t, 0, ToMinutes("16:xx"))
}

func TestCircularDiff(t *testing.T) {
	assert.Equal(t, 0, CircularDiff(990, 990))
	assert.Equal(t, 30, CircularDiff(990, 1020))
	assert.Equal(t, 30, CircularDiff(1020, 990))
}

func TestCircularDiff_Wraparound(t *testing.T) {
	// 23:50 and 00:10 are 20 minutes apart on the clock, not 1420
	assert.Equal(t, 20, CircularDiff(ToMinutes("23:50"), ToMinutes("00:10")))
	assert.Equal(t, 20, CircularDiff(ToMinutes("00:10"), ToMinutes("23:50")))
	assert.Equal(t, 720, CircularDiff(ToMinutes("00:00"), ToMinutes("12:00")))
}

func TestInstant(t *testing.T) {
	instant := Instant("2024-01-03", "12:00")
	expected := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	assert.True(t, instant.Equal(expected))

	// Malformed date yields the zero time
	assert.True(t, Instant("not-a-date", "12:00").IsZero())
}

func TestDayName(t *testing.T) {
	day, err := ParseServiceDate("2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, "wednesday", DayName(day))

	sunday, err := ParseServiceDate("2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, "sunday", DayName(sunday))
}
