package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input string
		want  ClockTime
	}{
		{"09:00", ClockTime{Hour: 9}},
		{"9:00", ClockTime{Hour: 9}},
		{"0:05", ClockTime{Minute: 5}},
		{"23:59", ClockTime{Hour: 23, Minute: 59}},
		{" 07:30 ", ClockTime{Hour: 7, Minute: 30}},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		require.NoError(t, err, "input: %q", tt.input)
		assert.Equal(t, tt.want, got, "input: %q", tt.input)
	}
}

func TestParseClockRejects(t *testing.T) {
	for _, input := range []string{
		"",
		"9",
		"24:00",
		"12:60",
		"12:5",
		"12:005",
		"+9:00",
		"-0:00",
		"009:00",
		"9:+5",
		"1a:00",
		"12:00:00",
		"١٢:٠٠",
	} {
		_, err := ParseClock(input)
		assert.ErrorIs(t, err, ErrInvalidTime, "input: %q", input)
	}
}

func TestClockTimeScan(t *testing.T) {
	var c ClockTime
	require.NoError(t, c.Scan([]byte("08:15")))
	assert.Equal(t, "08:15", c.String())

	assert.Error(t, c.Scan("+8:15"))
	assert.Error(t, c.Scan(42))
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2025-11-19", DateKey(time.Date(2025, time.November, 19, 23, 59, 0, 0, time.UTC)))
}
