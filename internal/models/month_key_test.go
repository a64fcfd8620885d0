package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthKey(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2024-01", false},
		{"1999-12", false},
		{"2024-13", true},
		{"2024-1", true},
		{"202401", true},
		{"", true},
		{"nan", true},
		{"15/03/2024", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, err := ParseMonthKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, MonthKey(tt.input), key)
		})
	}
}

func TestIsMonthKey_ShapeOnly(t *testing.T) {
	assert.True(t, IsMonthKey("2024-13"))
	assert.False(t, IsMonthKey(" 2024-01"))
}

func TestMonthKey_AddMonths(t *testing.T) {
	assert.Equal(t, MonthKey("2024-02"), MonthKey("2024-01").AddMonths(1))
	assert.Equal(t, MonthKey("2025-01"), MonthKey("2024-12").AddMonths(1))
	assert.Equal(t, MonthKey("2023-11"), MonthKey("2024-01").AddMonths(-2))
	assert.Equal(t, MonthKey("2026-03"), MonthKey("2024-03").AddMonths(24))
	assert.Equal(t, MonthKey("garbage"), MonthKey("garbage").AddMonths(1))
}

func TestMonthKeyOf(t *testing.T) {
	assert.Equal(t, MonthKey("2024-03"), MonthKeyOf(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)))
}

func TestMonthKey_Time(t *testing.T) {
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), MonthKey("2024-05").Time())
	assert.True(t, MonthKey("bad").Time().IsZero())
	assert.True(t, MonthKey("2024-05").Valid())
	assert.False(t, MonthKey("2024-00").Valid())
}
