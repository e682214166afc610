package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr error
	}{
		{name: "valid morning", input: "09:00", want: "09:00"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day boundary", input: "24:00", want: "24:00"},
		{name: "missing leading zero", input: "9:00", wantErr: ErrInvalidFormat},
		{name: "minutes out of range", input: "10:60", wantErr: ErrInvalidFormat},
		{name: "hours out of range", input: "25:00", wantErr: ErrInvalidFormat},
		{name: "past midnight boundary", input: "24:30", wantErr: ErrInvalidFormat},
		{name: "with seconds", input: "10:00:00", wantErr: ErrInvalidFormat},
		{name: "empty", input: "", wantErr: ErrInvalidFormat},
		{name: "garbage", input: "ab:cd", wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeStringAddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr error
	}{
		{name: "simple add", start: "09:00", minutes: 90, want: "10:30"},
		{name: "hour rollover", start: "10:45", minutes: 30, want: "11:15"},
		{name: "exactly midnight end", start: "23:30", minutes: 30, want: "24:00"},
		{name: "past midnight", start: "23:30", minutes: 31, wantErr: ErrOutOfRange},
		{name: "negative below zero", start: "00:10", minutes: -11, wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeStringOrdering(t *testing.T) {
	// Лексикографический порядок совпадает с хронологическим
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.True(t, TimeString("23:59").IsBefore("24:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:01").IsAfter("10:00"))
}

func TestTimeStringScan(t *testing.T) {
	t.Run("from time.Time", func(t *testing.T) {
		var ts TimeString
		value := time.Date(2026, 9, 15, 10, 30, 45, 0, time.UTC)
		require.NoError(t, ts.Scan(value))
		assert.Equal(t, TimeString("10:30"), ts)
	})

	t.Run("from string with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("09:00:00"))
		assert.Equal(t, TimeString("09:00"), ts)
	})

	t.Run("from bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("18:45")))
		assert.Equal(t, TimeString("18:45"), ts)
	})

	t.Run("nil resets", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		require.Error(t, ts.Scan(42))
	})
}

func TestTimeStringValue(t *testing.T) {
	value, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", value)

	value, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	_, err = TimeString("bad").Value()
	require.Error(t, err)
}
