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
		wantErr bool
	}{
		{name: "valid morning time", input: "09:00", want: "09:00"},
		{name: "valid evening time", input: "23:59", want: "23:59"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "10:60", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:30")

	got, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), got)

	// Выход за пределы суток - ошибка, а не перенос на следующий день
	_, err = TimeString("23:30").AddMinutes(60)
	require.ErrorIs(t, err, ErrOutOfDayRange)

	_, err = TimeString("10:00").AddMinutes(-700)
	require.ErrorIs(t, err, ErrOutOfDayRange)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:01").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))

	assert.True(t, TimeString("18:00").IsAfter("17:59"))
	assert.False(t, TimeString("18:00").IsAfter("18:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	got := TimeString("14:45").OnDate(date)
	assert.Equal(t, time.Date(2026, 9, 7, 14, 45, 0, 0, time.UTC), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:15:00"))
	assert.Equal(t, TimeString("10:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 8, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	require.Error(t, ts.Scan(42))
}
