package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotFormat(t *testing.T) {
	s := Slot{Day: Day{Label: "Fri", Date: "18"}, Time: "06:30 PM"}
	assert.Equal(t, "Fri 18 - 06:30 PM", s.Format())
	assert.False(t, s.Empty())
	assert.True(t, Slot{}.Empty())
}

func TestFixedSlots(t *testing.T) {
	opts := FixedSlots()
	require.Len(t, opts.Days, 3)
	assert.True(t, opts.Days[0].Recommended)
	assert.Equal(t, []string{"06:30 PM", "07:00 PM", "07:30 PM"}, opts.Times)
}

func TestGenerateSlots(t *testing.T) {
	loc := time.UTC
	tests := map[string]struct {
		now   time.Time
		times []string
	}{
		"morning":       {now: time.Date(2024, 5, 16, 9, 0, 0, 0, loc), times: []string{"6:00 PM", "6:30 PM", "7:00 PM"}},
		"exactly 18:00": {now: time.Date(2024, 5, 16, 18, 0, 0, 0, loc), times: []string{"6:30 PM", "7:00 PM", "7:30 PM"}},
		"late evening":  {now: time.Date(2024, 5, 16, 20, 45, 0, 0, loc), times: []string{"9:00 PM", "9:30 PM", "6:00 PM"}},
		"after cut-off": {now: time.Date(2024, 5, 16, 23, 10, 0, 0, loc), times: []string{"6:00 PM", "6:30 PM", "7:00 PM"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			opts := GenerateSlots(tc.now)
			assert.Equal(t, tc.times, opts.Times)
		})
	}

	opts := GenerateSlots(time.Date(2024, 5, 16, 9, 0, 0, 0, loc))
	require.Len(t, opts.Days, 3)
	assert.Equal(t, Day{Label: "Fri", Date: "17", Month: "May", FullDate: "2024-05-17", Recommended: true}, opts.Days[0])
	assert.Equal(t, "Sun", opts.Days[2].Label)
	assert.False(t, opts.Days[1].Recommended)
}
