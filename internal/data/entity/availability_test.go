package entity

import (
	"testing"
	"time"

	"karigar/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekWithMonday(t *testing.T, start, end string) *WeeklyAvailability {
	t.Helper()
	w := &WeeklyAvailability{ProviderID: uuid.New()}
	w.Normalize()
	_, err := w.AddSlot(Monday, start, end)
	require.NoError(t, err)
	return w
}

func TestAddSlot_OverlapRejected(t *testing.T) {
	w := weekWithMonday(t, "10:00", "12:00")

	_, err := w.AddSlot(Monday, "11:00", "13:00")

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Len(t, w.Days[Monday].Slots, 1)
}

func TestAddSlot_BackToBackAllowed(t *testing.T) {
	w := weekWithMonday(t, "10:00", "12:00")

	slot, err := w.AddSlot(Monday, "12:00", "14:00")

	require.NoError(t, err)
	assert.NotEmpty(t, slot.ID)
	require.Len(t, w.Days[Monday].Slots, 2)
	assert.Equal(t, "12:00", w.Days[Monday].Slots[1].Start)
}

func TestAddSlot_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{"unparsable start", "ab:cd", "12:00"},
		{"unparsable end", "10:00", "25:00"},
		{"end before start", "14:00", "13:00"},
		{"empty range", "10:00", "10:00"},
		{"containing existing", "09:00", "13:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := weekWithMonday(t, "10:00", "12:00")

			_, err := w.AddSlot(Monday, tt.start, tt.end)

			assert.ErrorIs(t, err, apperror.ErrValidation)
			assert.Len(t, w.Days[Monday].Slots, 1)
		})
	}
}

func TestAddSlot_DayOff(t *testing.T) {
	w := DefaultWeeklyAvailability(uuid.New())

	_, err := w.AddSlot(Sunday, "10:00", "12:00")

	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestOverlaps(t *testing.T) {
	existing := []TimeSlot{{ID: "a", Start: "10:00", End: "12:00"}}

	assert.True(t, Overlaps(existing, "11:00", "13:00"))
	assert.True(t, Overlaps(existing, "09:00", "10:30"))
	assert.False(t, Overlaps(existing, "12:00", "14:00"))
	assert.False(t, Overlaps(existing, "08:00", "10:00"))
	assert.True(t, Overlaps(existing, "xx", "13:00"))
	assert.False(t, Overlaps(nil, "08:00", "10:00"))
}

func TestDeleteSlot(t *testing.T) {
	w := weekWithMonday(t, "10:00", "12:00")
	id := w.Days[Monday].Slots[0].ID

	require.NoError(t, w.DeleteSlot(Monday, id))
	assert.Empty(t, w.Days[Monday].Slots)
	assert.ErrorIs(t, w.DeleteSlot(Monday, id), apperror.ErrNotFound)
}

func TestToggleDayOff(t *testing.T) {
	w := weekWithMonday(t, "10:00", "12:00")

	assert.True(t, w.ToggleDayOff(Monday))
	assert.Empty(t, w.Days[Monday].Slots)

	assert.False(t, w.ToggleDayOff(Monday))
	assert.Empty(t, w.Days[Monday].Slots)
}

func TestClone_Independent(t *testing.T) {
	w := weekWithMonday(t, "10:00", "12:00")
	c := w.Clone()

	_, err := c.AddSlot(Monday, "12:00", "13:00")
	require.NoError(t, err)

	assert.Len(t, w.Days[Monday].Slots, 1)
	assert.Len(t, c.Days[Monday].Slots, 2)
}

func TestCovers(t *testing.T) {
	w := weekWithMonday(t, "10:00", "18:00")
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	assert.Equal(t, Monday, WeekdayOf(monday))
	assert.True(t, w.Covers(monday, Clock(10*60)))
	assert.True(t, w.Covers(monday, Clock(17*60+59)))
	assert.False(t, w.Covers(monday, Clock(18*60)))
	assert.False(t, w.Covers(tuesday, Clock(11*60)))
}

func TestWeekdayOf(t *testing.T) {
	sunday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Sunday, WeekdayOf(sunday))
	assert.Equal(t, Saturday, WeekdayOf(sunday.AddDate(0, 0, 6)))
}

func TestDefaultWeeklyAvailability(t *testing.T) {
	w := DefaultWeeklyAvailability(uuid.New())

	assert.Len(t, w.Days, 7)
	assert.Len(t, w.Days[Monday].Slots, 1)
	assert.True(t, w.Days[Saturday].IsDayOff)
	assert.True(t, w.Days[Sunday].IsDayOff)
	assert.False(t, w.Days[Wednesday].IsDayOff)
}

func TestNewBlockedPeriod(t *testing.T) {
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	p, err := NewBlockedPeriod(uuid.New(), start, end, "   ", testNow)
	require.NoError(t, err)
	assert.Equal(t, DefaultBlockedReason, p.Reason)
	assert.True(t, p.Contains(start))
	assert.True(t, p.Contains(end.Add(23*time.Hour)))
	assert.False(t, p.Contains(end.AddDate(0, 0, 1)))

	p, err = NewBlockedPeriod(uuid.New(), start, start, "Family function", testNow)
	require.NoError(t, err)
	assert.Equal(t, "Family function", p.Reason)

	_, err = NewBlockedPeriod(uuid.New(), end, start, "", testNow)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = NewBlockedPeriod(uuid.New(), time.Time{}, end, "", testNow)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday(" Monday ")
	require.NoError(t, err)
	assert.Equal(t, Monday, d)

	_, err = ParseWeekday("funday")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
