package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lisbon = time.FixedZone("WET", 0)

// 2026-03-02 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, lisbon)
}

func everyDay(openH, openM, closeH, closeM int) []Day {
	week := make([]Day, 7)
	for i := range week {
		week[i] = Day{Weekday: i, OpenHour: openH, OpenMinute: openM, CloseHour: closeH, CloseMinute: closeM}
	}
	return week
}

func TestOvernightOpenBeforeMidnight(t *testing.T) {
	week := []Day{{Weekday: int(time.Monday), OpenHour: 18, CloseHour: 2}}

	st := Evaluate(week, at(2, 23, 0))

	require.True(t, st.IsOpen)
	require.NotNil(t, st.ClosesAt)
	assert.Equal(t, at(3, 2, 0), *st.ClosesAt)
	assert.Equal(t, "02:00", st.ClosesAtLabel)
	assert.Nil(t, st.NextOpen)
}

func TestClosedAfterHoursReportsTomorrow(t *testing.T) {
	st := Evaluate(everyDay(8, 0, 22, 0), at(2, 23, 30))

	assert.False(t, st.IsOpen)
	require.NotNil(t, st.NextOpen)
	assert.Equal(t, at(3, 8, 0), *st.NextOpen)
	assert.Equal(t, "Tue 08:00", st.NextOpenLabel)
	assert.False(t, st.ClosedAllWeek)
}

func TestPreviousDayOvernightWindow(t *testing.T) {
	week := []Day{{Weekday: int(time.Monday), OpenHour: 18, CloseHour: 2}}

	st := Evaluate(week, at(3, 1, 0))

	require.True(t, st.IsOpen)
	assert.Equal(t, at(3, 2, 0), *st.ClosesAt)
}

func TestBoundariesAreExclusive(t *testing.T) {
	week := []Day{{Weekday: int(time.Monday), OpenHour: 18, CloseHour: 2}}

	st := Evaluate(week, at(2, 18, 0))
	assert.False(t, st.IsOpen)
	require.NotNil(t, st.NextOpen)
	assert.Equal(t, at(2, 18, 0), *st.NextOpen)

	st = Evaluate(week, at(3, 2, 0))
	assert.False(t, st.IsOpen)
	require.NotNil(t, st.NextOpen)
	assert.Equal(t, at(9, 18, 0), *st.NextOpen)
}

func TestNextOpenWrapsAroundTheWeek(t *testing.T) {
	sundayOnly := []Day{{Weekday: int(time.Sunday), OpenHour: 10, CloseHour: 12}}
	st := Evaluate(sundayOnly, at(2, 9, 0))
	require.NotNil(t, st.NextOpen)
	assert.Equal(t, at(8, 10, 0), *st.NextOpen)

	mondayOnly := []Day{{Weekday: int(time.Monday), OpenHour: 10, CloseHour: 12}}
	st = Evaluate(mondayOnly, at(2, 13, 0))
	require.NotNil(t, st.NextOpen)
	assert.Equal(t, at(9, 10, 0), *st.NextOpen)
}

func TestClosedAllWeek(t *testing.T) {
	assert.True(t, Evaluate(nil, at(2, 12, 0)).ClosedAllWeek)

	week := everyDay(9, 0, 17, 0)
	for i := range week {
		week[i].IsClosed = true
	}
	st := Evaluate(week, at(2, 12, 0))
	assert.True(t, st.ClosedAllWeek)
	assert.False(t, st.IsOpen)
	assert.Nil(t, st.NextOpen)
}

func TestDayTimeOpen(t *testing.T) {
	st := Evaluate(everyDay(9, 30, 17, 45), at(4, 12, 0))
	require.True(t, st.IsOpen)
	assert.Equal(t, "17:45", st.ClosesAtLabel)
}

func TestCheckWeek(t *testing.T) {
	assert.NoError(t, CheckWeek(everyDay(8, 0, 22, 0)))
	assert.ErrorIs(t, CheckWeek([]Day{{Weekday: 1}, {Weekday: 1}}), ErrDuplicateWeekday)
	assert.Error(t, CheckWeek([]Day{{Weekday: 7}}))
}
