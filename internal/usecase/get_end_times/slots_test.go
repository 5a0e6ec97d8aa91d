package get_end_times

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portico-living/court-booking-service/internal/domain"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

func mustTime(t *testing.T, s string) timeofday.Minutes {
	t.Helper()
	m, err := timeofday.Parse(s)
	require.NoError(t, err)
	return m
}

func times(t *testing.T, ss ...string) []timeofday.Minutes {
	t.Helper()
	out := make([]timeofday.Minutes, 0, len(ss))
	for _, s := range ss {
		out = append(out, mustTime(t, s))
	}
	return out
}

func TestEnumerateEndTimes_WithinContainingInterval(t *testing.T) {
	free := []domain.Interval{
		{Start: mustTime(t, "06:00"), End: mustTime(t, "08:00")},
		{Start: mustTime(t, "10:00"), End: mustTime(t, "12:00")},
	}

	got := enumerateEndTimes(free, mustTime(t, "06:30"), 30, domain.HalfDayAny)

	// Только внутри интервала, содержащего старт; конец интервала включён
	assert.Equal(t, times(t, "07:00", "07:30", "08:00"), got)
}

func TestEnumerateEndTimes_IntervalEndIsValidEnd(t *testing.T) {
	free := []domain.Interval{{Start: mustTime(t, "06:00"), End: mustTime(t, "06:30")}}

	got := enumerateEndTimes(free, mustTime(t, "06:00"), 15, domain.HalfDayAny)

	assert.Equal(t, times(t, "06:15", "06:30"), got)
}

func TestEnumerateEndTimes_StartNotInAnyInterval(t *testing.T) {
	// Другая бронь успела занять выбранный старт: пустой список, не ошибка
	free := []domain.Interval{{Start: mustTime(t, "10:00"), End: mustTime(t, "12:00")}}

	got := enumerateEndTimes(free, mustTime(t, "08:00"), 15, domain.HalfDayAny)

	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestEnumerateEndTimes_StartAtIntervalEnd(t *testing.T) {
	// Конец полуоткрытого интервала ему не принадлежит — старт вне интервала
	free := []domain.Interval{{Start: mustTime(t, "10:00"), End: mustTime(t, "12:00")}}

	got := enumerateEndTimes(free, mustTime(t, "12:00"), 15, domain.HalfDayAny)

	assert.Empty(t, got)
}

func TestEnumerateEndTimes_DoesNotCrossBusyPeriod(t *testing.T) {
	// Бронь не может перешагнуть чужую: времена из следующего свободного
	// интервала не предлагаются
	free := []domain.Interval{
		{Start: mustTime(t, "06:00"), End: mustTime(t, "07:00")},
		{Start: mustTime(t, "08:00"), End: mustTime(t, "10:00")},
	}

	got := enumerateEndTimes(free, mustTime(t, "06:30"), 15, domain.HalfDayAny)

	assert.Equal(t, times(t, "06:45", "07:00"), got)
}

func TestEnumerateEndTimes_HalfDayFilter(t *testing.T) {
	free := []domain.Interval{{Start: mustTime(t, "11:00"), End: mustTime(t, "13:00")}}

	pm := enumerateEndTimes(free, mustTime(t, "11:30"), 30, domain.HalfDayPM)
	// 12:00 и позже — PM
	assert.Equal(t, times(t, "12:00", "12:30", "13:00"), pm)

	am := enumerateEndTimes(free, mustTime(t, "11:30"), 30, domain.HalfDayAM)
	assert.Empty(t, am)
}
