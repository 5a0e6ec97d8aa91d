package get_free_intervals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portico-living/court-booking-service/internal/domain"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

type fakeRepo struct {
	bookings []*domain.Booking
	err      error
}

func (r *fakeRepo) GetByDate(context.Context, time.Time, bool) ([]*domain.Booking, error) {
	return r.bookings, r.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) timeofday.Minutes {
	t.Helper()
	m, err := timeofday.Parse(s)
	require.NoError(t, err)
	return m
}

func testPolicy(t *testing.T) domain.Policy {
	t.Helper()
	return domain.Policy{
		Window: domain.OperatingWindow{
			DayStart: mustTime(t, "06:00"),
			DayEnd:   mustTime(t, "22:00"),
		},
		GranularityMinutes: 15,
	}
}

func TestExecute_FreeDay(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, testPolicy(t), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Intervals, 1)
	assert.Equal(t, mustTime(t, "06:00"), resp.Intervals[0].From)
	assert.Equal(t, mustTime(t, "22:00"), resp.Intervals[0].To)
}

func TestExecute_SubtractsActiveBookings(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		{Start: mustTime(t, "10:00"), End: mustTime(t, "11:30"), Status: domain.StatusConfirmed},
		{Start: mustTime(t, "08:00"), End: mustTime(t, "09:00"), Status: domain.StatusCancelledByUser},
	}}
	uc := NewUseCase(repo, testPolicy(t), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	// Отменённая бронь не занимает время
	require.Len(t, resp.Intervals, 2)
	assert.Equal(t, mustTime(t, "06:00"), resp.Intervals[0].From)
	assert.Equal(t, mustTime(t, "10:00"), resp.Intervals[0].To)
	assert.Equal(t, mustTime(t, "11:30"), resp.Intervals[1].From)
	assert.Equal(t, mustTime(t, "22:00"), resp.Intervals[1].To)
}

func TestExecute_ZeroDateIsInvalid(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, testPolicy(t), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	uc := NewUseCase(&fakeRepo{err: errors.New("db down")}, testPolicy(t), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInternal)
}
