package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portico-living/court-booking-service/internal/domain"
	bookingRepo "github.com/portico-living/court-booking-service/internal/infra/storage/booking"
	"github.com/portico-living/court-booking-service/internal/service/bookings/models"
	"github.com/portico-living/court-booking-service/pkg/ptr"
)

type fakeRepo struct {
	byID map[int64]*domain.Booking

	cancelledID     int64
	cancelledStatus domain.BookingStatus
	cancelledReason string
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeRepo) GetByDate(context.Context, time.Time, bool) ([]*domain.Booking, error) {
	return nil, nil
}

func (r *fakeRepo) GetByUserID(context.Context, int64, *domain.BookingStatus) ([]*domain.Booking, error) {
	return nil, nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	r.cancelledID = id
	r.cancelledStatus = status
	r.cancelledReason = reason
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(bookings ...*domain.Booking) (*Service, *fakeRepo) {
	repo := &fakeRepo{byID: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.byID[b.ID] = b
	}
	return NewService(repo, nopLogger{}), repo
}

func confirmedBooking(id, userID int64) *domain.Booking {
	return &domain.Booking{
		ID:     id,
		UserID: userID,
		Date:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Start:  600,
		End:    660,
		Status: domain.StatusConfirmed,
	}
}

func TestGetByID_OwnerAndAdminAccess(t *testing.T) {
	svc, _ := newService(confirmedBooking(1, 42))

	// Владелец видит свою бронь
	resp, err := svc.GetByID(context.Background(), 1, domain.Identity{UserID: 42, Role: domain.RoleResident})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Админ видит любую
	_, err = svc.GetByID(context.Background(), 1, domain.Identity{UserID: 99, Role: domain.RoleAdmin})
	assert.NoError(t, err)

	// Чужой резидент — нет
	_, err = svc.GetByID(context.Background(), 1, domain.Identity{UserID: 7, Role: domain.RoleResident})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetByID(context.Background(), 404, domain.Identity{UserID: 1, Role: domain.RoleAdmin})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ByOwner(t *testing.T) {
	svc, repo := newService(confirmedBooking(1, 42))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Requester:          domain.Identity{UserID: 42, Role: domain.RoleResident},
		CancellationReason: "rain",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.cancelledID)
	assert.Equal(t, domain.StatusCancelledByUser, repo.cancelledStatus)
	assert.Equal(t, "rain", repo.cancelledReason)
}

func TestCancel_ByAdmin(t *testing.T) {
	svc, repo := newService(confirmedBooking(1, 42))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Requester:          domain.Identity{UserID: 99, Role: domain.RoleAdmin},
		CancellationReason: "court maintenance",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByAdmin, repo.cancelledStatus)
}

func TestCancel_ForeignResidentDenied(t *testing.T) {
	svc, repo := newService(confirmedBooking(1, 42))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Requester: domain.Identity{UserID: 7, Role: domain.RoleResident},
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	b := confirmedBooking(1, 42)
	b.Status = domain.StatusCancelledByUser
	svc, _ := newService(b)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Requester: domain.Identity{UserID: 42, Role: domain.RoleResident},
	})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestGetUserBookings_AccessControl(t *testing.T) {
	svc, _ := newService()

	// Резидент не видит чужую историю
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Requester: domain.Identity{UserID: 7, Role: domain.RoleResident},
		UserID:    42,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Свою — видит
	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Requester: domain.Identity{UserID: 42, Role: domain.RoleResident},
		UserID:    42,
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings, "empty history is a list, not null")
}

func TestGetUserBookings_InvalidStatusFilter(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Requester: domain.Identity{UserID: 42, Role: domain.RoleResident},
		UserID:    42,
		Status:    ptr.Ptr("pending"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserBookings_ValidStatusFilter(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Requester: domain.Identity{UserID: 42, Role: domain.RoleResident},
		UserID:    42,
		Status:    ptr.Ptr(string(domain.StatusCancelledByUser)),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
}
