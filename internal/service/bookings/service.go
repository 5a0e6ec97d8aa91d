package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/portico-living/court-booking-service/internal/domain"
	bookingRepo "github.com/portico-living/court-booking-service/internal/infra/storage/booking"
	"github.com/portico-living/court-booking-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - резидент может видеть только своё бронирование,
// админ видит любое
func (s *Service) GetByID(ctx context.Context, id int64, requester domain.Identity) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, requester.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(booking, requester); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", requester.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Резидент видит только свою историю, админ — любую.
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID != req.Requester.UserID && !req.Requester.IsAdmin() {
		s.logger.Warn("GetUserBookings: access denied for user=%d to history of user=%d",
			req.Requester.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetDayBookings получает расписание корта на календарную дату, по возрастанию
// времени начала. Отменённые бронирования включаются только по запросу и
// только для админа — резидентам история дня не показывается.
func (s *Service) GetDayBookings(ctx context.Context, req *models.GetDayBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetDayBookings: fetching schedule for date=%s, user=%d",
		req.Date.Format(domain.DateFormat), req.Requester.UserID)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	includeInactive := req.IncludeInactive && req.Requester.IsAdmin()

	bookings, err := s.bookingRepo.GetByDate(ctx, req.Date, includeInactive)
	if err != nil {
		s.logger.Error("GetDayBookings: repository error for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDayBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDayBookings: successfully fetched %d bookings for date=%s",
		len(bookings), req.Date.Format(domain.DateFormat))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Резидент может отменить только своё бронирование (cancelled_by_user)
// Админ может отменить любое бронирование (cancelled_by_admin)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.Requester.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.BookingStatus

	switch {
	case booking.UserID == req.Requester.UserID:
		cancelStatus = domain.StatusCancelledByUser
	case req.Requester.IsAdmin():
		cancelStatus = domain.StatusCancelledByAdmin
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d",
			req.Requester.UserID, bookingID)
		return ErrAccessDenied
	}

	// Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
func (s *Service) checkUserAccess(booking *domain.Booking, requester domain.Identity) error {
	if booking.UserID == requester.UserID {
		return nil
	}
	if requester.IsAdmin() {
		return nil
	}
	return ErrAccessDenied
}
