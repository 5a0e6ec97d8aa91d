package create_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/portico-living/court-booking-service/internal/domain"
)

// UseCase use case создания бронирования (admission controller).
// Правила проверяются по порядку с остановкой на первом нарушении; проверки,
// зависящие от состояния ledger (дубль на дату, пересечение), и сама вставка
// выполняются в одной сериализуемой транзакции — заявки на одну дату
// упорядочиваются, гонка "прочитал свободное — отправил устаревшее"
// закрывается повторной проверкой на коммите.
type UseCase struct {
	bookingRepo    BookingRepository
	holidayChecker HolidayChecker
	txManager      TransactionManager
	policy         domain.Policy
	location       *time.Location
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	holidayChecker HolidayChecker,
	txManager TransactionManager,
	policy domain.Policy,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		holidayChecker: holidayChecker,
		txManager:      txManager,
		policy:         policy,
		location:       location,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d role=%s date=%s %s-%s",
		req.Requester.UserID, req.Requester.Role,
		req.Date.Format(domain.DateFormat), req.Start, req.End)

	// 1. Валидация входных данных (включая end > start)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	requested := domain.Interval{Start: req.Start, End: req.End}
	isAdmin := req.Requester.IsAdmin()

	// 2. Операционное окно корта — обязательна для всех, включая админов
	if err := checkOperatingWindow(requested, uc.policy.Window); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// Текущее время в календаре корта
	now := uc.timeProvider.Now().In(uc.location)

	// Правила 3-5 — только для резидентов, админ их обходит
	if !isAdmin {
		// 3. Максимальная длительность
		if err := checkMaxDuration(requested, uc.policy.MaxDurationMinutes); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, err
		}

		// 4. Окно заблаговременности [сегодня, сегодня + maxAdvanceDays]
		if err := checkAdvanceWindow(req.Date, now, uc.policy.MaxAdvanceDays); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, err
		}

		// 5. Закрытые окна выходных и праздников
		restricted := isWeekend(req.Date)
		if !restricted {
			holiday, err := uc.holidayChecker.IsHoliday(ctx, req.Date)
			if err != nil {
				uc.logger.Error("CreateBooking: holiday lookup failed: %v", err)
				return nil, fmt.Errorf("%w: holiday lookup: %v", ErrInternal, err)
			}
			restricted = holiday
		}
		if restricted {
			if err := checkRestrictedWindows(requested, uc.policy.RestrictedWindows); err != nil {
				uc.logger.Warn("CreateBooking: %v", err)
				return nil, err
			}
		}
	}

	var result *Response

	// Правила 6-7 и вставка — атомарно относительно конкурентных заявок
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Снапшот дня с блокировкой строк (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByDate(txCtx, req.Date, false)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6. Одна бронь на пользователя в день (резиденты)
		if !isAdmin {
			if err := checkDuplicateForUser(req.Requester.UserID, bookings); err != nil {
				uc.logger.Warn("CreateBooking: %v", err)
				return err
			}
		}

		// 7. Пересечение с существующими бронями. Админ обходит его только
		// при явно включённом admin_overlap_override.
		if !isAdmin || !uc.policy.AdminOverlapOverride {
			if err := checkOverlap(requested, bookings); err != nil {
				uc.logger.Warn("CreateBooking: %v", err)
				return err
			}
		}

		booking := &domain.Booking{
			UserID: req.Requester.UserID,
			Date:   req.Date,
			Start:  req.Start,
			End:    req.End,
			Status: domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Откат без частичного состояния; вызывающий может повторить
			uc.logger.Error("CreateBooking: ledger write failed: %v", err)
			return fmt.Errorf("%w: %v", ErrLedgerWrite, err)
		}

		// Обновлённое расписание дня для отрисовки, по возрастанию начала
		updated, err := uc.bookingRepo.GetByDate(txCtx, req.Date, false)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to reload day schedule: %v", err)
			return fmt.Errorf("%w: failed to reload day schedule: %v", ErrInternal, err)
		}

		result = &Response{
			Booking:     fromDomainBooking(created),
			DaySchedule: fromDomainBookings(updated),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d confirmed for user=%d on %s %s-%s",
		result.Booking.ID, req.Requester.UserID,
		req.Date.Format(domain.DateFormat), req.Start, req.End)

	return result, nil
}
