package get_start_times

import (
	"context"
	"fmt"

	"github.com/portico-living/court-booking-service/internal/domain"
)

// UseCase use case перечисления доступных стартовых времён на дату
type UseCase struct {
	bookingRepo BookingRepository
	policy      domain.Policy
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, policy domain.Policy, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		policy:      policy,
		logger:      logger,
	}
}

// Execute выполняет use case перечисления стартовых времён
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookings, err := uc.bookingRepo.GetByDate(ctx, req.Date, false)
	if err != nil {
		uc.logger.Error("GetStartTimes: failed to get bookings for %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	free := domain.FreeIntervals(uc.policy.Window, domain.BusyIntervals(bookings))
	times := enumerateStartTimes(free, uc.policy.Window, uc.policy.GranularityMinutes, req.Half)

	uc.logger.Info("GetStartTimes: %d start times for %s (half=%q)",
		len(times), req.Date.Format(domain.DateFormat), req.Half)

	return &Response{
		Date:  req.Date,
		Half:  req.Half,
		Times: times,
	}, nil
}
