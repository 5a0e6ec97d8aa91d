package get_end_times

import (
	"context"
	"fmt"

	"github.com/portico-living/court-booking-service/internal/domain"
)

// UseCase use case перечисления допустимых времён окончания
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

// Execute выполняет use case перечисления времён окончания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !req.Start.Valid() {
		return nil, fmt.Errorf("%w: start time out of range", ErrInvalidInput)
	}

	bookings, err := uc.bookingRepo.GetByDate(ctx, req.Date, false)
	if err != nil {
		uc.logger.Error("GetEndTimes: failed to get bookings for %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	free := domain.FreeIntervals(uc.policy.Window, domain.BusyIntervals(bookings))
	times := enumerateEndTimes(free, req.Start, uc.policy.GranularityMinutes, req.Half)

	uc.logger.Info("GetEndTimes: %d end times for %s start=%s (half=%q)",
		len(times), req.Date.Format(domain.DateFormat), req.Start, req.Half)

	return &Response{
		Date:  req.Date,
		Start: req.Start,
		Half:  req.Half,
		Times: times,
	}, nil
}
