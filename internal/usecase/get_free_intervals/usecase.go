package get_free_intervals

import (
	"context"
	"fmt"

	"github.com/portico-living/court-booking-service/internal/domain"
)

// UseCase use case расчёта свободных интервалов корта на дату.
// Чистая производная от текущего состояния ledger: результат никогда не
// хранится, пересчитывается по снапшоту бронирований.
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

// Execute выполняет use case расчёта свободных интервалов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookings, err := uc.bookingRepo.GetByDate(ctx, req.Date, false)
	if err != nil {
		uc.logger.Error("GetFreeIntervals: failed to get bookings for %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	free := domain.FreeIntervals(uc.policy.Window, domain.BusyIntervals(bookings))

	intervals := make([]FreeInterval, len(free))
	for i, f := range free {
		intervals[i] = FreeInterval{From: f.Start, To: f.End}
	}

	uc.logger.Info("GetFreeIntervals: %d free intervals for %s (%d active bookings)",
		len(intervals), req.Date.Format(domain.DateFormat), len(bookings))

	return &Response{
		Date:      req.Date,
		Intervals: intervals,
	}, nil
}
