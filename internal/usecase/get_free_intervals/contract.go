package get_free_intervals

import (
	"context"
	"time"

	"github.com/portico-living/court-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований (booking ledger)
type BookingRepository interface {
	// GetByDate получает бронирования на дату, отсортированные по началу
	GetByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
