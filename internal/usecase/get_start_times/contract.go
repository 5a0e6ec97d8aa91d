package get_start_times

import (
	"context"
	"time"

	"github.com/portico-living/court-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований (booking ledger)
type BookingRepository interface {
	GetByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
