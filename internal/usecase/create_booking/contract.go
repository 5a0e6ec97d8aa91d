package create_booking

import (
	"context"
	"time"

	"github.com/portico-living/court-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований (booking ledger).
// Validator — единственный путь записи в ledger.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetByDate получает бронирования на дату по возрастанию времени начала;
	// внутри транзакции строки блокируются (FOR UPDATE)
	GetByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Booking, error)
}

// HolidayChecker интерфейс справочника публичных праздников
type HolidayChecker interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
