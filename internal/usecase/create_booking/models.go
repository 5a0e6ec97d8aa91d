package create_booking

import (
	"time"

	"github.com/portico-living/court-booking-service/internal/domain"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// Request модель заявки на бронирование корта
type Request struct {
	Requester domain.Identity   // Аутентифицированный пользователь
	Date      time.Time         // Дата бронирования (без времени)
	Start     timeofday.Minutes // Время начала
	End       timeofday.Minutes // Время окончания
}

// Response модель ответа на успешную заявку: созданная бронь плюс
// обновлённое расписание дня (по возрастанию времени начала) для отрисовки
// таблицы занятых слотов.
type Response struct {
	Booking     BookingInfo
	DaySchedule []BookingInfo
}

// BookingInfo бронь в ответе usecase
type BookingInfo struct {
	ID        int64
	UserID    int64
	Date      time.Time
	Start     timeofday.Minutes
	End       timeofday.Minutes
	Status    string
	CreatedAt time.Time
}

func fromDomainBooking(b *domain.Booking) BookingInfo {
	return BookingInfo{
		ID:        b.ID,
		UserID:    b.UserID,
		Date:      b.Date,
		Start:     b.Start,
		End:       b.End,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

func fromDomainBookings(bookings []*domain.Booking) []BookingInfo {
	infos := make([]BookingInfo, len(bookings))
	for i, b := range bookings {
		infos[i] = fromDomainBooking(b)
	}
	return infos
}
