package get_start_times

import (
	"time"

	"github.com/portico-living/court-booking-service/internal/domain"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// Request модель запроса стартовых времён на дату
type Request struct {
	Date time.Time      // Дата (без времени)
	Half domain.HalfDay // AM/PM-фильтр, пустой = без фильтра
}

// Response модель ответа со списком доступных стартовых времён.
// Пустой список — валидный результат ("нет доступных времён"), а не ошибка.
type Response struct {
	Date  time.Time
	Half  domain.HalfDay
	Times []timeofday.Minutes // По возрастанию
}
