package get_end_times

import (
	"time"

	"github.com/portico-living/court-booking-service/internal/domain"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// Request модель запроса времён окончания для выбранного старта
type Request struct {
	Date  time.Time         // Дата (без времени)
	Start timeofday.Minutes // Выбранное время начала
	Half  domain.HalfDay    // AM/PM-фильтр, пустой = без фильтра
}

// Response модель ответа со списком допустимых времён окончания.
// Пустой список означает, что выбранный старт больше не внутри свободного
// интервала (например, другая бронь успела его занять) либо всё отфильтровано.
type Response struct {
	Date  time.Time
	Start timeofday.Minutes
	Half  domain.HalfDay
	Times []timeofday.Minutes // По возрастанию
}
