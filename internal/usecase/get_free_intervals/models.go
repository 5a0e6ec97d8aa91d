package get_free_intervals

import (
	"time"

	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// Request модель запроса свободных интервалов на дату
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response модель ответа со свободными интервалами
type Response struct {
	Date      time.Time      // Запрошенная дата
	Intervals []FreeInterval // Свободные интервалы, по возрастанию
}

// FreeInterval свободный промежуток внутри операционного окна
type FreeInterval struct {
	From timeofday.Minutes // Начало (включительно)
	To   timeofday.Minutes // Конец (не включительно)
}
