package get_end_times

import (
	"github.com/portico-living/court-booking-service/internal/domain"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// enumerateEndTimes перечисляет допустимые времена окончания для выбранного
// старта: только внутри того свободного интервала, который содержит старт —
// бронь не может перешагнуть чужую бронь. Если старт не попадает ни в один
// свободный интервал (гонка с другой бронью), результат пуст.
//
// Шаг отсчитывается от самого старта: start+g, start+2g, ..., вплоть до
// конца интервала включительно (конец — допустимое время окончания, т.к.
// интервалы полуоткрытые).
func enumerateEndTimes(
	free []domain.Interval,
	start timeofday.Minutes,
	granularity int,
	half domain.HalfDay,
) []timeofday.Minutes {
	step := timeofday.Minutes(granularity)
	times := make([]timeofday.Minutes, 0)

	for _, iv := range free {
		if !iv.Contains(start) {
			continue
		}

		for m := start + step; m <= iv.End; m += step {
			if half.Matches(m) {
				times = append(times, m)
			}
		}
		break
	}

	return times
}
