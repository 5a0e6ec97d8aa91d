package get_start_times

import (
	"github.com/portico-living/court-booking-service/internal/domain"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// enumerateStartTimes перечисляет допустимые стартовые времена по свободным
// интервалам с фиксированным шагом granularity.
//
// Шаг отсчитывается строго от нижней границы каждого свободного интервала,
// без округления к "красивым" значениям: свободный интервал [06:10, 07:00)
// при шаге 15 даёт 06:10, 06:25, 06:40, 06:55. Интервал короче шага не даёт
// ни одного слота — это корректный результат, а не ошибка.
func enumerateStartTimes(
	free []domain.Interval,
	window domain.OperatingWindow,
	granularity int,
	half domain.HalfDay,
) []timeofday.Minutes {
	step := timeofday.Minutes(granularity)
	times := make([]timeofday.Minutes, 0)

	for _, iv := range free {
		// Ограничиваем операционным окном
		from := iv.Start
		if from < window.DayStart {
			from = window.DayStart
		}
		to := iv.End
		if to > window.DayEnd {
			to = window.DayEnd
		}

		for m := from; m < to; m += step {
			if half.Matches(m) {
				times = append(times, m)
			}
		}
	}

	return times
}
