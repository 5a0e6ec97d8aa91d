package create_booking

import (
	"fmt"
	"time"

	"github.com/portico-living/court-booking-service/internal/domain"
)

// validateRequest валидирует входные данные заявки.
// Пустая длительность (end <= start) — ошибка входных данных, а не
// нарушение политики, поэтому отклоняется здесь.
func validateRequest(req *Request) error {
	if req.Requester.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.Start.Valid() {
		return fmt.Errorf("%w: start time out of range", ErrInvalidInput)
	}

	if !req.End.Valid() {
		return fmt.Errorf("%w: end time out of range", ErrInvalidInput)
	}

	if req.End <= req.Start {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}

	return nil
}

// checkOperatingWindow проверяет, что интервал внутри операционного окна
func checkOperatingWindow(iv domain.Interval, window domain.OperatingWindow) error {
	if iv.Start < window.DayStart || iv.End > window.DayEnd {
		return fmt.Errorf("%w: court hours are %s-%s",
			ErrOutsideOperatingHours, window.DayStart, window.DayEnd)
	}
	return nil
}

// checkMaxDuration проверяет максимальную длительность брони
func checkMaxDuration(iv domain.Interval, maxMinutes int) error {
	if iv.Duration() > maxMinutes {
		return fmt.Errorf("%w: booking may not exceed %d minutes", ErrExceedsMaxDuration, maxMinutes)
	}
	return nil
}

// checkAdvanceWindow проверяет, что дата в окне [сегодня, сегодня + maxDays].
// Дата в прошлом — та же ошибка: она вне окна с другой стороны.
func checkAdvanceWindow(bookingDate, now time.Time, maxDays int) error {
	today := dateOnly(now)
	date := dateOnly(bookingDate)

	if date.Before(today) {
		return fmt.Errorf("%w: booking date is in the past", ErrExceedsAdvanceWindow)
	}

	maxDate := today.AddDate(0, 0, maxDays)
	if date.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrExceedsAdvanceWindow, maxDays)
	}

	return nil
}

// checkRestrictedWindows отклоняет заявку, пересекающую любое из закрытых
// окон выходного дня / праздника. Проверка по реальному пересечению:
// граничащие интервалы допустимы.
func checkRestrictedWindows(iv domain.Interval, restricted []domain.Interval) error {
	for _, rw := range restricted {
		if iv.Overlaps(rw) {
			return fmt.Errorf("%w: %s-%s is closed on weekends and public holidays",
				ErrRestrictedWindow, rw.Start, rw.End)
		}
	}
	return nil
}

// checkDuplicateForUser проверяет правило "одна бронь на пользователя в день"
func checkDuplicateForUser(userID int64, bookings []*domain.Booking) error {
	for _, b := range bookings {
		if b.IsActive() && b.UserID == userID {
			return fmt.Errorf("%w: user already holds booking %s-%s on this date",
				ErrDuplicateBooking, b.Start, b.End)
		}
	}
	return nil
}

// checkOverlap проверяет пересечение с существующими активными бронями.
// Полуоткрытые интервалы со строгими неравенствами: бронь, заканчивающаяся
// ровно там, где начинается заявка, не конфликтует.
func checkOverlap(iv domain.Interval, bookings []*domain.Booking) error {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if iv.Overlaps(b.Interval()) {
			return fmt.Errorf("%w: intersects existing booking %s-%s",
				ErrOverlapConflict, b.Start, b.End)
		}
	}
	return nil
}

// isWeekend проверяет, что дата приходится на субботу или воскресенье
func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// dateOnly нормализует значение до календарной даты в UTC. Даты сравниваются
// по календарной идентичности: дата заявки парсится как полночь UTC, а
// "сегодня" живёт в часовом поясе корта, поэтому сравнивать абсолютные
// моменты нельзя.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
