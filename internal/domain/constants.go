package domain

// Reference deployment policy defaults. Actual values come from config.toml;
// these are applied when a section is omitted.
const (
	DefaultDayStart           = "06:00"
	DefaultDayEnd             = "22:00"
	DefaultGranularityMinutes = 15
	DefaultMaxDurationMinutes = 90
	DefaultMaxAdvanceDays     = 7
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих корт
// Используется при фильтрации бронирований для расчёта свободных интервалов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByAdmin,
}
