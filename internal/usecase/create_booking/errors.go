package create_booking

import "errors"

// Ошибки правил бронирования. Каждое правило отклоняет заявку со своим
// отдельным кодом — наружу они никогда не схлопываются в общую ошибку.
var (
	// ErrInvalidInput возвращается при некорректных входных данных,
	// включая пустую длительность (end <= start)
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за
	// операционное окно корта
	ErrOutsideOperatingHours = errors.New("create_booking: outside operating hours")

	// ErrExceedsMaxDuration возвращается при превышении максимальной
	// длительности бронирования
	ErrExceedsMaxDuration = errors.New("create_booking: exceeds max duration")

	// ErrExceedsAdvanceWindow возвращается, когда дата вне допустимого окна
	// [сегодня, сегодня + max_advance_days]
	ErrExceedsAdvanceWindow = errors.New("create_booking: date outside advance window")

	// ErrRestrictedWindow возвращается, когда заявка резидента пересекает
	// закрытое окно выходного дня или праздника
	ErrRestrictedWindow = errors.New("create_booking: restricted weekend/holiday window")

	// ErrDuplicateBooking возвращается, когда у резидента уже есть активная
	// бронь на эту дату (одна бронь на пользователя в день)
	ErrDuplicateBooking = errors.New("create_booking: duplicate booking for user")

	// ErrOverlapConflict возвращается при пересечении с существующей бронью
	ErrOverlapConflict = errors.New("create_booking: overlap conflict")

	// ErrLedgerWrite возвращается при недоступности хранилища на записи.
	// Гарантируется, что частичное состояние не закоммичено.
	ErrLedgerWrite = errors.New("create_booking: ledger write failure")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
