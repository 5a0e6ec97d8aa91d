package create_booking

import (
	"time"

	"github.com/portico-living/court-booking-service/internal/domain"
	createBooking "github.com/portico-living/court-booking-service/internal/usecase/create_booking"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// Коды правил в ответе об отказе. UI показывает по ним конкретное
// сообщение, общая ошибка "не получилось" не используется.
const (
	RuleOutsideOperatingHours   = "OutsideOperatingHours"
	RuleExceedsMaxDuration      = "ExceedsMaxDuration"
	RuleExceedsAdvanceWindow    = "ExceedsAdvanceWindow"
	RuleRestrictedWindow        = "RestrictedWeekendHolidayWindow"
	RuleDuplicateBookingForUser = "DuplicateBookingForUser"
	RuleOverlapConflict         = "OverlapConflict"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date      string `json:"date"`      // "2026-03-14"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:30"
}

// BookingResponse бронь в HTTP ответе
type BookingResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// CreateBookingResponse HTTP response model: созданная бронь плюс обновлённое
// расписание дня по возрастанию времени начала
type CreateBookingResponse struct {
	Booking     BookingResponse   `json:"booking"`
	DaySchedule []BookingResponse `json:"daySchedule"`
}

// PolicyViolationResponse отказ с кодом нарушенного правила
type PolicyViolationResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	RuleID  string `json:"ruleId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(requester domain.Identity) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	start, err := timeofday.Parse(r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := timeofday.Parse(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Requester: requester,
		Date:      date,
		Start:     start,
		End:       end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	schedule := make([]BookingResponse, 0, len(resp.DaySchedule))
	for _, b := range resp.DaySchedule {
		schedule = append(schedule, fromBookingInfo(b))
	}

	return &CreateBookingResponse{
		Booking:     fromBookingInfo(resp.Booking),
		DaySchedule: schedule,
	}
}

func fromBookingInfo(b createBooking.BookingInfo) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.Start.String(),
		EndTime:   b.End.String(),
		Status:    b.Status,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
