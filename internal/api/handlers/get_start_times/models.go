package get_start_times

import (
	"github.com/portico-living/court-booking-service/internal/domain"
	getStartTimes "github.com/portico-living/court-booking-service/internal/usecase/get_start_times"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// SlotTimeResponse точка времени в HTTP ответе: машинное значение для
// формы бронирования плюс отображаемая метка для выпадающего списка
type SlotTimeResponse struct {
	Value   string `json:"value"`   // "06:15"
	Display string `json:"display"` // "6:15 AM"
}

// StartTimesResponse HTTP response model
type StartTimesResponse struct {
	Date       string             `json:"date"`
	Half       string             `json:"half,omitempty"`
	StartTimes []SlotTimeResponse `json:"startTimes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Пустой список сериализуется как [], не null.
func FromUseCaseResponse(resp *getStartTimes.Response) *StartTimesResponse {
	return &StartTimesResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		Half:       string(resp.Half),
		StartTimes: toSlotTimes(resp.Times),
	}
}

func toSlotTimes(times []timeofday.Minutes) []SlotTimeResponse {
	slots := make([]SlotTimeResponse, 0, len(times))
	for _, t := range times {
		slots = append(slots, SlotTimeResponse{
			Value:   t.String(),
			Display: t.Display(),
		})
	}
	return slots
}
