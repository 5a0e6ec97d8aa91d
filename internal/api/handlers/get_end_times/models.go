package get_end_times

import (
	"github.com/portico-living/court-booking-service/internal/domain"
	getEndTimes "github.com/portico-living/court-booking-service/internal/usecase/get_end_times"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// SlotTimeResponse точка времени в HTTP ответе
type SlotTimeResponse struct {
	Value   string `json:"value"`   // "07:30"
	Display string `json:"display"` // "7:30 AM"
}

// EndTimesResponse HTTP response model
type EndTimesResponse struct {
	Date     string             `json:"date"`
	Start    string             `json:"start"`
	Half     string             `json:"half,omitempty"`
	EndTimes []SlotTimeResponse `json:"endTimes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Пустой список сериализуется как [], не null — для UI это валидное
// состояние "стартовое время уже занято, выберите другое".
func FromUseCaseResponse(resp *getEndTimes.Response) *EndTimesResponse {
	return &EndTimesResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Start:    resp.Start.String(),
		Half:     string(resp.Half),
		EndTimes: toSlotTimes(resp.Times),
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
