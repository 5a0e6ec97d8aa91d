package get_free_intervals

import (
	"github.com/portico-living/court-booking-service/internal/domain"
	getFreeIntervals "github.com/portico-living/court-booking-service/internal/usecase/get_free_intervals"
)

// FreeIntervalResponse свободный интервал в HTTP ответе
type FreeIntervalResponse struct {
	From        string `json:"from"`        // "06:00"
	To          string `json:"to"`          // "09:30"
	FromDisplay string `json:"fromDisplay"` // "6:00 AM"
	ToDisplay   string `json:"toDisplay"`   // "9:30 AM"
}

// FreeIntervalsResponse HTTP response model
type FreeIntervalsResponse struct {
	Date          string                 `json:"date"`
	FreeIntervals []FreeIntervalResponse `json:"freeIntervals"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Пустой список сериализуется как [], не null.
func FromUseCaseResponse(resp *getFreeIntervals.Response) *FreeIntervalsResponse {
	intervals := make([]FreeIntervalResponse, 0, len(resp.Intervals))
	for _, iv := range resp.Intervals {
		intervals = append(intervals, FreeIntervalResponse{
			From:        iv.From.String(),
			To:          iv.To.String(),
			FromDisplay: iv.From.Display(),
			ToDisplay:   iv.To.Display(),
		})
	}

	return &FreeIntervalsResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		FreeIntervals: intervals,
	}
}
