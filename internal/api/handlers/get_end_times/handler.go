package get_end_times

import (
	"errors"
	"net/http"
	"time"

	"github.com/portico-living/court-booking-service/internal/api/handlers"
	"github.com/portico-living/court-booking-service/internal/domain"
	getEndTimes "github.com/portico-living/court-booking-service/internal/usecase/get_end_times"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

const (
	msgMissingDate  = "date query parameter is required"
	msgInvalidDate  = "invalid date format, expected YYYY-MM-DD"
	msgMissingStart = "start query parameter is required"
	msgInvalidStart = "invalid start time format, expected HH:MM"
	msgInvalidHalf  = "invalid half parameter, expected AM or PM"
)

type Handler struct {
	useCase GetEndTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetEndTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/end-times?date=YYYY-MM-DD&start=HH:MM&half=PM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /end-times - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /end-times - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startStr := query.Get("start")
	if startStr == "" {
		h.logger.Warn("GET /end-times - Missing start parameter")
		handlers.RespondBadRequest(w, msgMissingStart)
		return
	}

	start, err := timeofday.Parse(startStr)
	if err != nil {
		h.logger.Warn("GET /end-times - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	half, err := domain.ParseHalfDay(query.Get("half"))
	if err != nil {
		h.logger.Warn("GET /end-times - Invalid half parameter: %q", query.Get("half"))
		handlers.RespondBadRequest(w, msgInvalidHalf)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getEndTimes.Request{
		Date:  date,
		Start: start,
		Half:  half,
	})
	if err != nil {
		switch {
		case errors.Is(err, getEndTimes.ErrInvalidInput):
			h.logger.Warn("GET /end-times - Invalid input: date=%s start=%s", dateStr, startStr)
			handlers.RespondBadRequest(w, msgInvalidStart)

		default:
			h.logger.Error("GET /end-times - Failed to compute end times: date=%s start=%s, error=%v",
				dateStr, startStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /end-times - Computed %d end times for date=%s start=%s",
		len(result.Times), dateStr, startStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
