package get_start_times

import (
	"errors"
	"net/http"
	"time"

	"github.com/portico-living/court-booking-service/internal/api/handlers"
	"github.com/portico-living/court-booking-service/internal/domain"
	getStartTimes "github.com/portico-living/court-booking-service/internal/usecase/get_start_times"
)

const (
	msgMissingDate = "date query parameter is required"
	msgInvalidDate = "invalid date format, expected YYYY-MM-DD"
	msgInvalidHalf = "invalid half parameter, expected AM or PM"
)

type Handler struct {
	useCase GetStartTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetStartTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/start-times?date=YYYY-MM-DD&half=AM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /start-times - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /start-times - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	half, err := domain.ParseHalfDay(query.Get("half"))
	if err != nil {
		h.logger.Warn("GET /start-times - Invalid half parameter: %q", query.Get("half"))
		handlers.RespondBadRequest(w, msgInvalidHalf)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getStartTimes.Request{
		Date: date,
		Half: half,
	})
	if err != nil {
		switch {
		case errors.Is(err, getStartTimes.ErrInvalidInput):
			h.logger.Warn("GET /start-times - Invalid input: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /start-times - Failed to compute start times: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /start-times - Computed %d start times for date=%s half=%q",
		len(result.Times), dateStr, result.Half)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
