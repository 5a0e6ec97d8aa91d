package get_day_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/portico-living/court-booking-service/internal/api/handlers"
	"github.com/portico-living/court-booking-service/internal/api/middleware"
	"github.com/portico-living/court-booking-service/internal/domain"
	"github.com/portico-living/court-booking-service/internal/service/bookings"
	"github.com/portico-living/court-booking-service/internal/service/bookings/models"
)

const (
	msgMissingDate     = "date query parameter is required"
	msgInvalidDate     = "invalid date format, expected YYYY-MM-DD"
	msgMissingIdentity = "missing user identity"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/day?date=YYYY-MM-DD&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /bookings/day - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /bookings/day - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/day - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	serviceReq := &models.GetDayBookingsRequest{
		Requester:       identity,
		Date:            date,
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	result, err := h.service.GetDayBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/day - Invalid input: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /bookings/day - Failed to get schedule: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/day - Schedule retrieved successfully: date=%s, count=%d",
		dateStr, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
