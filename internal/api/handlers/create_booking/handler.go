package create_booking

import (
	"errors"
	"net/http"

	"github.com/portico-living/court-booking-service/internal/api/handlers"
	"github.com/portico-living/court-booking-service/internal/api/middleware"
	createBooking "github.com/portico-living/court-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMalformedDateTime  = "malformed date or time, expected YYYY-MM-DD and HH:MM"
	msgMissingIdentity    = "missing user identity"
	msgInvalidInput       = "invalid booking request"
	msgOutsideHours       = "requested time is outside court operating hours"
	msgMaxDuration        = "booking exceeds the maximum allowed duration"
	msgAdvanceWindow      = "booking date is outside the allowed booking window"
	msgRestrictedWindow   = "this time is unavailable on weekends and public holidays"
	msgDuplicateBooking   = "you already have a booking on this date"
	msgOverlapConflict    = "the requested time overlaps an existing booking"
	msgLedgerUnavailable  = "booking storage temporarily unavailable, please retry"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(identity)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgMalformedDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, &req, identity.UserID, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, date=%s",
		result.Booking.ID, identity.UserID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// respondUseCaseError транслирует ошибки правил в HTTP ответы.
// Каждое нарушение политики уходит с конкретным ruleId — UI рендерит по
// нему точное сообщение, ошибки не схлопываются в общую.
func (h *Handler) respondUseCaseError(w http.ResponseWriter, req *CreateBookingRequest, userID int64, err error) {
	switch {
	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: user_id=%d, date=%s", userID, req.Date)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createBooking.ErrOutsideOperatingHours):
		h.logger.Warn("POST /bookings - Outside operating hours: user_id=%d, %s-%s", userID, req.StartTime, req.EndTime)
		respondPolicyViolation(w, http.StatusBadRequest, msgOutsideHours, RuleOutsideOperatingHours)

	case errors.Is(err, createBooking.ErrExceedsMaxDuration):
		h.logger.Warn("POST /bookings - Exceeds max duration: user_id=%d, %s-%s", userID, req.StartTime, req.EndTime)
		respondPolicyViolation(w, http.StatusBadRequest, msgMaxDuration, RuleExceedsMaxDuration)

	case errors.Is(err, createBooking.ErrExceedsAdvanceWindow):
		h.logger.Warn("POST /bookings - Outside advance window: user_id=%d, date=%s", userID, req.Date)
		respondPolicyViolation(w, http.StatusBadRequest, msgAdvanceWindow, RuleExceedsAdvanceWindow)

	case errors.Is(err, createBooking.ErrRestrictedWindow):
		h.logger.Warn("POST /bookings - Restricted window: user_id=%d, date=%s, %s-%s",
			userID, req.Date, req.StartTime, req.EndTime)
		respondPolicyViolation(w, http.StatusBadRequest, msgRestrictedWindow, RuleRestrictedWindow)

	case errors.Is(err, createBooking.ErrDuplicateBooking):
		h.logger.Warn("POST /bookings - Duplicate booking: user_id=%d, date=%s", userID, req.Date)
		respondPolicyViolation(w, http.StatusConflict, msgDuplicateBooking, RuleDuplicateBookingForUser)

	case errors.Is(err, createBooking.ErrOverlapConflict):
		h.logger.Warn("POST /bookings - Overlap conflict: user_id=%d, date=%s, %s-%s",
			userID, req.Date, req.StartTime, req.EndTime)
		respondPolicyViolation(w, http.StatusConflict, msgOverlapConflict, RuleOverlapConflict)

	case errors.Is(err, createBooking.ErrLedgerWrite):
		h.logger.Error("POST /bookings - Ledger write failure: user_id=%d, date=%s, error=%v", userID, req.Date, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgLedgerUnavailable)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, date=%s, error=%v",
			userID, req.Date, err)
		handlers.RespondInternalError(w)
	}
}

func respondPolicyViolation(w http.ResponseWriter, status int, message, ruleID string) {
	handlers.RespondJSON(w, status, PolicyViolationResponse{
		Code:    status,
		Message: message,
		RuleID:  ruleID,
	})
}
