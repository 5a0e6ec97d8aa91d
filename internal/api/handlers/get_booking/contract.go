package get_booking

import (
	"context"

	"github.com/portico-living/court-booking-service/internal/domain"
	"github.com/portico-living/court-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id int64, requester domain.Identity) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
