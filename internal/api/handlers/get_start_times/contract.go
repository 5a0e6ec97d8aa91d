package get_start_times

import (
	"context"

	getStartTimes "github.com/portico-living/court-booking-service/internal/usecase/get_start_times"
)

type GetStartTimesUseCase interface {
	Execute(ctx context.Context, req *getStartTimes.Request) (*getStartTimes.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
