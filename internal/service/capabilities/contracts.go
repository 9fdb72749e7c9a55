package capabilities

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// LinkageProber проверяет наличие привязки бронирований к строкам заказа
type LinkageProber interface {
	ProbeServiceLineLinkage(ctx context.Context) (domain.Capability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
