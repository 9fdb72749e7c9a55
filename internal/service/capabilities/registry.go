package capabilities

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Registry хранит результат проверки возможностей схемы
//
// Пока результат неизвестен (ошибка проверки), каждое обращение повторяет проверку,
// а вызывающий код считает возможность отключенной.
type Registry struct {
	prober LinkageProber
	log    Logger

	mu      sync.RWMutex
	linkage domain.Capability
}

// NewRegistry создает реестр с неизвестным состоянием
func NewRegistry(prober LinkageProber, log Logger) *Registry {
	return &Registry{
		prober:  prober,
		log:     log,
		linkage: domain.CapabilityUnknown,
	}
}

// Probe выполняет проверку и запоминает результат
func (r *Registry) Probe(ctx context.Context) domain.Capability {
	capability, err := r.prober.ProbeServiceLineLinkage(ctx)
	if err != nil {
		r.log.Warn("Registry.Probe: service line linkage probe failed: %v", err)
		capability = domain.CapabilityUnknown
	}

	r.mu.Lock()
	r.linkage = capability
	r.mu.Unlock()

	r.log.Info("Registry.Probe: service_line_linkage=%s", capability)
	return capability
}

// ServiceLineLinkage возвращает состояние привязки к строкам заказа
func (r *Registry) ServiceLineLinkage(ctx context.Context) domain.Capability {
	r.mu.RLock()
	capability := r.linkage
	r.mu.RUnlock()

	if capability.IsKnown() {
		return capability
	}
	return r.Probe(ctx)
}

// LinkageEnabled true только при подтвержденной поддержке
func (r *Registry) LinkageEnabled(ctx context.Context) bool {
	return r.ServiceLineLinkage(ctx).Enabled()
}
