package quantity

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Reconciler сверяет планируемую нагрузку с проданным количеством строки заказа
type Reconciler struct {
	epsilon float64
}

// NewReconciler создает сверку с допуском epsilon на погрешность float
func NewReconciler(epsilon float64) *Reconciler {
	if epsilon < 0 {
		epsilon = domain.DefaultEpsilon
	}
	return &Reconciler{epsilon: epsilon}
}

// PlannedWithout сумма единиц бронирований строки, кроме бронирования excluded
func (r *Reconciler) PlannedWithout(line *domain.ServiceLine, reservations []*domain.Reservation, excluded *domain.Reservation) float64 {
	var planned float64
	for _, res := range reservations {
		if !res.LinkedTo(line.ID) {
			continue
		}
		if excluded != nil && res.ID == excluded.ID {
			continue
		}
		planned += res.Units()
	}
	return planned
}

// Check возвращает *domain.Violation, если бронирование превышает остаток к планированию
// Отмененное бронирование дает 0 единиц и проходит всегда
func (r *Reconciler) Check(line *domain.ServiceLine, reservations []*domain.Reservation, proposed *domain.Reservation) error {
	remaining := domain.RemainingUnits(line.Quantity, r.PlannedWithout(line, reservations, proposed))
	newUnits := proposed.Units()

	if newUnits > remaining+r.epsilon {
		return domain.NewViolation(domain.ErrOverAllocation,
			"Quantité vendue dépassée pour « %s » : %s unités demandées, reste à planifier : %s",
			line.Libelle, FormatUnits(newUnits), FormatUnits(remaining))
	}

	return nil
}
