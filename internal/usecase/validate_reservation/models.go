package validate_reservation

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Result результат проверки бронирования
type Result struct {
	Blocking *BlockingError        // nil, если бронирование можно сохранить
	Warnings []string              // не блокируют сохранение
	Line     *domain.ServiceLine   // строка заказа, если привязка поддерживается
	Linkage  bool                  // хранилище поддерживает привязку к строке заказа
	Planned  []*domain.Reservation // бронирования строки на момент проверки
}

// Accepted true, если блокирующих нарушений нет
func (r *Result) Accepted() bool {
	return r.Blocking == nil
}

// LineContext данные строки заказа, загруженные до синхронной проверки
type LineContext struct {
	Linkage      bool
	Line         *domain.ServiceLine
	Reservations []*domain.Reservation
}
