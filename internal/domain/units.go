package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// BusinessDays считает рабочие дни (пн-пт) в периоде [from, to] включительно
// Возвращает 0 для перевернутого или незаданного периода
func BusinessDays(from, to types.Date) int {
	if from.IsZero() || to.IsZero() || to.IsBefore(from) {
		return 0
	}

	total := from.DaysUntil(to) + 1
	fullWeeks := total / 7
	days := fullWeeks * 5

	// Остаток неполной недели считаем по дням
	for d := from.AddDays(fullWeeks * 7); !d.IsAfter(to); d = d.AddDays(1) {
		if isWeekday(d.Weekday()) {
			days++
		}
	}

	return days
}

func isWeekday(wd time.Weekday) bool {
	return wd != time.Saturday && wd != time.Sunday
}

// UnitsBetween единицы нагрузки: рабочие дни × charge/100
// Отмененное бронирование не потребляет единиц
func UnitsBetween(from, to types.Date, chargePct float64, status ReservationStatus) float64 {
	if status == StatusAnnulee {
		return 0
	}
	days := BusinessDays(from, to)
	if days == 0 {
		return 0
	}
	return float64(days) * chargePct / 100
}

// ReservationUnits то же, что UnitsBetween, для дат в виде строк YYYY-MM-DD
// Отсутствующая или нераспознанная дата дает 0
func ReservationUnits(dateDebut, dateFin string, chargePct float64, status ReservationStatus) float64 {
	from, err := types.NewDateFromString(dateDebut)
	if err != nil {
		return 0
	}
	to, err := types.NewDateFromString(dateFin)
	if err != nil {
		return 0
	}
	return UnitsBetween(from, to, chargePct, status)
}
