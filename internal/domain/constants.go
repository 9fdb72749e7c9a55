package domain

// Ограничения входных данных
const (
	MinChargePct        = 0.0
	MaxChargePct        = 100.0
	MaxNotesLength      = 2000
	MaxRoleProjetLength = 255
)

// Параметры проверок по умолчанию
const (
	// DefaultEpsilon допуск сравнения единиц нагрузки
	DefaultEpsilon = 1e-9

	// DefaultConflictListLimit сколько конфликтов перечислять в сообщении
	DefaultConflictListLimit = 3
)

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []ReservationStatus{
	StatusPrevue,
	StatusConfirmee,
	StatusEnCours,
	StatusTerminee,
	StatusAnnulee,
}

// InactiveStatuses статусы, исключаемые из планирования и видимых списков
var InactiveStatuses = []ReservationStatus{
	StatusAnnulee,
}
