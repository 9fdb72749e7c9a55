package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	blockedPeriodRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/blockedperiod"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// WarningControlNotApplied предупреждение при отсутствии таблицы периодов недоступности
const WarningControlNotApplied = "Contrôle des périodes d'indisponibilité non appliqué : données indisponibles"

// Service обнаруживает конфликты календаря консультанта
type Service struct {
	reservations   ReservationRepository
	blockedPeriods BlockedPeriodRepository
	listLimit      int
	logger         Logger
}

// NewService создает новый экземпляр сервиса
// listLimit ограничивает число конфликтов в сообщении
func NewService(
	reservations ReservationRepository,
	blockedPeriods BlockedPeriodRepository,
	listLimit int,
	logger Logger,
) *Service {
	if listLimit <= 0 {
		listLimit = domain.DefaultConflictListLimit
	}
	return &Service{
		reservations:   reservations,
		blockedPeriods: blockedPeriods,
		listLimit:      listLimit,
		logger:         logger,
	}
}

// CheckOverlap ищет неотмененные бронирования консультанта, пересекающие [from, to]
// Редактируемое бронирование (excludeID) не учитывается
func (s *Service) CheckOverlap(ctx context.Context, consultantID uuid.UUID, from, to types.Date, excludeID *uuid.UUID) error {
	existing, err := s.reservations.List(ctx, domain.ReservationsFilter{
		ConsultantID: &consultantID,
		From:         &from,
		To:           &to,
		ExcludeID:    excludeID,
	})
	if err != nil {
		s.logger.Error("CheckOverlap: failed to list reservations for consultant=%s: %v", consultantID, err)
		return fmt.Errorf("%w: CheckOverlap - list reservations: %v", ErrInternal, err)
	}

	ranges := make([]string, 0, len(existing))
	for _, r := range existing {
		if r.IsCancelled() || (excludeID != nil && r.ID == *excludeID) || !r.Overlaps(from, to) {
			continue
		}
		ranges = append(ranges, formatRange(r.DateDebut, r.DateFin))
	}

	if len(ranges) == 0 {
		return nil
	}

	s.logger.Warn("CheckOverlap: consultant=%s has %d overlapping reservations for %s", consultantID, len(ranges), formatRange(from, to))
	return domain.NewViolation(domain.ErrOverlap,
		"Le consultant est déjà réservé sur cette période : %s", joinLimited(ranges, s.listLimit))
}

// CheckBlockedPeriods сверяет [from, to] с периодами недоступности консультанта
//
// Отпуск и обучение блокируют бронирование, пожелания дают предупреждение.
// Если таблица периодов отсутствует, проверка пропускается с предупреждением.
func (s *Service) CheckBlockedPeriods(ctx context.Context, consultantID uuid.UUID, from, to types.Date) ([]string, error) {
	warnings := make([]string, 0)

	periods, err := s.blockedPeriods.ListIntersecting(ctx, consultantID, from, to)
	if err != nil {
		if errors.Is(err, blockedPeriodRepo.ErrRelationMissing) {
			s.logger.Warn("CheckBlockedPeriods: blocked periods unavailable, control skipped: %v", err)
			return append(warnings, WarningControlNotApplied), nil
		}
		s.logger.Error("CheckBlockedPeriods: failed to list periods for consultant=%s: %v", consultantID, err)
		return nil, fmt.Errorf("%w: CheckBlockedPeriods - list periods: %v", ErrInternal, err)
	}

	blocking := make([]string, 0)
	advisory := make([]string, 0)
	for _, p := range periods {
		if !p.Overlaps(from, to) {
			continue
		}
		switch {
		case p.IsBlocking():
			blocking = append(blocking, formatPeriod(p))
		case p.IsAdvisory():
			advisory = append(advisory, formatPeriod(p))
		}
	}

	if len(blocking) > 0 {
		return nil, domain.NewViolation(domain.ErrBlockedPeriod,
			"Consultant indisponible sur cette période : %s", joinLimited(blocking, s.listLimit))
	}

	if len(advisory) > 0 {
		warnings = append(warnings, "Période à éviter (préférence) : "+joinLimited(advisory, s.listLimit))
	}

	return warnings, nil
}
