package validate_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	consultantRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/consultant"
	projectClient "github.com/m04kA/SMC-ReservationService/internal/integrations/projectservice"
)

// UseCase двухфазная проверка бронирования перед сохранением
//
// Фаза 1 синхронная: обязательные поля, диапазоны и остаток строки заказа по уже
// загруженным бронированиям. Фаза 2 обращается к хранилищу: консультант, компетенции,
// пересечения и периоды недоступности. Первое блокирующее нарушение прерывает проверку.
type UseCase struct {
	reservationRepo ReservationRepository
	consultantRepo  ConsultantRepository
	projectClient   ProjectServiceClient
	capabilities    CapabilityRegistry
	skills          SkillsChecker
	calendar        CalendarChecker
	quantity        QuantityChecker
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	consultantRepo ConsultantRepository,
	projectClient ProjectServiceClient,
	capabilities CapabilityRegistry,
	skills SkillsChecker,
	calendar CalendarChecker,
	quantity QuantityChecker,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		consultantRepo:  consultantRepo,
		projectClient:   projectClient,
		capabilities:    capabilities,
		skills:          skills,
		calendar:        calendar,
		quantity:        quantity,
		metrics:         metrics,
		logger:          logger,
	}
}

// Validate проверяет бронирование, ничего не записывая
// Ошибка возвращается только при сбое инфраструктуры, нарушения лежат в Result.Blocking
func (uc *UseCase) Validate(ctx context.Context, candidate *domain.Reservation) (*Result, error) {
	uc.logger.Info("ValidateReservation: id=%s, project=%s, consultant=%s, period=%s..%s, charge=%.2f",
		candidate.ID, candidate.ProjectID, candidate.ConsultantID, candidate.DateDebut, candidate.DateFin, candidate.ChargePct)

	result, err := uc.validate(ctx, candidate)
	if err != nil {
		uc.metrics.ObserveValidation(OutcomeError, "none")
		return nil, err
	}

	switch {
	case result.Blocking != nil:
		uc.logger.Warn("ValidateReservation: rejected: %s", result.Blocking.Message)
		uc.metrics.ObserveValidation(OutcomeRejected, KindLabel(result.Blocking))
	case len(result.Warnings) > 0:
		uc.logger.Info("ValidateReservation: accepted with %d warnings", len(result.Warnings))
		uc.metrics.ObserveValidation(OutcomeAcceptedWithWarnings, "none")
	default:
		uc.metrics.ObserveValidation(OutcomeAccepted, "none")
	}

	return result, nil
}

func (uc *UseCase) validate(ctx context.Context, candidate *domain.Reservation) (*Result, error) {
	result := &Result{
		Warnings: make([]string, 0),
		Linkage:  uc.capabilities.LinkageEnabled(ctx),
	}

	if v := checkStructure(candidate, result.Linkage); v != nil {
		result.Blocking = v
		return result, nil
	}

	lc := LineContext{Linkage: result.Linkage}
	if result.Linkage {
		line, reservations, v, err := uc.loadLine(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if v != nil {
			result.Blocking = v
			return result, nil
		}
		lc.Line = line
		lc.Reservations = reservations
		result.Line = line
		result.Planned = reservations
	}

	if v := uc.Phase1(candidate, lc); v != nil {
		result.Blocking = v
		return result, nil
	}

	warnings, err := uc.Phase2(ctx, candidate, lc.Line)
	if v, ok := domain.AsViolation(err); ok {
		result.Blocking = v
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	result.Warnings = append(result.Warnings, warnings...)

	return result, nil
}

// Phase1 синхронная фаза: структура бронирования и остаток строки заказа
func (uc *UseCase) Phase1(candidate *domain.Reservation, lc LineContext) *BlockingError {
	if v := checkStructure(candidate, lc.Linkage); v != nil {
		return v
	}

	if !lc.Linkage || lc.Line == nil {
		return nil
	}

	if v := checkLineBelongsToProject(candidate, lc.Line); v != nil {
		return v
	}

	if err := uc.quantity.Check(lc.Line, lc.Reservations, candidate); err != nil {
		if v, ok := domain.AsViolation(err); ok {
			return v
		}
		return domain.NewViolation(ErrOverAllocation, "%s", err.Error())
	}

	return nil
}

// Phase2 проверки с обращением к хранилищу
// Блокирующее нарушение возвращается как *BlockingError, предупреждения накапливаются
func (uc *UseCase) Phase2(ctx context.Context, candidate *domain.Reservation, line *domain.ServiceLine) ([]string, error) {
	warnings := make([]string, 0)

	consultant, err := uc.consultantRepo.GetByID(ctx, candidate.ConsultantID)
	if err != nil {
		if errors.Is(err, consultantRepo.ErrConsultantNotFound) {
			return nil, domain.NewViolation(ErrConsultantNotFound, "Consultant introuvable")
		}
		uc.logger.Error("ValidateReservation: failed to get consultant id=%s: %v", candidate.ConsultantID, err)
		return nil, fmt.Errorf("%w: get consultant: %v", ErrInternal, err)
	}
	if consultant.IsInactive() {
		warnings = append(warnings, fmt.Sprintf("Le consultant %s est inactif", consultant.FullName()))
	}

	if line != nil && len(line.Requirements) > 0 {
		skillWarnings, err := uc.skills.Check(ctx, candidate.ConsultantID, line.Requirements)
		if err != nil {
			return nil, uc.wrapCheckErr("skills", err)
		}
		warnings = append(warnings, skillWarnings...)
	}

	// отмененное бронирование не занимает календарь
	if candidate.IsCancelled() {
		return warnings, nil
	}

	var excludeID *uuid.UUID
	if candidate.ID != uuid.Nil {
		id := candidate.ID
		excludeID = &id
	}

	if err := uc.calendar.CheckOverlap(ctx, candidate.ConsultantID, candidate.DateDebut, candidate.DateFin, excludeID); err != nil {
		return nil, uc.wrapCheckErr("overlap", err)
	}

	periodWarnings, err := uc.calendar.CheckBlockedPeriods(ctx, candidate.ConsultantID, candidate.DateDebut, candidate.DateFin)
	if err != nil {
		return nil, uc.wrapCheckErr("blocked periods", err)
	}
	warnings = append(warnings, periodWarnings...)

	return warnings, nil
}

// loadLine загружает строку заказа и ее бронирования для сверки количества
func (uc *UseCase) loadLine(ctx context.Context, candidate *domain.Reservation) (*domain.ServiceLine, []*domain.Reservation, *BlockingError, error) {
	line, err := uc.projectClient.GetServiceLine(ctx, *candidate.PrestationID)
	if err != nil {
		if errors.Is(err, projectClient.ErrServiceLineNotFound) {
			return nil, nil, domain.NewViolation(ErrInvalidInput, "Prestation introuvable"), nil
		}
		uc.logger.Error("ValidateReservation: failed to get service line id=%s: %v", *candidate.PrestationID, err)
		return nil, nil, nil, fmt.Errorf("%w: get service line: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationsFilter{
		PrestationID: candidate.PrestationID,
	})
	if err != nil {
		uc.logger.Error("ValidateReservation: failed to list reservations of service line id=%s: %v", line.ID, err)
		return nil, nil, nil, fmt.Errorf("%w: list service line reservations: %v", ErrInternal, err)
	}

	return line, reservations, nil, nil
}

func (uc *UseCase) wrapCheckErr(check string, err error) error {
	if v, ok := domain.AsViolation(err); ok {
		return v
	}
	uc.logger.Error("ValidateReservation: %s check failed: %v", check, err)
	return fmt.Errorf("%w: %s check: %v", ErrInternal, check, err)
}
