package save_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/pgerr"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
)

const msgConcurrentBooking = "Le consultant vient d'être réservé en parallèle sur cette période, veuillez réessayer"

// UseCase use case создания и изменения бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	validator       Validator
	views           ProjectViewLoader
	capabilities    CapabilityRegistry
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	validator Validator,
	views ProjectViewLoader,
	capabilities CapabilityRegistry,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		validator:       validator,
		views:           views,
		capabilities:    capabilities,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute проверяет и сохраняет бронирование
//
// Проверка и запись выполняются в одной сериализуемой транзакции: строки консультанта
// блокируются на время проверки пересечений. При блокирующем нарушении ничего не
// записывается и возвращается *validate_reservation.BlockingError.
//
// Изменение не может перевести бронирование в конечный статус: для этого есть
// подтверждаемая смена статуса. Пустой статус при изменении сохраняет текущий.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	candidate := req.toDomain()
	creating := req.ID == nil
	uc.logger.Info("SaveReservation: create=%t, id=%s, project=%s, consultant=%s, period=%s..%s, charge=%.2f, status=%s",
		creating, candidate.ID, candidate.ProjectID, candidate.ConsultantID, candidate.DateDebut, candidate.DateFin,
		candidate.ChargePct, candidate.Status)

	// Без подтвержденного состояния привязки запись потеряла бы prestation_id
	linkage := uc.capabilities.ServiceLineLinkage(ctx)
	if !linkage.IsKnown() {
		uc.logger.Error("SaveReservation: service line linkage is %s, write refused", linkage)
		return nil, fmt.Errorf("%w: service line linkage is %s", ErrInternal, linkage)
	}

	var (
		saved    *domain.Reservation
		warnings []string
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if !creating {
			existing, err := uc.reservationRepo.GetByID(txCtx, candidate.ID)
			if err != nil {
				if errors.Is(err, reservationRepo.ErrReservationNotFound) {
					return ErrReservationNotFound
				}
				return fmt.Errorf("%w: get reservation: %v", ErrInternal, err)
			}
			if candidate.Status == "" {
				candidate.Status = existing.Status
			}
			if existing.Status.IsTerminal() && candidate.Status != existing.Status {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, existing.Status, candidate.Status)
			}
			if candidate.Status != existing.Status && candidate.Status.RequiresConfirmation() {
				return fmt.Errorf("%w: %s -> %s", ErrConfirmationRequired, existing.Status, candidate.Status)
			}
			candidate.CreatedAt = existing.CreatedAt
		}

		result, err := uc.validator.Validate(txCtx, candidate)
		if err != nil {
			return fmt.Errorf("%w: validate: %v", ErrInternal, err)
		}
		if result.Blocking != nil {
			return result.Blocking
		}
		warnings = result.Warnings

		if !linkage.Enabled() {
			candidate.PrestationID = nil
		}

		if creating {
			saved, err = uc.reservationRepo.Create(txCtx, candidate)
		} else {
			saved, err = uc.reservationRepo.Update(txCtx, candidate)
		}
		if err != nil {
			return uc.mapWriteErr(err)
		}
		return nil
	})
	if err != nil {
		if pgerr.IsSerializationFailure(err) {
			err = domain.NewViolation(domain.ErrOverlap, msgConcurrentBooking)
		}
		if v, ok := domain.AsViolation(err); ok {
			uc.logger.Warn("SaveReservation: rejected: %s", v.Message)
			return nil, v
		}
		if errors.Is(err, ErrReservationNotFound) || errors.Is(err, ErrInvalidTransition) ||
			errors.Is(err, ErrConfirmationRequired) {
			uc.logger.Warn("SaveReservation: %v", err)
			return nil, err
		}
		uc.logger.Error("SaveReservation: failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	}

	uc.logger.Info("SaveReservation: saved id=%s, warnings=%d", saved.ID, len(warnings))

	return &Response{
		Reservation: saved,
		Warnings:    warnings,
		Project:     uc.reload(ctx, saved),
	}, nil
}

func (uc *UseCase) mapWriteErr(err error) error {
	switch {
	case errors.Is(err, reservationRepo.ErrOverlapConflict), errors.Is(err, reservationRepo.ErrConcurrentUpdate):
		return domain.NewViolation(domain.ErrOverlap, msgConcurrentBooking)
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		return ErrReservationNotFound
	default:
		return fmt.Errorf("%w: write reservation: %v", ErrInternal, err)
	}
}

// reload перечитывает бронирования проекта, чтобы статистика строк соответствовала записи
// Ошибка перезагрузки не отменяет уже сохраненное бронирование
func (uc *UseCase) reload(ctx context.Context, saved *domain.Reservation) *reservations.ProjectView {
	view, err := uc.views.GetProjectView(ctx, saved.ProjectID, reservations.ViewFilter{})
	if err != nil {
		uc.logger.Error("SaveReservation: reload of project=%s failed: %v", saved.ProjectID, err)
		return nil
	}
	return view
}
