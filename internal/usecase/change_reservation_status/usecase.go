package change_reservation_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
)

// UseCase use case смены статуса бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	views           ProjectViewLoader
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	views ProjectViewLoader,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		views:           views,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute меняет только статус бронирования, повторной проверки нет
// Переход в annulee или terminee необратим и выполняется лишь с подтверждением
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeReservationStatus: id=%s, status=%s, confirmed=%t", req.ID, req.Status, req.Confirmed)

	status, err := domain.ParseReservationStatus(req.Status)
	if err != nil {
		uc.logger.Warn("ChangeReservationStatus: invalid status %q", req.Status)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	if status.RequiresConfirmation() && !req.Confirmed {
		uc.logger.Warn("ChangeReservationStatus: status %s not confirmed for id=%s", status, req.ID)
		return nil, ErrConfirmationRequired
	}

	var (
		reservation *domain.Reservation
		changed     bool
	)

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := uc.reservationRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: get reservation: %v", ErrInternal, err)
		}
		reservation = existing

		if existing.Status == status {
			return nil
		}
		if existing.Status.IsTerminal() {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, existing.Status, status)
		}

		if err := uc.reservationRepo.UpdateStatus(txCtx, req.ID, status); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: update status: %v", ErrInternal, err)
		}
		reservation.Status = status
		changed = true
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrInvalidTransition):
			uc.logger.Warn("ChangeReservationStatus: %v", err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("ChangeReservationStatus: failed: %v", err)
			return nil, err
		default:
			uc.logger.Error("ChangeReservationStatus: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
		}
	}

	if changed {
		uc.logger.Info("ChangeReservationStatus: id=%s is now %s", reservation.ID, status)
	}

	return &Response{
		Reservation: reservation,
		Changed:     changed,
		Project:     uc.reload(ctx, reservation),
	}, nil
}

func (uc *UseCase) reload(ctx context.Context, reservation *domain.Reservation) *reservations.ProjectView {
	view, err := uc.views.GetProjectView(ctx, reservation.ProjectID, reservations.ViewFilter{})
	if err != nil {
		uc.logger.Error("ChangeReservationStatus: reload of project=%s failed: %v", reservation.ProjectID, err)
		return nil
	}
	return view
}
