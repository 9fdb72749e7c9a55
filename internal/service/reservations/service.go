package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	projectClient "github.com/m04kA/SMC-ReservationService/internal/integrations/projectservice"
)

// Service сервис чтения бронирований
type Service struct {
	reservationRepo ReservationRepository
	projectClient   ProjectServiceClient
	capabilities    CapabilityRegistry
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	projectClient ProjectServiceClient,
	capabilities CapabilityRegistry,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		projectClient:   projectClient,
		capabilities:    capabilities,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID, включая отмененные
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	s.logger.Info("GetByID: fetching reservation id=%s", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return reservation, nil
}

// GetProjectView загружает бронирования проекта и пересчитывает статистику строк заказа
//
// Отмененные бронирования скрыты, если не запрошены явно. Статистика всегда строится
// по всем бронированиям проекта, независимо от фильтра по строке заказа.
func (s *Service) GetProjectView(ctx context.Context, projectID uuid.UUID, filter ViewFilter) (*ProjectView, error) {
	linkage := s.capabilities.LinkageEnabled(ctx)
	s.logger.Info("GetProjectView: project=%s, prestation=%v, include_cancelled=%t, linkage=%t",
		projectID, filter.PrestationID, filter.IncludeCancelled, linkage)

	var (
		all   []*domain.Reservation
		lines []*domain.ServiceLine
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = s.reservationRepo.List(gctx, domain.ReservationsFilter{
			ProjectID:        &projectID,
			IncludeCancelled: true,
		})
		if err != nil {
			s.logger.Error("GetProjectView: failed to list reservations of project=%s: %v", projectID, err)
			return fmt.Errorf("%w: GetProjectView - list reservations: %v", ErrInternal, err)
		}
		return nil
	})
	if linkage {
		g.Go(func() error {
			var err error
			lines, err = s.projectClient.ListServiceLines(gctx, projectID)
			if err != nil {
				if errors.Is(err, projectClient.ErrProjectNotFound) {
					s.logger.Warn("GetProjectView: project=%s not found", projectID)
					return ErrProjectNotFound
				}
				s.logger.Error("GetProjectView: failed to list service lines of project=%s: %v", projectID, err)
				return fmt.Errorf("%w: GetProjectView - list service lines: %v", ErrInternal, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &ProjectView{
		ProjectID:    projectID,
		Reservations: visible(all, filter, linkage),
		ServiceLines: make([]domain.ServiceLineStats, 0, len(lines)),
		Linkage:      linkage,
	}
	for _, line := range lines {
		view.ServiceLines = append(view.ServiceLines, domain.ComputeServiceLineStats(line, all))
	}

	return view, nil
}

func visible(all []*domain.Reservation, filter ViewFilter, linkage bool) []*domain.Reservation {
	result := make([]*domain.Reservation, 0, len(all))
	for _, r := range all {
		if r.IsCancelled() && !filter.IncludeCancelled {
			continue
		}
		if linkage && filter.PrestationID != nil && !r.LinkedTo(*filter.PrestationID) {
			continue
		}
		result = append(result, r)
	}
	return result
}
