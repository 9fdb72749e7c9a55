package calendar

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	blockedPeriodRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/blockedperiod"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// memoryReservations применяет фильтр так же, как SQL репозиторий
type memoryReservations struct {
	items []*domain.Reservation
	err   error
}

func (m *memoryReservations) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*domain.Reservation, 0)
	for _, r := range m.items {
		if filter.ConsultantID != nil && r.ConsultantID != *filter.ConsultantID {
			continue
		}
		if filter.ExcludeID != nil && r.ID == *filter.ExcludeID {
			continue
		}
		if !filter.IncludeCancelled && r.IsCancelled() {
			continue
		}
		if filter.From != nil && filter.To != nil && !r.Overlaps(*filter.From, *filter.To) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

type memoryPeriods struct {
	items []*domain.BlockedPeriod
	err   error
}

func (m *memoryPeriods) ListIntersecting(ctx context.Context, consultantID uuid.UUID, from, to types.Date) ([]*domain.BlockedPeriod, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*domain.BlockedPeriod, 0)
	for _, p := range m.items {
		if p.ConsultantID == consultantID && p.Overlaps(from, to) {
			result = append(result, p)
		}
	}
	return result, nil
}

func reservation(consultant uuid.UUID, from, to string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:           uuid.New(),
		ConsultantID: consultant,
		DateDebut:    types.MustDate(from),
		DateFin:      types.MustDate(to),
		ChargePct:    100,
		Status:       status,
	}
}

func TestCheckOverlap_Symmetry(t *testing.T) {
	x, y := uuid.New(), uuid.New()
	existing := reservation(x, "2024-01-01", "2024-01-05", domain.StatusConfirmee)
	svc := NewService(&memoryReservations{items: []*domain.Reservation{existing}}, &memoryPeriods{}, 3, logger.Discard())

	from, to := types.MustDate("2024-01-03"), types.MustDate("2024-01-10")

	err := svc.CheckOverlap(context.Background(), x, from, to, nil)
	require.ErrorIs(t, err, domain.ErrOverlap)
	assert.Equal(t, "Le consultant est déjà réservé sur cette période : 2024-01-01 → 2024-01-05", err.Error())

	assert.NoError(t, svc.CheckOverlap(context.Background(), y, from, to, nil))
}

func TestCheckOverlap_BoundariesInclusive(t *testing.T) {
	x := uuid.New()
	svc := NewService(&memoryReservations{items: []*domain.Reservation{
		reservation(x, "2024-01-01", "2024-01-05", domain.StatusPrevue),
	}}, &memoryPeriods{}, 3, logger.Discard())

	err := svc.CheckOverlap(context.Background(), x, types.MustDate("2024-01-05"), types.MustDate("2024-01-06"), nil)
	assert.ErrorIs(t, err, domain.ErrOverlap)

	err = svc.CheckOverlap(context.Background(), x, types.MustDate("2024-01-06"), types.MustDate("2024-01-08"), nil)
	assert.NoError(t, err)
}

func TestCheckOverlap_IgnoresCancelledAndEdited(t *testing.T) {
	x := uuid.New()
	edited := reservation(x, "2024-02-01", "2024-02-02", domain.StatusPrevue)
	svc := NewService(&memoryReservations{items: []*domain.Reservation{
		reservation(x, "2024-02-01", "2024-02-10", domain.StatusAnnulee),
		edited,
	}}, &memoryPeriods{}, 3, logger.Discard())

	err := svc.CheckOverlap(context.Background(), x, types.MustDate("2024-02-01"), types.MustDate("2024-02-03"), &edited.ID)
	assert.NoError(t, err)
}

func TestCheckOverlap_ListLimit(t *testing.T) {
	x := uuid.New()
	items := make([]*domain.Reservation, 0)
	for day := 1; day <= 5; day++ {
		d := fmt.Sprintf("2024-03-%02d", day)
		items = append(items, reservation(x, d, d, domain.StatusPrevue))
	}
	svc := NewService(&memoryReservations{items: items}, &memoryPeriods{}, 3, logger.Discard())

	err := svc.CheckOverlap(context.Background(), x, types.MustDate("2024-03-01"), types.MustDate("2024-03-31"), nil)
	require.Error(t, err)
	assert.Equal(t,
		"Le consultant est déjà réservé sur cette période : "+
			"2024-03-01 → 2024-03-01, 2024-03-02 → 2024-03-02, 2024-03-03 → 2024-03-03, …",
		err.Error())
}

func TestCheckOverlap_RepositoryError(t *testing.T) {
	svc := NewService(&memoryReservations{err: errors.New("db down")}, &memoryPeriods{}, 3, logger.Discard())

	err := svc.CheckOverlap(context.Background(), uuid.New(), types.MustDate("2024-01-01"), types.MustDate("2024-01-02"), nil)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCheckBlockedPeriods(t *testing.T) {
	x := uuid.New()
	from, to := types.MustDate("2024-07-01"), types.MustDate("2024-07-31")

	t.Run("conges blocks", func(t *testing.T) {
		svc := NewService(&memoryReservations{}, &memoryPeriods{items: []*domain.BlockedPeriod{
			{ConsultantID: x, DateDebut: types.MustDate("2024-07-15"), DateFin: types.MustDate("2024-08-15"), Type: domain.PeriodConges, Motif: ptr.Ptr("Vacances")},
			{ConsultantID: x, DateDebut: types.MustDate("2024-07-02"), DateFin: types.MustDate("2024-07-02"), Type: domain.PeriodPreference},
		}}, 3, logger.Discard())

		warnings, err := svc.CheckBlockedPeriods(context.Background(), x, from, to)
		require.ErrorIs(t, err, domain.ErrBlockedPeriod)
		assert.Nil(t, warnings)
		assert.Equal(t, "Consultant indisponible sur cette période : conges : 2024-07-15 → 2024-08-15 (Vacances)", err.Error())
	})

	t.Run("preference warns", func(t *testing.T) {
		svc := NewService(&memoryReservations{}, &memoryPeriods{items: []*domain.BlockedPeriod{
			{ConsultantID: x, DateDebut: types.MustDate("2024-07-05"), DateFin: types.MustDate("2024-07-05"), Type: domain.PeriodPreference, Motif: ptr.Ptr("Déménagement")},
		}}, 3, logger.Discard())

		warnings, err := svc.CheckBlockedPeriods(context.Background(), x, from, to)
		require.NoError(t, err)
		assert.Equal(t, []string{"Période à éviter (préférence) : preference : 2024-07-05 → 2024-07-05 (Déménagement)"}, warnings)
	})

	t.Run("other consultant is free", func(t *testing.T) {
		svc := NewService(&memoryReservations{}, &memoryPeriods{items: []*domain.BlockedPeriod{
			{ConsultantID: uuid.New(), DateDebut: from, DateFin: to, Type: domain.PeriodFormation},
		}}, 3, logger.Discard())

		warnings, err := svc.CheckBlockedPeriods(context.Background(), x, from, to)
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("missing table degrades to warning", func(t *testing.T) {
		svc := NewService(&memoryReservations{}, &memoryPeriods{
			err: fmt.Errorf("%w: relation \"consultants_periodes_eviter\" does not exist", blockedPeriodRepo.ErrRelationMissing),
		}, 3, logger.Discard())

		warnings, err := svc.CheckBlockedPeriods(context.Background(), x, from, to)
		require.NoError(t, err)
		assert.Equal(t, []string{WarningControlNotApplied}, warnings)
	})

	t.Run("other failure is fatal", func(t *testing.T) {
		svc := NewService(&memoryReservations{}, &memoryPeriods{err: errors.New("timeout")}, 3, logger.Discard())

		_, err := svc.CheckBlockedPeriods(context.Background(), x, from, to)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
