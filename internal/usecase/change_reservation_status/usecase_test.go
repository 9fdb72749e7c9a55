package change_reservation_status

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memory"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fixture struct {
	line        *domain.ServiceLine
	reservation *domain.Reservation
	store       *memory.Reservations
	tx          *memory.TxManager
	uc          *UseCase
}

func newFixture(status domain.ReservationStatus) *fixture {
	project := uuid.New()
	line := &domain.ServiceLine{ID: uuid.New(), ProjectID: project, Libelle: "Audit", Quantity: 5}
	reservation := &domain.Reservation{
		ID:           uuid.New(),
		ProjectID:    project,
		PrestationID: ptr.Ptr(line.ID),
		ConsultantID: uuid.New(),
		DateDebut:    types.MustDate("2024-01-08"),
		DateFin:      types.MustDate("2024-01-10"),
		ChargePct:    100,
		Status:       status,
	}

	store := memory.NewReservations(reservation)
	tx := &memory.TxManager{}
	log := logger.Discard()
	views := reservations.NewService(store, memory.NewProjectService(line), &memory.Capabilities{Linkage: true}, log)

	return &fixture{
		line:        line,
		reservation: reservation,
		store:       store,
		tx:          tx,
		uc:          NewUseCase(store, views, tx, log),
	}
}

func TestExecute_ChangesOnlyStatus(t *testing.T) {
	f := newFixture(domain.StatusPrevue)

	resp, err := f.uc.Execute(context.Background(), &Request{ID: f.reservation.ID, Status: "confirmee"})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, domain.StatusConfirmee, resp.Reservation.Status)
	assert.Equal(t, 1, f.store.Writes)

	stored, err := f.store.GetByID(context.Background(), f.reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmee, stored.Status)
	assert.Equal(t, f.reservation.DateFin, stored.DateFin)

	require.NotNil(t, resp.Project)
	require.Len(t, resp.Project.ServiceLines, 1)
	assert.InDelta(t, 3.0, resp.Project.ServiceLines[0].Planned, 1e-9)
}

func TestExecute_ConfirmationRequired(t *testing.T) {
	for _, status := range []string{"annulee", "terminee"} {
		t.Run(status, func(t *testing.T) {
			f := newFixture(domain.StatusConfirmee)

			_, err := f.uc.Execute(context.Background(), &Request{ID: f.reservation.ID, Status: status})
			assert.ErrorIs(t, err, ErrConfirmationRequired)
			assert.Zero(t, f.store.Writes)
			assert.Zero(t, f.tx.Calls)

			stored, err := f.store.GetByID(context.Background(), f.reservation.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusConfirmee, stored.Status)
		})
	}
}

func TestExecute_ConfirmedCancellationFreesUnits(t *testing.T) {
	f := newFixture(domain.StatusConfirmee)

	resp, err := f.uc.Execute(context.Background(), &Request{ID: f.reservation.ID, Status: "annulee", Confirmed: true})
	require.NoError(t, err)
	assert.True(t, resp.Changed)

	require.NotNil(t, resp.Project)
	assert.Empty(t, resp.Project.Reservations)
	assert.InDelta(t, 0.0, resp.Project.ServiceLines[0].Planned, 1e-9)
	assert.InDelta(t, 5.0, resp.Project.ServiceLines[0].Remaining, 1e-9)
	assert.Equal(t, domain.PlanningNone, resp.Project.ServiceLines[0].Status)
}

func TestExecute_SameStatusIsNoop(t *testing.T) {
	f := newFixture(domain.StatusAnnulee)

	resp, err := f.uc.Execute(context.Background(), &Request{ID: f.reservation.ID, Status: "annulee", Confirmed: true})
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Zero(t, f.store.Writes)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(domain.StatusPrevue)
		_, err := f.uc.Execute(context.Background(), &Request{ID: f.reservation.ID, Status: "archivee"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(domain.StatusPrevue)
		_, err := f.uc.Execute(context.Background(), &Request{ID: uuid.New(), Status: "en_cours"})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("terminal status cannot be left", func(t *testing.T) {
		f := newFixture(domain.StatusTerminee)
		_, err := f.uc.Execute(context.Background(), &Request{ID: f.reservation.ID, Status: "en_cours"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Zero(t, f.store.Writes)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(domain.StatusPrevue)
		f.store.Err = errors.New("connection reset")
		_, err := f.uc.Execute(context.Background(), &Request{ID: f.reservation.ID, Status: "en_cours"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
