package reservations

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	projectClient "github.com/m04kA/SMC-ReservationService/internal/integrations/projectservice"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memory"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func newReservation(project, line uuid.UUID, from, to string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:           uuid.New(),
		ProjectID:    project,
		PrestationID: ptr.Ptr(line),
		ConsultantID: uuid.New(),
		DateDebut:    types.MustDate(from),
		DateFin:      types.MustDate(to),
		ChargePct:    100,
		Status:       status,
	}
}

type viewFixture struct {
	project   uuid.UUID
	lineA     *domain.ServiceLine
	lineB     *domain.ServiceLine
	cancelled *domain.Reservation
	store     *memory.Reservations
	projects  *memory.ProjectService
}

func newViewFixture() *viewFixture {
	project := uuid.New()
	lineA := &domain.ServiceLine{ID: uuid.New(), ProjectID: project, Libelle: "A", Quantity: 5}
	lineB := &domain.ServiceLine{ID: uuid.New(), ProjectID: project, Libelle: "B", Quantity: 2}
	cancelled := newReservation(project, lineA.ID, "2024-01-15", "2024-01-19", domain.StatusAnnulee)

	store := memory.NewReservations(
		newReservation(project, lineA.ID, "2024-01-08", "2024-01-10", domain.StatusTerminee),
		newReservation(project, lineB.ID, "2024-01-08", "2024-01-09", domain.StatusPrevue),
		cancelled,
		newReservation(uuid.New(), lineA.ID, "2024-01-08", "2024-01-12", domain.StatusPrevue),
	)

	return &viewFixture{
		project:   project,
		lineA:     lineA,
		lineB:     lineB,
		cancelled: cancelled,
		store:     store,
		projects:  memory.NewProjectService(lineA, lineB),
	}
}

func TestGetProjectView_DefaultListingHidesCancelled(t *testing.T) {
	f := newViewFixture()
	svc := NewService(f.store, f.projects, &memory.Capabilities{Linkage: true}, logger.Discard())

	view, err := svc.GetProjectView(context.Background(), f.project, ViewFilter{})
	require.NoError(t, err)

	assert.Len(t, view.Reservations, 2)
	for _, r := range view.Reservations {
		assert.NotEqual(t, domain.StatusAnnulee, r.Status)
	}

	require.Len(t, view.ServiceLines, 2)
	a := view.ServiceLines[0]
	assert.Equal(t, "A", a.Libelle)
	assert.InDelta(t, 3.0, a.Planned, 1e-9)
	assert.InDelta(t, 3.0, a.Done, 1e-9)
	assert.InDelta(t, 2.0, a.Remaining, 1e-9)
	assert.Equal(t, domain.PlanningPartial, a.Status)

	b := view.ServiceLines[1]
	assert.Equal(t, domain.PlanningComplete, b.Status)
}

func TestGetProjectView_Filters(t *testing.T) {
	f := newViewFixture()
	svc := NewService(f.store, f.projects, &memory.Capabilities{Linkage: true}, logger.Discard())

	view, err := svc.GetProjectView(context.Background(), f.project, ViewFilter{
		PrestationID:     ptr.Ptr(f.lineA.ID),
		IncludeCancelled: true,
	})
	require.NoError(t, err)

	require.Len(t, view.Reservations, 2)
	assert.Equal(t, f.cancelled.ID, view.Reservations[1].ID)
	// статистика не зависит от фильтра
	assert.Len(t, view.ServiceLines, 2)
}

func TestGetProjectView_WithoutLinkage(t *testing.T) {
	f := newViewFixture()
	f.projects.Err = errors.New("must not be called")
	svc := NewService(f.store, f.projects, &memory.Capabilities{Linkage: false}, logger.Discard())

	view, err := svc.GetProjectView(context.Background(), f.project, ViewFilter{PrestationID: ptr.Ptr(f.lineA.ID)})
	require.NoError(t, err)

	assert.False(t, view.Linkage)
	assert.Len(t, view.Reservations, 2)
	assert.Empty(t, view.ServiceLines)
}

func TestGetProjectView_Errors(t *testing.T) {
	f := newViewFixture()

	f.projects.Err = projectClient.ErrProjectNotFound
	svc := NewService(f.store, f.projects, &memory.Capabilities{Linkage: true}, logger.Discard())
	_, err := svc.GetProjectView(context.Background(), f.project, ViewFilter{})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	f.projects.Err = nil
	f.store.Err = errors.New("db down")
	_, err = svc.GetProjectView(context.Background(), f.project, ViewFilter{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetByID_KeepsHistory(t *testing.T) {
	f := newViewFixture()
	svc := NewService(f.store, f.projects, &memory.Capabilities{Linkage: true}, logger.Discard())

	r, err := svc.GetByID(context.Background(), f.cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAnnulee, r.Status)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
