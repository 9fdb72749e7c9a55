package save_reservation

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	blockedPeriodRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/blockedperiod"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/pgerr"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/service/quantity"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/skills"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memory"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/sqlfake"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/validate_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fixture struct {
	project      uuid.UUID
	consultant   uuid.UUID
	line         *domain.ServiceLine
	store        *memory.Reservations
	capabilities *memory.Capabilities
	blocked      calendar.BlockedPeriodRepository
	tx           *memory.TxManager
}

func newFixture() *fixture {
	project := uuid.New()
	return &fixture{
		project:      project,
		consultant:   uuid.New(),
		line:         &domain.ServiceLine{ID: uuid.New(), ProjectID: project, Libelle: "Formation X", Quantity: 5},
		store:        memory.NewReservations(),
		capabilities: &memory.Capabilities{Linkage: true},
		blocked:      &memory.BlockedPeriods{},
		tx:           &memory.TxManager{},
	}
}

func (f *fixture) useCase(repo ReservationRepository) *UseCase {
	log := logger.Discard()
	consultants := memory.NewConsultants(
		&domain.Consultant{ID: f.consultant, Nom: "Durand", Status: domain.ConsultantActif},
	)
	projects := memory.NewProjectService(f.line)

	validator := validate_reservation.NewUseCase(
		f.store,
		consultants,
		projects,
		f.capabilities,
		skills.NewService(&memory.Competencies{}, log),
		calendar.NewService(f.store, f.blocked, domain.DefaultConflictListLimit, log),
		quantity.NewReconciler(domain.DefaultEpsilon),
		&memory.Metrics{},
		log,
	)
	views := reservations.NewService(f.store, projects, f.capabilities, log)

	return NewUseCase(repo, validator, views, f.capabilities, f.tx, log)
}

func (f *fixture) request(from, to string) *Request {
	return &Request{
		ProjectID:    f.project,
		PrestationID: ptr.Ptr(f.line.ID),
		ConsultantID: f.consultant,
		DateDebut:    types.MustDate(from),
		DateFin:      types.MustDate(to),
		ChargePct:    100,
	}
}

func TestExecute_Create(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase(f.store).Execute(context.Background(), f.request("2024-01-08", "2024-01-10"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.Reservation.ID)
	assert.Equal(t, domain.StatusPrevue, resp.Reservation.Status)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, 1, f.tx.Calls)

	require.NotNil(t, resp.Project)
	require.Len(t, resp.Project.Reservations, 1)
	require.Len(t, resp.Project.ServiceLines, 1)
	assert.InDelta(t, 3.0, resp.Project.ServiceLines[0].Planned, 1e-9)
	assert.InDelta(t, 2.0, resp.Project.ServiceLines[0].Remaining, 1e-9)
}

func TestExecute_EndToEndScenario(t *testing.T) {
	f := newFixture()
	uc := f.useCase(f.store)
	ctx := context.Background()

	first, err := uc.Execute(ctx, f.request("2024-01-08", "2024-01-10"))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, first.Project.ServiceLines[0].Planned, 1e-9)

	second, err := uc.Execute(ctx, f.request("2024-01-11", "2024-01-12"))
	require.NoError(t, err)
	assert.Equal(t, domain.PlanningComplete, second.Project.ServiceLines[0].Status)

	_, err = uc.Execute(ctx, f.request("2024-01-15", "2024-01-15"))
	require.ErrorIs(t, err, validate_reservation.ErrOverAllocation)
	assert.Contains(t, err.Error(), "reste à planifier : 0,00")
	assert.Equal(t, 2, f.store.Writes)
}

func TestExecute_BlockingErrorWritesNothing(t *testing.T) {
	f := newFixture()
	uc := f.useCase(f.store)

	req := f.request("2024-01-10", "2024-01-08")
	_, err := uc.Execute(context.Background(), req)

	v, ok := domain.AsViolation(err)
	require.True(t, ok)
	assert.True(t, v.IsStructural())
	assert.Zero(t, f.store.Writes)
}

func TestExecute_Update(t *testing.T) {
	f := newFixture()
	uc := f.useCase(f.store)
	ctx := context.Background()

	created, err := uc.Execute(ctx, f.request("2024-01-08", "2024-01-12"))
	require.NoError(t, err)

	update := f.request("2024-01-08", "2024-01-09")
	update.ID = ptr.Ptr(created.Reservation.ID)
	update.Status = domain.StatusConfirmee
	update.Notes = ptr.Ptr("réduit à deux jours")

	updated, err := uc.Execute(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, created.Reservation.ID, updated.Reservation.ID)
	assert.Equal(t, "2024-01-09", updated.Reservation.DateFin.String())
	assert.InDelta(t, 3.0, updated.Project.ServiceLines[0].Remaining, 1e-9)

	stored, err := f.store.GetByID(ctx, created.Reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmee, stored.Status)
}

func TestExecute_UpdateErrors(t *testing.T) {
	f := newFixture()
	uc := f.useCase(f.store)
	ctx := context.Background()

	missing := f.request("2024-01-08", "2024-01-09")
	missing.ID = ptr.Ptr(uuid.New())
	_, err := uc.Execute(ctx, missing)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	done := f.request("2024-01-08", "2024-01-09")
	done.Status = domain.StatusTerminee
	created, err := uc.Execute(ctx, done)
	require.NoError(t, err)

	reopen := f.request("2024-01-08", "2024-01-09")
	reopen.ID = ptr.Ptr(created.Reservation.ID)
	reopen.Status = domain.StatusEnCours
	_, err = uc.Execute(ctx, reopen)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_UpdateToFinalStatusRequiresConfirmation(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusAnnulee, domain.StatusTerminee} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			uc := f.useCase(f.store)
			ctx := context.Background()

			created, err := uc.Execute(ctx, f.request("2024-01-08", "2024-01-09"))
			require.NoError(t, err)

			update := f.request("2024-01-08", "2024-01-09")
			update.ID = ptr.Ptr(created.Reservation.ID)
			update.Status = status
			_, err = uc.Execute(ctx, update)
			assert.ErrorIs(t, err, ErrConfirmationRequired)

			stored, err := f.store.GetByID(ctx, created.Reservation.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusPrevue, stored.Status)
			assert.Equal(t, 1, f.store.Writes)
		})
	}
}

func TestExecute_UpdateWithoutStatusKeepsCurrent(t *testing.T) {
	f := newFixture()
	uc := f.useCase(f.store)
	ctx := context.Background()

	confirmed := f.request("2024-01-08", "2024-01-09")
	confirmed.Status = domain.StatusConfirmee
	created, err := uc.Execute(ctx, confirmed)
	require.NoError(t, err)

	update := f.request("2024-01-08", "2024-01-10")
	update.ID = ptr.Ptr(created.Reservation.ID)
	updated, err := uc.Execute(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmee, updated.Reservation.Status)

	stored, err := f.store.GetByID(ctx, created.Reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmee, stored.Status)
	assert.Equal(t, "2024-01-10", stored.DateFin.String())
}

func TestExecute_UnknownLinkageRefusesWrite(t *testing.T) {
	f := newFixture()
	f.capabilities.Unknown = true

	_, err := f.useCase(f.store).Execute(context.Background(), f.request("2024-01-08", "2024-01-09"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, f.store.Writes)
	assert.Zero(t, f.tx.Calls)
}

func TestExecute_WithoutLinkageDropsServiceLine(t *testing.T) {
	f := newFixture()
	f.capabilities.Linkage = false

	resp, err := f.useCase(f.store).Execute(context.Background(), f.request("2024-01-08", "2024-01-26"))
	require.NoError(t, err)
	assert.Nil(t, resp.Reservation.PrestationID)
	assert.Empty(t, resp.Project.ServiceLines)
}

// conflictingStore имитирует срабатывание ограничения исключения в БД
type conflictingStore struct {
	*memory.Reservations
	err error
}

func (c *conflictingStore) Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	return nil, c.err
}

func TestExecute_DatabaseRejectsConcurrentOverlap(t *testing.T) {
	for _, repoErr := range []error{reservationRepo.ErrOverlapConflict, reservationRepo.ErrConcurrentUpdate} {
		f := newFixture()
		repo := &conflictingStore{Reservations: f.store, err: fmt.Errorf("%w: Create", repoErr)}

		_, err := f.useCase(repo).Execute(context.Background(), f.request("2024-01-08", "2024-01-09"))
		assert.ErrorIs(t, err, validate_reservation.ErrOverlap)
		assert.Equal(t, msgConcurrentBooking, err.Error())
	}
}

// failingCommit имитирует конфликт сериализации при фиксации транзакции
type failingCommit struct{}

func (failingCommit) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fmt.Errorf("commit: %w", &pq.Error{Code: pgerr.CodeSerializationFailure})
}

func TestExecute_SerializationFailureOnCommit(t *testing.T) {
	f := newFixture()
	uc := f.useCase(f.store)
	uc.txManager = failingCommit{}

	_, err := uc.Execute(context.Background(), f.request("2024-01-08", "2024-01-09"))
	assert.ErrorIs(t, err, validate_reservation.ErrOverlap)
}

// sharedTxStore пишет через то же соединение, что и чтение периодов недоступности,
// как запись и проверка внутри одной транзакции PostgreSQL
type sharedTxStore struct {
	*memory.Reservations
	db *sql.DB
}

func (s *sharedTxStore) Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if _, err := s.db.ExecContext(ctx, "INSERT INTO reservations DEFAULT VALUES"); err != nil {
		return nil, err
	}
	return s.Reservations.Create(ctx, r)
}

func TestExecute_MissingBlockedPeriodTable(t *testing.T) {
	server := sqlfake.New(func(query string, args []driver.NamedValue) sqlfake.Reply {
		switch {
		case strings.Contains(query, "to_regclass"):
			return sqlfake.Reply{Columns: []string{"exists"}, Rows: [][]driver.Value{{false}}}
		case strings.Contains(query, "consultants_periodes_eviter"):
			return sqlfake.Reply{Err: &pq.Error{Code: pgerr.CodeUndefinedTable}}
		default:
			return sqlfake.Reply{}
		}
	})
	server.Transactional = true
	db := server.DB()
	defer db.Close()

	f := newFixture()
	f.blocked = blockedPeriodRepo.NewRepository(db)

	resp, err := f.useCase(&sharedTxStore{Reservations: f.store, db: db}).
		Execute(context.Background(), f.request("2024-01-08", "2024-01-09"))
	require.NoError(t, err)
	assert.Contains(t, resp.Warnings, calendar.WarningControlNotApplied)
	assert.Equal(t, 1, f.store.Writes)
	assert.False(t, server.Aborted())
	assert.Equal(t, 1, server.Count("INSERT INTO reservations"))
}

func TestExecute_InfrastructureFailure(t *testing.T) {
	f := newFixture()
	uc := f.useCase(f.store)
	f.store.Err = fmt.Errorf("connection refused")

	_, err := uc.Execute(context.Background(), f.request("2024-01-08", "2024-01-09"))
	assert.ErrorIs(t, err, ErrInternal)
	_, isViolation := domain.AsViolation(err)
	assert.False(t, isViolation)
}
