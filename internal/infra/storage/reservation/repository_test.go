package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// failingDB отвечает заданной ошибкой на любой запрос
type failingDB struct {
	err error
}

func (f *failingDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, f.err
}

func (f *failingDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, f.err
}

func (f *failingDB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func TestListQuery_AllFilters(t *testing.T) {
	repo := NewRepository(nil)
	from := types.MustDate("2024-01-01")
	to := types.MustDate("2024-01-05")

	query, args, err := repo.listQuery(domain.ReservationsFilter{
		ProjectID:    ptr.Ptr(uuid.New()),
		PrestationID: ptr.Ptr(uuid.New()),
		ConsultantID: ptr.Ptr(uuid.New()),
		From:         &from,
		To:           &to,
		ExcludeID:    ptr.Ptr(uuid.New()),
	}, true).ToSql()
	require.NoError(t, err)

	// без поддержки привязки фильтр по строке заказа игнорируется
	assert.Equal(t,
		"SELECT id, projet_id, consultant_id, date_debut, date_fin, charge_pct, statut, role_projet, notes, created_at, updated_at "+
			"FROM reservations "+
			"WHERE projet_id = $1 AND consultant_id = $2 AND date_debut <= $3 AND date_fin >= $4 AND id <> $5 AND statut <> $6 "+
			"ORDER BY date_debut ASC, created_at ASC FOR UPDATE",
		query)
	assert.Len(t, args, 6)
	assert.Equal(t, domain.StatusAnnulee, args[5])
}

func TestListQuery_WithLinkage(t *testing.T) {
	repo := NewRepository(nil)
	repo.linkage.Store(true)

	query, args, err := repo.listQuery(domain.ReservationsFilter{
		ProjectID:        ptr.Ptr(uuid.New()),
		PrestationID:     ptr.Ptr(uuid.New()),
		IncludeCancelled: true,
	}, false).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, projet_id, prestation_id, consultant_id, date_debut, date_fin, charge_pct, statut, role_projet, notes, created_at, updated_at "+
			"FROM reservations "+
			"WHERE projet_id = $1 AND prestation_id = $2 "+
			"ORDER BY date_debut ASC, created_at ASC",
		query)
	assert.Len(t, args, 2)
}

func TestProbeServiceLineLinkage(t *testing.T) {
	t.Run("missing column is unsupported", func(t *testing.T) {
		repo := NewRepository(&failingDB{err: &pq.Error{Code: pgerr.CodeUndefinedColumn}})
		repo.linkage.Store(true)

		capability, err := repo.ProbeServiceLineLinkage(context.Background())
		require.NoError(t, err)
		assert.Equal(t, domain.CapabilityUnsupported, capability)
		assert.False(t, repo.ServiceLineLinkage())
	})

	t.Run("other failure is unknown", func(t *testing.T) {
		repo := NewRepository(&failingDB{err: errors.New("connection refused")})

		capability, err := repo.ProbeServiceLineLinkage(context.Background())
		assert.ErrorIs(t, err, ErrExecQuery)
		assert.Equal(t, domain.CapabilityUnknown, capability)
		assert.False(t, repo.ServiceLineLinkage())
	})
}

func TestClassifyWriteErr(t *testing.T) {
	err := classifyWriteErr("Create", fmt.Errorf("wrapped: %w", &pq.Error{Code: pgerr.CodeExclusionViolation}))
	assert.ErrorIs(t, err, ErrOverlapConflict)

	err = classifyWriteErr("Update", &pq.Error{Code: pgerr.CodeSerializationFailure})
	assert.ErrorIs(t, err, ErrConcurrentUpdate)

	err = classifyWriteErr("Update", errors.New("boom"))
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestUpdateStatus_DatabaseError(t *testing.T) {
	repo := NewRepository(&failingDB{err: &pq.Error{Code: pgerr.CodeSerializationFailure}})

	err := repo.UpdateStatus(context.Background(), uuid.New(), domain.StatusAnnulee)
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
}
