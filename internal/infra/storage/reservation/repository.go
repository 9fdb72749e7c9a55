package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const table = "reservations"

// Repository репозиторий для работы с бронированиями консультантов
//
// Столбец prestation_id есть не во всех развертываниях схемы. Пока проверка
// ProbeServiceLineLinkage не подтвердила его наличие, репозиторий не читает и не пишет этот столбец.
type Repository struct {
	db      DBExecutor
	linkage atomic.Bool
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ServiceLineLinkage возвращает true, если хранилище поддерживает привязку к строке заказа
func (r *Repository) ServiceLineLinkage() bool {
	return r.linkage.Load()
}

// ProbeServiceLineLinkage проверяет наличие столбца prestation_id
// Отсутствие столбца дает CapabilityUnsupported, любая другая ошибка CapabilityUnknown
func (r *Repository) ProbeServiceLineLinkage(ctx context.Context) (domain.Capability, error) {
	query, args, err := psqlbuilder.Select("prestation_id").
		From(table).
		Limit(1).
		ToSql()
	if err != nil {
		return domain.CapabilityUnknown, fmt.Errorf("%w: ProbeServiceLineLinkage - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsUndefinedColumn(err) {
			r.linkage.Store(false)
			return domain.CapabilityUnsupported, nil
		}
		return domain.CapabilityUnknown, fmt.Errorf("%w: ProbeServiceLineLinkage - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	r.linkage.Store(true)
	return domain.CapabilitySupported, nil
}

func (r *Repository) columns() []string {
	cols := []string{"id", "projet_id"}
	if r.linkage.Load() {
		cols = append(cols, "prestation_id")
	}
	return append(cols,
		"consultant_id",
		"date_debut",
		"date_fin",
		"charge_pct",
		"statut",
		"role_projet",
		"notes",
		"created_at",
		"updated_at",
	)
}

// Create сохраняет новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}

	columns := []string{"id", "projet_id"}
	values := []interface{}{reservation.ID, reservation.ProjectID}
	if r.linkage.Load() {
		columns = append(columns, "prestation_id")
		values = append(values, reservation.PrestationID)
	}
	columns = append(columns, "consultant_id", "date_debut", "date_fin", "charge_pct", "statut", "role_projet", "notes")
	values = append(values,
		reservation.ConsultantID,
		reservation.DateDebut,
		reservation.DateFin,
		reservation.ChargePct,
		reservation.Status,
		reservation.RoleProjet,
		reservation.Notes,
	)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, classifyWriteErr("Create - execute insert", err)
	}

	if !r.linkage.Load() {
		reservation.PrestationID = nil
	}
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// Update перезаписывает изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("projet_id", reservation.ProjectID).
		Set("consultant_id", reservation.ConsultantID).
		Set("date_debut", reservation.DateDebut).
		Set("date_fin", reservation.DateFin).
		Set("charge_pct", reservation.ChargePct).
		Set("statut", reservation.Status).
		Set("role_projet", reservation.RoleProjet).
		Set("notes", reservation.Notes).
		Set("updated_at", squirrel.Expr("NOW()"))
	if r.linkage.Load() {
		builder = builder.Set("prestation_id", reservation.PrestationID)
	}

	query, args, err := builder.
		Where(squirrel.Eq{"id": reservation.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, classifyWriteErr("Update - execute update", err)
	}

	if !r.linkage.Load() {
		reservation.PrestationID = nil
	}
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// UpdateStatus меняет только статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("statut", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyWriteErr("UpdateStatus - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(r.columns()...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// List возвращает бронирования по фильтру, отсортированные по дате начала
//
// Если используется транзакция и задан консультант, строки блокируются (FOR UPDATE):
// так проверка пересечений и последующая запись видят одно и то же состояние.
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	forUpdate := dbmetrics.IsInTransaction(ctx) && filter.ConsultantID != nil
	query, args, err := r.listQuery(filter, forUpdate).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := r.scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan reservation: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func (r *Repository) listQuery(filter domain.ReservationsFilter, forUpdate bool) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(r.columns()...).From(table)

	if filter.ProjectID != nil {
		builder = builder.Where(squirrel.Eq{"projet_id": *filter.ProjectID})
	}
	if filter.PrestationID != nil && r.linkage.Load() {
		builder = builder.Where(squirrel.Eq{"prestation_id": *filter.PrestationID})
	}
	if filter.ConsultantID != nil {
		builder = builder.Where(squirrel.Eq{"consultant_id": *filter.ConsultantID})
	}
	// пересечение [date_debut, date_fin] с [From, To]
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"date_debut": *filter.To})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"date_fin": *filter.From})
	}
	if filter.ExcludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}
	if !filter.IncludeCancelled {
		builder = builder.Where(squirrel.NotEq{"statut": domain.StatusAnnulee})
	}

	builder = builder.OrderBy("date_debut ASC", "created_at ASC")
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	dest := []interface{}{&reservation.ID, &reservation.ProjectID}
	if r.linkage.Load() {
		dest = append(dest, &reservation.PrestationID)
	}
	dest = append(dest,
		&reservation.ConsultantID,
		&reservation.DateDebut,
		&reservation.DateFin,
		&reservation.ChargePct,
		&reservation.Status,
		&reservation.RoleProjet,
		&reservation.Notes,
		&createdAt,
		&updatedAt,
	)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

func classifyWriteErr(op string, err error) error {
	switch {
	case pgerr.IsExclusionViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrOverlapConflict, op, err)
	case pgerr.IsSerializationFailure(err):
		return fmt.Errorf("%w: %s: %v", ErrConcurrentUpdate, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
	}
}
