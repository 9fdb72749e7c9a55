package blockedperiod

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const table = "consultants_periodes_eviter"

// Repository репозиторий периодов недоступности консультантов
// Таблица consultants_periodes_eviter может отсутствовать в старых развертываниях.
// Ошибка 42P01 прерывает транзакцию PostgreSQL, поэтому к отсутствующей таблице
// репозиторий не обращается: ее наличие проверяется через to_regclass и кэшируется.
type Repository struct {
	db       DBExecutor
	relation atomic.Int32 // domain.Capability
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CheckRelation проверяет наличие таблицы
// Определенный результат запоминается, CapabilityUnknown сопровождается ошибкой
// и проверяется заново при следующем вызове
func (r *Repository) CheckRelation(ctx context.Context) (domain.Capability, error) {
	if state := domain.Capability(r.relation.Load()); state.IsKnown() {
		return state, nil
	}

	// Вне транзакции: to_regclass не ссылается на саму таблицу и не падает при ее отсутствии
	var exists bool
	if err := r.db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists); err != nil {
		return domain.CapabilityUnknown, fmt.Errorf("%w: CheckRelation - execute query: %v", ErrExecQuery, err)
	}

	state := domain.CapabilityUnsupported
	if exists {
		state = domain.CapabilitySupported
	}
	r.relation.Store(int32(state))
	return state, nil
}

// ListIntersecting возвращает периоды консультанта, пересекающие [from, to] включительно
// При отсутствии таблицы возвращает ErrRelationMissing без запроса к ней
func (r *Repository) ListIntersecting(ctx context.Context, consultantID uuid.UUID, from, to types.Date) ([]*domain.BlockedPeriod, error) {
	state, err := r.CheckRelation(ctx)
	if err != nil {
		return nil, err
	}
	if state == domain.CapabilityUnsupported {
		return nil, fmt.Errorf("%w: ListIntersecting: relation %s does not exist", ErrRelationMissing, table)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "consultant_id", "date_debut", "date_fin", "type", "motif").
		From(table).
		Where(squirrel.Eq{"consultant_id": consultantID}).
		Where(squirrel.LtOrEq{"date_debut": to}).
		Where(squirrel.GtOrEq{"date_fin": from}).
		OrderBy("date_debut ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListIntersecting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsUndefinedTable(err) {
			// таблица удалена после проверки
			r.relation.Store(int32(domain.CapabilityUnsupported))
			return nil, fmt.Errorf("%w: ListIntersecting: %v", ErrRelationMissing, err)
		}
		return nil, fmt.Errorf("%w: ListIntersecting - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	periods := make([]*domain.BlockedPeriod, 0)
	for rows.Next() {
		var p domain.BlockedPeriod
		if err := rows.Scan(&p.ID, &p.ConsultantID, &p.DateDebut, &p.DateFin, &p.Type, &p.Motif); err != nil {
			return nil, fmt.Errorf("%w: ListIntersecting - scan period: %v", ErrScanRow, err)
		}
		periods = append(periods, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIntersecting - rows error: %v", ErrScanRow, err)
	}

	return periods, nil
}
