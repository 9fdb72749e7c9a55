// Package memory хранилища в памяти для тестов use case'ов и сервисов
// Фильтры повторяют семантику SQL репозиториев
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	blockedPeriodRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/blockedperiod"
	consultantRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/consultant"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	projectClient "github.com/m04kA/SMC-ReservationService/internal/integrations/projectservice"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Reservations хранилище бронирований
type Reservations struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Reservation
	order []uuid.UUID

	// Err возвращается всеми методами, если задана
	Err error
	// Writes число успешных записей
	Writes int
}

// NewReservations создает хранилище с начальными бронированиями
func NewReservations(initial ...*domain.Reservation) *Reservations {
	s := &Reservations{items: make(map[uuid.UUID]*domain.Reservation)}
	for _, r := range initial {
		s.put(r)
	}
	return s
}

func (s *Reservations) put(r *domain.Reservation) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if _, ok := s.items[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	c := *r
	s.items[r.ID] = &c
}

// Create сохраняет новое бронирование
func (s *Reservations) Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	now := time.Now()
	r.CreatedAt, r.UpdatedAt = now, now
	s.put(r)
	s.Writes++
	return r, nil
}

// Update перезаписывает бронирование
func (s *Reservations) Update(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	existing, ok := s.items[r.ID]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = time.Now()
	s.put(r)
	s.Writes++
	return r, nil
}

// UpdateStatus меняет статус
func (s *Reservations) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.items[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	existing.Status = status
	existing.UpdatedAt = time.Now()
	s.Writes++
	return nil
}

// GetByID возвращает копию бронирования
func (s *Reservations) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	existing, ok := s.items[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	c := *existing
	return &c, nil
}

// List возвращает копии бронирований по фильтру в порядке date_debut
func (s *Reservations) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	result := make([]*domain.Reservation, 0)
	for _, id := range s.order {
		r := s.items[id]
		if filter.ProjectID != nil && r.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.PrestationID != nil && !r.LinkedTo(*filter.PrestationID) {
			continue
		}
		if filter.ConsultantID != nil && r.ConsultantID != *filter.ConsultantID {
			continue
		}
		if filter.To != nil && r.DateDebut.IsAfter(*filter.To) {
			continue
		}
		if filter.From != nil && r.DateFin.IsBefore(*filter.From) {
			continue
		}
		if filter.ExcludeID != nil && r.ID == *filter.ExcludeID {
			continue
		}
		if !filter.IncludeCancelled && r.IsCancelled() {
			continue
		}
		c := *r
		result = append(result, &c)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DateDebut.IsBefore(result[j].DateDebut)
	})
	return result, nil
}

// Consultants справочник консультантов
type Consultants struct {
	Items map[uuid.UUID]*domain.Consultant
	Err   error
}

// NewConsultants создает справочник
func NewConsultants(consultants ...*domain.Consultant) *Consultants {
	c := &Consultants{Items: make(map[uuid.UUID]*domain.Consultant)}
	for _, item := range consultants {
		c.Items[item.ID] = item
	}
	return c
}

// GetByID возвращает консультанта
func (c *Consultants) GetByID(ctx context.Context, id uuid.UUID) (*domain.Consultant, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	item, ok := c.Items[id]
	if !ok {
		return nil, consultantRepo.ErrConsultantNotFound
	}
	return item, nil
}

// Competencies компетенции консультантов
type Competencies struct {
	Items []domain.ConsultantCompetency
	Err   error
}

// ListByConsultant возвращает компетенции консультанта из списка
func (c *Competencies) ListByConsultant(ctx context.Context, consultantID uuid.UUID, competenceIDs []uuid.UUID) ([]domain.ConsultantCompetency, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	wanted := make(map[uuid.UUID]bool, len(competenceIDs))
	for _, id := range competenceIDs {
		wanted[id] = true
	}
	result := make([]domain.ConsultantCompetency, 0)
	for _, item := range c.Items {
		if item.ConsultantID == consultantID && (len(wanted) == 0 || wanted[item.CompetenceID]) {
			result = append(result, item)
		}
	}
	return result, nil
}

// BlockedPeriods периоды недоступности
// Missing имитирует отсутствие таблицы
type BlockedPeriods struct {
	Items   []*domain.BlockedPeriod
	Missing bool
	Err     error
}

// ListIntersecting возвращает периоды консультанта, пересекающие [from, to]
func (b *BlockedPeriods) ListIntersecting(ctx context.Context, consultantID uuid.UUID, from, to types.Date) ([]*domain.BlockedPeriod, error) {
	if b.Missing {
		return nil, blockedPeriodRepo.ErrRelationMissing
	}
	if b.Err != nil {
		return nil, b.Err
	}
	result := make([]*domain.BlockedPeriod, 0)
	for _, p := range b.Items {
		if p.ConsultantID == consultantID && p.Overlaps(from, to) {
			result = append(result, p)
		}
	}
	return result, nil
}

// ProjectService строки заказа проектов
type ProjectService struct {
	Lines map[uuid.UUID]*domain.ServiceLine
	Err   error
}

// NewProjectService создает справочник строк заказа
func NewProjectService(lines ...*domain.ServiceLine) *ProjectService {
	p := &ProjectService{Lines: make(map[uuid.UUID]*domain.ServiceLine)}
	for _, l := range lines {
		p.Lines[l.ID] = l
	}
	return p
}

// GetServiceLine возвращает строку заказа
func (p *ProjectService) GetServiceLine(ctx context.Context, id uuid.UUID) (*domain.ServiceLine, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	line, ok := p.Lines[id]
	if !ok {
		return nil, projectClient.ErrServiceLineNotFound
	}
	return line, nil
}

// ListServiceLines возвращает строки заказа проекта
func (p *ProjectService) ListServiceLines(ctx context.Context, projectID uuid.UUID) ([]*domain.ServiceLine, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	result := make([]*domain.ServiceLine, 0)
	for _, l := range p.Lines {
		if l.ProjectID == projectID {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Libelle < result[j].Libelle })
	return result, nil
}

// Capabilities фиксированное состояние привязки к строкам заказа
// Unknown имитирует неудавшуюся проверку схемы
type Capabilities struct {
	Linkage bool
	Unknown bool
}

// ServiceLineLinkage возвращает заданное состояние
func (c *Capabilities) ServiceLineLinkage(ctx context.Context) domain.Capability {
	switch {
	case c.Unknown:
		return domain.CapabilityUnknown
	case c.Linkage:
		return domain.CapabilitySupported
	default:
		return domain.CapabilityUnsupported
	}
}

// LinkageEnabled возвращает true только для подтвержденной поддержки
func (c *Capabilities) LinkageEnabled(ctx context.Context) bool {
	return c.ServiceLineLinkage(ctx).Enabled()
}

// TxManager выполняет функцию без транзакции
type TxManager struct {
	Calls int
}

// Do выполняет fn
func (t *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

// DoSerializable выполняет fn
func (t *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

// DoReadOnly выполняет fn
func (t *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

// Metrics запоминает результаты проверок
type Metrics struct {
	mu           sync.Mutex
	Observations []string
}

// ObserveValidation сохраняет "outcome/kind"
func (m *Metrics) ObserveValidation(outcome, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Observations = append(m.Observations, outcome+"/"+kind)
}
