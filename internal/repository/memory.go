package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lucaspascoa/novoteste/internal/domain"
)

// MemoryStore armazenamento in-memory compartilhado por todos os repositórios.
// Usado nos testes e no modo de desenvolvimento sem backend externo.
type MemoryStore struct {
	mu           sync.RWMutex
	productsByID map[string]domain.Product
	ordersByID   map[string]domain.Order
	auditByID    map[string]domain.AuditLog
	staffByID    map[string]domain.Staff
	rolesByID    map[string]domain.Role
	categByID    map[string]domain.Category
	zonesByID    map[string]domain.DeliveryZone
	closuresByID map[string]domain.DailyClosure
	config       *domain.StoreConfig
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		productsByID: make(map[string]domain.Product),
		ordersByID:   make(map[string]domain.Order),
		auditByID:    make(map[string]domain.AuditLog),
		staffByID:    make(map[string]domain.Staff),
		rolesByID:    make(map[string]domain.Role),
		categByID:    make(map[string]domain.Category),
		zonesByID:    make(map[string]domain.DeliveryZone),
		closuresByID: make(map[string]domain.DailyClosure),
	}
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

// ProductRepository implementation
func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	m.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := p
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.productsByID[p.ID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	m.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.productsByID[id]; !ok {
		return ErrNotFound
	}
	delete(m.productsByID, id)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Product, 0)
	for _, p := range m.productsByID {
		if !containsIgnoreCase(p.Name, f.NameSubstring) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MemoryOrders repositório de pedidos sobre o MemoryStore
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	o.ID = uuid.NewString()
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	mo.store.ordersByID[o.ID] = *o
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	return &cp, nil
}

func (mo *MemoryOrders) Update(ctx context.Context, o *domain.Order) error {
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	if _, ok := mo.store.ordersByID[o.ID]; !ok {
		return ErrNotFound
	}
	o.UpdatedAt = time.Now().UTC()
	mo.store.ordersByID[o.ID] = *o
	return nil
}

func (mo *MemoryOrders) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	out := make([]domain.Order, 0)
	for _, o := range mo.store.ordersByID {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.CustomerPhone != "" && o.CustomerPhone != f.CustomerPhone {
			continue
		}
		out = append(out, o)
	}
	// mais recentes primeiro
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MemoryAudit trilha de auditoria in-memory, somente Create e List
type MemoryAudit struct{ store *MemoryStore }

func NewMemoryAudit(store *MemoryStore) *MemoryAudit { return &MemoryAudit{store: store} }

var _ AuditLogRepository = (*MemoryAudit)(nil)

func (ma *MemoryAudit) Create(ctx context.Context, e *domain.AuditLog) error {
	ma.store.mu.Lock()
	defer ma.store.mu.Unlock()
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	ma.store.auditByID[e.ID] = *e
	return nil
}

func (ma *MemoryAudit) List(ctx context.Context, entityID string) ([]domain.AuditLog, error) {
	ma.store.mu.RLock()
	defer ma.store.mu.RUnlock()
	out := make([]domain.AuditLog, 0)
	for _, e := range ma.store.auditByID {
		if entityID != "" && e.EntityID != entityID {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// MemoryStaff repositório da equipe
type MemoryStaff struct{ store *MemoryStore }

func NewMemoryStaff(store *MemoryStore) *MemoryStaff { return &MemoryStaff{store: store} }

var _ StaffRepository = (*MemoryStaff)(nil)

func (ms *MemoryStaff) Create(ctx context.Context, s *domain.Staff) error {
	ms.store.mu.Lock()
	defer ms.store.mu.Unlock()
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()
	ms.store.staffByID[s.ID] = *s
	return nil
}

func (ms *MemoryStaff) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	ms.store.mu.RLock()
	defer ms.store.mu.RUnlock()
	s, ok := ms.store.staffByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (ms *MemoryStaff) GetByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	ms.store.mu.RLock()
	defer ms.store.mu.RUnlock()
	for _, s := range ms.store.staffByID {
		if s.Username == username {
			cp := s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (ms *MemoryStaff) Update(ctx context.Context, s *domain.Staff) error {
	ms.store.mu.Lock()
	defer ms.store.mu.Unlock()
	if _, ok := ms.store.staffByID[s.ID]; !ok {
		return ErrNotFound
	}
	ms.store.staffByID[s.ID] = *s
	return nil
}

func (ms *MemoryStaff) Delete(ctx context.Context, id string) error {
	ms.store.mu.Lock()
	defer ms.store.mu.Unlock()
	if _, ok := ms.store.staffByID[id]; !ok {
		return ErrNotFound
	}
	delete(ms.store.staffByID, id)
	return nil
}

func (ms *MemoryStaff) List(ctx context.Context) ([]domain.Staff, error) {
	ms.store.mu.RLock()
	defer ms.store.mu.RUnlock()
	out := make([]domain.Staff, 0, len(ms.store.staffByID))
	for _, s := range ms.store.staffByID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

// MemoryRoles repositório de perfis
type MemoryRoles struct{ store *MemoryStore }

func NewMemoryRoles(store *MemoryStore) *MemoryRoles { return &MemoryRoles{store: store} }

var _ RoleRepository = (*MemoryRoles)(nil)

func (mr *MemoryRoles) Create(ctx context.Context, r *domain.Role) error {
	mr.store.mu.Lock()
	defer mr.store.mu.Unlock()
	r.ID = uuid.NewString()
	mr.store.rolesByID[r.ID] = *r
	return nil
}

func (mr *MemoryRoles) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	mr.store.mu.RLock()
	defer mr.store.mu.RUnlock()
	for _, r := range mr.store.rolesByID {
		if r.Name == name {
			cp := r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mr *MemoryRoles) Update(ctx context.Context, r *domain.Role) error {
	mr.store.mu.Lock()
	defer mr.store.mu.Unlock()
	if _, ok := mr.store.rolesByID[r.ID]; !ok {
		return ErrNotFound
	}
	mr.store.rolesByID[r.ID] = *r
	return nil
}

func (mr *MemoryRoles) Delete(ctx context.Context, id string) error {
	mr.store.mu.Lock()
	defer mr.store.mu.Unlock()
	if _, ok := mr.store.rolesByID[id]; !ok {
		return ErrNotFound
	}
	delete(mr.store.rolesByID, id)
	return nil
}

func (mr *MemoryRoles) List(ctx context.Context) ([]domain.Role, error) {
	mr.store.mu.RLock()
	defer mr.store.mu.RUnlock()
	out := make([]domain.Role, 0, len(mr.store.rolesByID))
	for _, r := range mr.store.rolesByID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MemoryCategories repositório de categorias
type MemoryCategories struct{ store *MemoryStore }

func NewMemoryCategories(store *MemoryStore) *MemoryCategories {
	return &MemoryCategories{store: store}
}

var _ CategoryRepository = (*MemoryCategories)(nil)

func (mc *MemoryCategories) Create(ctx context.Context, c *domain.Category) error {
	mc.store.mu.Lock()
	defer mc.store.mu.Unlock()
	c.ID = uuid.NewString()
	mc.store.categByID[c.ID] = *c
	return nil
}

func (mc *MemoryCategories) Update(ctx context.Context, c *domain.Category) error {
	mc.store.mu.Lock()
	defer mc.store.mu.Unlock()
	if _, ok := mc.store.categByID[c.ID]; !ok {
		return ErrNotFound
	}
	mc.store.categByID[c.ID] = *c
	return nil
}

func (mc *MemoryCategories) Delete(ctx context.Context, id string) error {
	mc.store.mu.Lock()
	defer mc.store.mu.Unlock()
	if _, ok := mc.store.categByID[id]; !ok {
		return ErrNotFound
	}
	delete(mc.store.categByID, id)
	return nil
}

func (mc *MemoryCategories) List(ctx context.Context) ([]domain.Category, error) {
	mc.store.mu.RLock()
	defer mc.store.mu.RUnlock()
	out := make([]domain.Category, 0, len(mc.store.categByID))
	for _, c := range mc.store.categByID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// MemoryConfig configuração da loja (singleton)
type MemoryConfig struct{ store *MemoryStore }

func NewMemoryConfig(store *MemoryStore) *MemoryConfig { return &MemoryConfig{store: store} }

var _ StoreConfigRepository = (*MemoryConfig)(nil)

func (mc *MemoryConfig) Get(ctx context.Context) (*domain.StoreConfig, error) {
	mc.store.mu.RLock()
	defer mc.store.mu.RUnlock()
	if mc.store.config == nil {
		return nil, ErrNotFound
	}
	cp := *mc.store.config
	return &cp, nil
}

func (mc *MemoryConfig) Save(ctx context.Context, cfg *domain.StoreConfig) error {
	mc.store.mu.Lock()
	defer mc.store.mu.Unlock()
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	cp := *cfg
	mc.store.config = &cp
	return nil
}

// MemoryZones repositório de zonas de entrega
type MemoryZones struct{ store *MemoryStore }

func NewMemoryZones(store *MemoryStore) *MemoryZones { return &MemoryZones{store: store} }

var _ DeliveryZoneRepository = (*MemoryZones)(nil)

func (mz *MemoryZones) Create(ctx context.Context, z *domain.DeliveryZone) error {
	mz.store.mu.Lock()
	defer mz.store.mu.Unlock()
	z.ID = uuid.NewString()
	mz.store.zonesByID[z.ID] = *z
	return nil
}

func (mz *MemoryZones) Update(ctx context.Context, z *domain.DeliveryZone) error {
	mz.store.mu.Lock()
	defer mz.store.mu.Unlock()
	if _, ok := mz.store.zonesByID[z.ID]; !ok {
		return ErrNotFound
	}
	mz.store.zonesByID[z.ID] = *z
	return nil
}

func (mz *MemoryZones) Delete(ctx context.Context, id string) error {
	mz.store.mu.Lock()
	defer mz.store.mu.Unlock()
	if _, ok := mz.store.zonesByID[id]; !ok {
		return ErrNotFound
	}
	delete(mz.store.zonesByID, id)
	return nil
}

func (mz *MemoryZones) List(ctx context.Context) ([]domain.DeliveryZone, error) {
	mz.store.mu.RLock()
	defer mz.store.mu.RUnlock()
	out := make([]domain.DeliveryZone, 0, len(mz.store.zonesByID))
	for _, z := range mz.store.zonesByID {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Neighborhood < out[j].Neighborhood })
	return out, nil
}

// MemoryClosures fechamentos de caixa
type MemoryClosures struct{ store *MemoryStore }

func NewMemoryClosures(store *MemoryStore) *MemoryClosures { return &MemoryClosures{store: store} }

var _ ClosureRepository = (*MemoryClosures)(nil)

func (mc *MemoryClosures) Create(ctx context.Context, c *domain.DailyClosure) error {
	mc.store.mu.Lock()
	defer mc.store.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	mc.store.closuresByID[c.ID] = *c
	return nil
}

func (mc *MemoryClosures) GetByDate(ctx context.Context, date string) (*domain.DailyClosure, error) {
	mc.store.mu.RLock()
	defer mc.store.mu.RUnlock()
	for _, c := range mc.store.closuresByID {
		if c.Date == date {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mc *MemoryClosures) List(ctx context.Context) ([]domain.DailyClosure, error) {
	mc.store.mu.RLock()
	defer mc.store.mu.RUnlock()
	out := make([]domain.DailyClosure, 0, len(mc.store.closuresByID))
	for _, c := range mc.store.closuresByID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}
