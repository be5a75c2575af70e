package base44

import (
	"context"
	"strings"

	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/repository"
)

// Entidades expostas pela API hospedada
const (
	entityProduct      = "Product"
	entityOrder        = "Order"
	entityAuditLog     = "AuditLog"
	entityStaff        = "Staff"
	entityRole         = "Role"
	entityCategory     = "Category"
	entityStoreConfig  = "StoreConfig"
	entityDeliveryZone = "DeliveryZone"
	entityDailyClosure = "DailyClosure"
)

// Products repositório de produtos sobre a API de entidades
type Products struct{ c *Client }

func NewProducts(c *Client) *Products { return &Products{c: c} }

var _ repository.ProductRepository = (*Products)(nil)

func (r *Products) Create(ctx context.Context, p *domain.Product) error {
	return r.c.create(ctx, entityProduct, p, p)
}

func (r *Products) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := r.c.get(ctx, entityProduct, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Products) Update(ctx context.Context, p *domain.Product) error {
	return r.c.update(ctx, entityProduct, p.ID, p, p)
}

func (r *Products) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, entityProduct, id)
}

// List aplica os filtros de igualdade no servidor; substring e faixa de
// preço são aplicados aqui, pois a API só filtra por igualdade.
func (r *Products) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	filter := map[string]string{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	var all []domain.Product
	if err := r.c.list(ctx, entityProduct, filter, &all); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if f.NameSubstring != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.NameSubstring)) {
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
	return out, nil
}

// Orders repositório de pedidos
type Orders struct{ c *Client }

func NewOrders(c *Client) *Orders { return &Orders{c: c} }

var _ repository.OrderRepository = (*Orders)(nil)

func (r *Orders) Create(ctx context.Context, o *domain.Order) error {
	return r.c.create(ctx, entityOrder, o, o)
}

func (r *Orders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := r.c.get(ctx, entityOrder, id, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Orders) Update(ctx context.Context, o *domain.Order) error {
	return r.c.update(ctx, entityOrder, o.ID, o, o)
}

func (r *Orders) List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error) {
	filter := map[string]string{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.CustomerPhone != "" {
		filter["customer_phone"] = f.CustomerPhone
	}
	var out []domain.Order
	if err := r.c.list(ctx, entityOrder, filter, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AuditLogs trilha de auditoria; o backend só recebe inserções
type AuditLogs struct{ c *Client }

func NewAuditLogs(c *Client) *AuditLogs { return &AuditLogs{c: c} }

var _ repository.AuditLogRepository = (*AuditLogs)(nil)

func (r *AuditLogs) Create(ctx context.Context, e *domain.AuditLog) error {
	return r.c.create(ctx, entityAuditLog, e, e)
}

func (r *AuditLogs) List(ctx context.Context, entityID string) ([]domain.AuditLog, error) {
	filter := map[string]string{}
	if entityID != "" {
		filter["entity_id"] = entityID
	}
	var out []domain.AuditLog
	if err := r.c.list(ctx, entityAuditLog, filter, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StaffRepo repositório da equipe
type StaffRepo struct{ c *Client }

func NewStaff(c *Client) *StaffRepo { return &StaffRepo{c: c} }

var _ repository.StaffRepository = (*StaffRepo)(nil)

func (r *StaffRepo) Create(ctx context.Context, s *domain.Staff) error {
	return r.c.create(ctx, entityStaff, s, s)
}

func (r *StaffRepo) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	var s domain.Staff
	if err := r.c.get(ctx, entityStaff, id, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepo) GetByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	var list []domain.Staff
	if err := r.c.list(ctx, entityStaff, map[string]string{"username": username}, &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, repository.ErrNotFound
	}
	return &list[0], nil
}

func (r *StaffRepo) Update(ctx context.Context, s *domain.Staff) error {
	return r.c.update(ctx, entityStaff, s.ID, s, s)
}

func (r *StaffRepo) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, entityStaff, id)
}

func (r *StaffRepo) List(ctx context.Context) ([]domain.Staff, error) {
	var out []domain.Staff
	if err := r.c.list(ctx, entityStaff, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Roles repositório de perfis
type Roles struct{ c *Client }

func NewRoles(c *Client) *Roles { return &Roles{c: c} }

var _ repository.RoleRepository = (*Roles)(nil)

func (r *Roles) Create(ctx context.Context, role *domain.Role) error {
	return r.c.create(ctx, entityRole, role, role)
}

func (r *Roles) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	var list []domain.Role
	if err := r.c.list(ctx, entityRole, map[string]string{"name": name}, &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, repository.ErrNotFound
	}
	return &list[0], nil
}

func (r *Roles) Update(ctx context.Context, role *domain.Role) error {
	return r.c.update(ctx, entityRole, role.ID, role, role)
}

func (r *Roles) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, entityRole, id)
}

func (r *Roles) List(ctx context.Context) ([]domain.Role, error) {
	var out []domain.Role
	if err := r.c.list(ctx, entityRole, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories repositório de categorias
type Categories struct{ c *Client }

func NewCategories(c *Client) *Categories { return &Categories{c: c} }

var _ repository.CategoryRepository = (*Categories)(nil)

func (r *Categories) Create(ctx context.Context, cat *domain.Category) error {
	return r.c.create(ctx, entityCategory, cat, cat)
}

func (r *Categories) Update(ctx context.Context, cat *domain.Category) error {
	return r.c.update(ctx, entityCategory, cat.ID, cat, cat)
}

func (r *Categories) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, entityCategory, id)
}

func (r *Categories) List(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := r.c.list(ctx, entityCategory, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Config configuração da loja; o backend guarda no máximo um registro
type Config struct{ c *Client }

func NewConfig(c *Client) *Config { return &Config{c: c} }

var _ repository.StoreConfigRepository = (*Config)(nil)

func (r *Config) Get(ctx context.Context) (*domain.StoreConfig, error) {
	var list []domain.StoreConfig
	if err := r.c.list(ctx, entityStoreConfig, nil, &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, repository.ErrNotFound
	}
	return &list[0], nil
}

func (r *Config) Save(ctx context.Context, cfg *domain.StoreConfig) error {
	if cfg.ID == "" {
		return r.c.create(ctx, entityStoreConfig, cfg, cfg)
	}
	return r.c.update(ctx, entityStoreConfig, cfg.ID, cfg, cfg)
}

// Zones repositório de zonas de entrega
type Zones struct{ c *Client }

func NewZones(c *Client) *Zones { return &Zones{c: c} }

var _ repository.DeliveryZoneRepository = (*Zones)(nil)

func (r *Zones) Create(ctx context.Context, z *domain.DeliveryZone) error {
	return r.c.create(ctx, entityDeliveryZone, z, z)
}

func (r *Zones) Update(ctx context.Context, z *domain.DeliveryZone) error {
	return r.c.update(ctx, entityDeliveryZone, z.ID, z, z)
}

func (r *Zones) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, entityDeliveryZone, id)
}

func (r *Zones) List(ctx context.Context) ([]domain.DeliveryZone, error) {
	var out []domain.DeliveryZone
	if err := r.c.list(ctx, entityDeliveryZone, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Closures fechamentos de caixa
type Closures struct{ c *Client }

func NewClosures(c *Client) *Closures { return &Closures{c: c} }

var _ repository.ClosureRepository = (*Closures)(nil)

func (r *Closures) Create(ctx context.Context, cl *domain.DailyClosure) error {
	return r.c.create(ctx, entityDailyClosure, cl, cl)
}

func (r *Closures) GetByDate(ctx context.Context, date string) (*domain.DailyClosure, error) {
	var list []domain.DailyClosure
	if err := r.c.list(ctx, entityDailyClosure, map[string]string{"date": date}, &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, repository.ErrNotFound
	}
	return &list[0], nil
}

func (r *Closures) List(ctx context.Context) ([]domain.DailyClosure, error) {
	var out []domain.DailyClosure
	if err := r.c.list(ctx, entityDailyClosure, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
