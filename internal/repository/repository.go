package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/lucaspascoa/novoteste/internal/domain"
)

// ErrNotFound retornado quando a entidade não existe
var ErrNotFound = errors.New("not found")

// ProductFilter parâmetros de filtragem da listagem de produtos
type ProductFilter struct {
	NameSubstring string
	Category      string
	Status        domain.ProductStatus
	MinPrice      *float64
	MaxPrice      *float64
}

// OrderFilter parâmetros de filtragem da listagem de pedidos
type OrderFilter struct {
	Status        domain.OrderStatus
	CustomerPhone string
}

// ProductRepository contrato de persistência de produtos
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
}

// OrderRepository contrato de persistência de pedidos
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	List(ctx context.Context, f OrderFilter) ([]domain.Order, error)
}

// AuditLogRepository trilha de auditoria append-only: apenas criação e leitura
type AuditLogRepository interface {
	Create(ctx context.Context, e *domain.AuditLog) error
	List(ctx context.Context, entityID string) ([]domain.AuditLog, error)
}

// StaffRepository contrato de persistência da equipe
type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) error
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
	GetByUsername(ctx context.Context, username string) (*domain.Staff, error)
	Update(ctx context.Context, s *domain.Staff) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Staff, error)
}

// RoleRepository contrato de persistência de perfis de acesso
type RoleRepository interface {
	Create(ctx context.Context, r *domain.Role) error
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	Update(ctx context.Context, r *domain.Role) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Role, error)
}

// CategoryRepository contrato de persistência de categorias
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Category, error)
}

// StoreConfigRepository configuração única da loja
type StoreConfigRepository interface {
	Get(ctx context.Context) (*domain.StoreConfig, error)
	Save(ctx context.Context, cfg *domain.StoreConfig) error
}

// DeliveryZoneRepository contrato de persistência de zonas de entrega
type DeliveryZoneRepository interface {
	Create(ctx context.Context, z *domain.DeliveryZone) error
	Update(ctx context.Context, z *domain.DeliveryZone) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.DeliveryZone, error)
}

// ClosureRepository fechamentos de caixa
type ClosureRepository interface {
	Create(ctx context.Context, c *domain.DailyClosure) error
	GetByDate(ctx context.Context, date string) (*domain.DailyClosure, error)
	List(ctx context.Context) ([]domain.DailyClosure, error)
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
