package service

import (
	"context"
	"errors"

	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/obs"
	"github.com/lucaspascoa/novoteste/internal/repository"
	"github.com/lucaspascoa/novoteste/internal/stock"
)

var ErrInvalidInput = errors.New("invalid input")

// ProductService encapsula a gestão do catálogo. Toda gravação recalcula o
// stock_status a partir do estoque informado e registra auditoria.
type ProductService struct {
	repo  repository.ProductRepository
	audit repository.AuditLogRepository
}

func NewProductService(repo repository.ProductRepository, audit repository.AuditLogRepository) *ProductService {
	return &ProductService{repo: repo, audit: audit}
}

func (s *ProductService) Create(ctx context.Context, p domain.Product, actor stock.Actor) (*domain.Product, error) {
	if p.Name == "" || p.Category == "" || p.Price < 0 || p.Stock < 0 || p.MinimumStock < 0 {
		return nil, ErrInvalidInput
	}
	if p.Status == "" {
		p.Status = domain.ProductStatusActive
	}
	// o formulário autoriza o status; só o stock_status é derivado aqui
	p.StockStatus, _ = stock.Classify(p.Stock, p.MinimumStock, p.AllowZeroStock, p.Status)

	cp := p
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, domain.AuditActionCreate, cp.ID, nil, cp, actor)
	return &cp, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, p domain.Product, actor stock.Actor) (*domain.Product, error) {
	if p.ID == "" || p.Name == "" || p.Price < 0 || p.Stock < 0 || p.MinimumStock < 0 {
		return nil, ErrInvalidInput
	}
	before, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if p.Status == "" {
		p.Status = before.Status
	}
	p.StockStatus, _ = stock.Classify(p.Stock, p.MinimumStock, p.AllowZeroStock, p.Status)
	p.CreatedAt = before.CreatedAt

	cp := p
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, domain.AuditActionUpdate, cp.ID, *before, cp, actor)
	return &cp, nil
}

func (s *ProductService) Delete(ctx context.Context, id string, actor stock.Actor) error {
	if id == "" {
		return ErrInvalidInput
	}
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.appendAudit(ctx, domain.AuditActionDelete, id, *before, nil, actor)
	return nil
}

func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, f)
}

// ListActive vitrine da loja: apenas produtos ativos
func (s *ProductService) ListActive(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	f.Status = domain.ProductStatusActive
	return s.repo.List(ctx, f)
}

func (s *ProductService) appendAudit(ctx context.Context, action domain.AuditAction, entityID string, before, after any, actor stock.Actor) {
	entry := domain.AuditLog{
		EntityName:      "Product",
		EntityID:        entityID,
		Action:          action,
		Changes:         domain.AuditChanges{Before: before, After: after},
		PerformedByID:   actor.ID,
		PerformedByName: actor.DisplayName(),
	}
	if err := s.audit.Create(ctx, &entry); err != nil {
		obs.Logger.Warn("falha ao gravar auditoria", "entity_id", entityID, "err", err)
	}
}
