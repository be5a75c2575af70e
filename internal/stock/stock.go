// Package stock implementa o ajuste de estoque e a reconciliação disparada
// por mudanças de status de pedido, com trilha de auditoria.
package stock

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/obs"
	"github.com/lucaspascoa/novoteste/internal/repository"
)

// statusRedutores status de pedido nos quais o estoque já foi comprometido
var statusRedutores = map[domain.OrderStatus]bool{
	domain.OrderStatusEmPreparacao:       true,
	domain.OrderStatusProntoParaRetirada: true,
	domain.OrderStatusSaiuParaEntrega:    true,
	domain.OrderStatusFinalizado:         true,
}

// Actor identifica quem executou a mutação, para a trilha de auditoria
type Actor struct {
	ID   string
	Name string
}

func (a Actor) DisplayName() string {
	if a.Name == "" {
		return "Sistema"
	}
	return a.Name
}

// AdjustResult resultado de um ajuste de estoque. Falhas são absorvidas aqui:
// nenhuma operação propaga erro além da própria fronteira.
type AdjustResult struct {
	Success        bool               `json:"success"`
	NewStock       int                `json:"new_stock"`
	StockStatus    domain.StockStatus `json:"stock_status,omitempty"`
	WasDeactivated bool               `json:"was_deactivated,omitempty"`
	WasReactivated bool               `json:"was_reactivated,omitempty"`
	NotFound       bool               `json:"not_found,omitempty"`
	Error          string             `json:"error,omitempty"`
}

// ItemResult resultado por item de pedido em ProcessOrderStatusChange
type ItemResult struct {
	ProductID string       `json:"product_id"`
	Action    string       `json:"action"` // "reduce" ou "restore"
	Result    AdjustResult `json:"result"`
}

// RecalcResult resultado da varredura de recálculo
type RecalcResult struct {
	Success      bool   `json:"success"`
	UpdatedCount int    `json:"updated_count"`
	Error        string `json:"error,omitempty"`
}

// Manager aplica os ajustes de estoque sobre o repositório de produtos e
// registra cada mutação na trilha de auditoria
type Manager struct {
	products    repository.ProductRepository
	audit       repository.AuditLogRepository
	tracer      trace.Tracer
	adjustments metric.Int64Counter
}

func NewManager(products repository.ProductRepository, audit repository.AuditLogRepository, tracer trace.Tracer) *Manager {
	counter, err := otel.Meter("stock").Int64Counter("stock.adjustments",
		metric.WithDescription("Ajustes de estoque aplicados"))
	if err != nil {
		obs.Logger.Warn("metric counter init failed", "err", err)
	}
	return &Manager{products: products, audit: audit, tracer: tracer, adjustments: counter}
}

// Classify recalcula (stock_status, status) a partir do estoque atual.
// O status só muda ao zerar, e apenas quando allow_zero_stock é falso;
// estoque zero é sempre out_of_stock, mesmo com minimum_stock zero.
func Classify(stock, minimumStock int, allowZeroStock bool, current domain.ProductStatus) (domain.StockStatus, domain.ProductStatus) {
	if stock == 0 {
		if allowZeroStock {
			return domain.StockStatusOutOfStock, current
		}
		return domain.StockStatusOutOfStock, domain.ProductStatusInactive
	}
	if stock <= minimumStock {
		return domain.StockStatusLowStock, current
	}
	return domain.StockStatusInStock, current
}

// ReduceStock abate quantity do estoque do produto, saturando em zero.
// Zerar o estoque desativa o produto, salvo allow_zero_stock.
func (m *Manager) ReduceStock(ctx context.Context, productID string, quantity int, actor Actor) AdjustResult {
	ctx, span := m.tracer.Start(ctx, "stock.reduce",
		trace.WithAttributes(attribute.String("product.id", productID), attribute.Int("quantity", quantity)))
	defer span.End()

	p, err := m.products.GetByID(ctx, productID)
	if err != nil {
		return failure(fmt.Errorf("produto %s: %w", productID, err))
	}
	before := *p

	newStock := p.Stock - quantity
	if newStock < 0 {
		newStock = 0
	}
	stockStatus, status := Classify(newStock, p.MinimumStock, p.AllowZeroStock, p.Status)

	p.Stock = newStock
	p.StockStatus = stockStatus
	p.Status = status
	if err := m.products.Update(ctx, p); err != nil {
		return failure(fmt.Errorf("atualizar produto %s: %w", productID, err))
	}

	m.appendAudit(ctx, before, *p, actor)
	m.count(ctx, "reduce")

	return AdjustResult{
		Success:        true,
		NewStock:       newStock,
		StockStatus:    stockStatus,
		WasDeactivated: status == domain.ProductStatusInactive && before.Status == domain.ProductStatusActive,
	}
}

// IncreaseStock acrescenta quantity ao estoque, sem limite superior.
// Produto inativo com estoque voltando a ficar positivo é reativado; esse é
// o único caminho que reativa automaticamente.
func (m *Manager) IncreaseStock(ctx context.Context, productID string, quantity int, actor Actor) AdjustResult {
	ctx, span := m.tracer.Start(ctx, "stock.increase",
		trace.WithAttributes(attribute.String("product.id", productID), attribute.Int("quantity", quantity)))
	defer span.End()

	p, err := m.products.GetByID(ctx, productID)
	if err != nil {
		return failure(fmt.Errorf("produto %s: %w", productID, err))
	}
	before := *p

	newStock := p.Stock + quantity
	stockStatus, status := Classify(newStock, p.MinimumStock, p.AllowZeroStock, p.Status)
	if before.Status == domain.ProductStatusInactive && newStock > 0 {
		status = domain.ProductStatusActive
	}

	p.Stock = newStock
	p.StockStatus = stockStatus
	p.Status = status
	if err := m.products.Update(ctx, p); err != nil {
		return failure(fmt.Errorf("atualizar produto %s: %w", productID, err))
	}

	m.appendAudit(ctx, before, *p, actor)
	m.count(ctx, "increase")

	return AdjustResult{
		Success:        true,
		NewStock:       newStock,
		StockStatus:    stockStatus,
		WasReactivated: status == domain.ProductStatusActive && before.Status == domain.ProductStatusInactive,
	}
}

// ProcessOrderStatusChange reconcilia o estoque numa transição de status:
// abate na borda não-comprometido -> comprometido e devolve no cancelamento
// de pedido já comprometido. Transições dentro do conjunto redutor não
// reabatem. Falha de um item não interrompe os demais.
func (m *Manager) ProcessOrderStatusChange(ctx context.Context, order *domain.Order, oldStatus, newStatus domain.OrderStatus, actor Actor) []ItemResult {
	ctx, span := m.tracer.Start(ctx, "stock.order_status_change",
		trace.WithAttributes(
			attribute.String("order.id", order.ID),
			attribute.String("order.status.old", string(oldStatus)),
			attribute.String("order.status.new", string(newStatus)),
		))
	defer span.End()

	results := make([]ItemResult, 0, len(order.Products))

	wasReduced := statusRedutores[oldStatus]
	shouldReduce := statusRedutores[newStatus]
	shouldRestore := newStatus == domain.OrderStatusCancelado

	if !wasReduced && shouldReduce {
		for _, item := range order.Products {
			res := m.ReduceStock(ctx, item.ID, item.Quantity, actor)
			if !res.Success {
				obs.Logger.Warn("falha ao abater estoque do item",
					"order_id", order.ID, "product_id", item.ID, "err", res.Error)
			}
			results = append(results, ItemResult{ProductID: item.ID, Action: "reduce", Result: res})
		}
	}

	if shouldRestore && wasReduced {
		for _, item := range order.Products {
			res := m.IncreaseStock(ctx, item.ID, item.Quantity, actor)
			if !res.Success {
				obs.Logger.Warn("falha ao devolver estoque do item",
					"order_id", order.ID, "product_id", item.ID, "err", res.Error)
			}
			results = append(results, ItemResult{ProductID: item.ID, Action: "restore", Result: res})
		}
	}

	return results
}

// RecalculateAllStockStatus varredura de consistência: reclassifica todos os
// produtos a partir do estoque atual e persiste apenas os que mudaram.
// Diferente de IncreaseStock, a varredura nunca reativa um produto inativo.
func (m *Manager) RecalculateAllStockStatus(ctx context.Context) RecalcResult {
	ctx, span := m.tracer.Start(ctx, "stock.recalculate_all")
	defer span.End()

	products, err := m.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return RecalcResult{Success: false, Error: err.Error()}
	}

	updated := 0
	for i := range products {
		p := products[i]
		stockStatus, status := Classify(p.Stock, p.MinimumStock, p.AllowZeroStock, p.Status)
		if p.StockStatus == stockStatus && p.Status == status {
			continue
		}
		p.StockStatus = stockStatus
		p.Status = status
		if err := m.products.Update(ctx, &p); err != nil {
			return RecalcResult{Success: false, UpdatedCount: updated, Error: err.Error()}
		}
		updated++
	}
	return RecalcResult{Success: true, UpdatedCount: updated}
}

// LowStockProducts produtos ativos com estoque no mínimo ou abaixo dele
// (inclusive: mínimo zero casa com estoque zero).
func (m *Manager) LowStockProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := m.products.List(ctx, repository.ProductFilter{Status: domain.ProductStatusActive})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0)
	for _, p := range products {
		if p.Stock <= p.MinimumStock {
			out = append(out, p)
		}
	}
	return out, nil
}

// appendAudit registra a mutação com snapshots completos. Falha de auditoria
// não desfaz nem falha o ajuste: é logada e seguimos.
func (m *Manager) appendAudit(ctx context.Context, before, after domain.Product, actor Actor) {
	entry := domain.AuditLog{
		EntityName:      "Product",
		EntityID:        before.ID,
		Action:          domain.AuditActionUpdate,
		Changes:         domain.AuditChanges{Before: before, After: after},
		PerformedByID:   actor.ID,
		PerformedByName: actor.DisplayName(),
	}
	if err := m.audit.Create(ctx, &entry); err != nil {
		obs.Logger.Warn("falha ao gravar auditoria", "entity_id", before.ID, "err", err)
	}
}

func (m *Manager) count(ctx context.Context, action string) {
	if m.adjustments == nil {
		return
	}
	m.adjustments.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

func failure(err error) AdjustResult {
	return AdjustResult{
		Success:  false,
		NotFound: errors.Is(err, repository.ErrNotFound),
		Error:    err.Error(),
	}
}
