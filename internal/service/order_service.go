package service

import (
	"context"
	"errors"

	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/repository"
	"github.com/lucaspascoa/novoteste/internal/stock"
)

var (
	ErrInvalidState      = errors.New("invalid state")
	ErrBelowMinimumOrder = errors.New("below minimum order")
)

// validStatuses transições aceitas pelo painel
var validStatuses = map[domain.OrderStatus]bool{
	domain.OrderStatusPendente:           true,
	domain.OrderStatusEmPreparacao:       true,
	domain.OrderStatusProntoParaRetirada: true,
	domain.OrderStatusSaiuParaEntrega:    true,
	domain.OrderStatusFinalizado:         true,
	domain.OrderStatusCancelado:          true,
}

// OrderService implementa o checkout da loja e a gestão de pedidos do painel
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	zones    repository.DeliveryZoneRepository
	config   repository.StoreConfigRepository
	stock    *stock.Manager
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	zones repository.DeliveryZoneRepository,
	config repository.StoreConfigRepository,
	stockMgr *stock.Manager,
) *OrderService {
	return &OrderService{orders: orders, products: products, zones: zones, config: config, stock: stockMgr}
}

// PlaceOrderInput dados do checkout
type PlaceOrderInput struct {
	CustomerName        string
	CustomerPhone       string
	Items               []CheckoutItem
	DeliveryMethod      string
	PaymentMethod       string
	ChangeFor           string
	AddressStreet       string
	AddressNumber       string
	AddressNeighborhood string
	AddressZipcode      string
	OrderType           string
	StaffName           string
}

// CheckoutItem referência de produto + quantidade vinda do carrinho
type CheckoutItem struct {
	ProductID  string                `json:"product_id"`
	Quantity   int                   `json:"quantity"`
	Variations domain.ItemVariations `json:"variations"`
}

// PlaceOrder congela nome e preço dos produtos no momento do fechamento,
// resolve a taxa de entrega pelo bairro e registra o pedido como Pendente.
// O estoque só é abatido quando o pedido entra em preparação.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if in.CustomerName == "" || in.CustomerPhone == "" || len(in.Items) == 0 {
		return nil, ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
	}
	if in.DeliveryMethod == "Entrega" && (in.AddressStreet == "" || in.AddressNeighborhood == "") {
		return nil, ErrInvalidInput
	}

	// snapshot congelado: nome e preço do catálogo no momento do pedido
	items := make([]domain.OrderItem, 0, len(in.Items))
	var subtotal float64
	for _, it := range in.Items {
		p, err := s.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ID:         p.ID,
			Name:       p.Name,
			Price:      p.Price,
			Quantity:   it.Quantity,
			Variations: it.Variations,
		})
		subtotal += p.Price * float64(it.Quantity)
	}

	var fee float64
	if in.DeliveryMethod == "Entrega" {
		fee = s.deliveryFee(ctx, in.AddressNeighborhood)
	}

	if cfg, err := s.config.Get(ctx); err == nil && subtotal < cfg.MinimumOrder {
		return nil, ErrBelowMinimumOrder
	}

	orderType := in.OrderType
	if orderType == "" {
		orderType = "Online"
	}

	o := domain.Order{
		CustomerName:        in.CustomerName,
		CustomerPhone:       in.CustomerPhone,
		Products:            items,
		Total:               subtotal + fee,
		Status:              domain.OrderStatusPendente,
		OrderType:           orderType,
		DeliveryMethod:      in.DeliveryMethod,
		PaymentMethod:       in.PaymentMethod,
		ChangeFor:           in.ChangeFor,
		AddressStreet:       in.AddressStreet,
		AddressNumber:       in.AddressNumber,
		AddressNeighborhood: in.AddressNeighborhood,
		AddressZipcode:      in.AddressZipcode,
		DeliveryFee:         fee,
		StaffName:           in.StaffName,
	}
	if err := s.orders.Create(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OrderService) deliveryFee(ctx context.Context, neighborhood string) float64 {
	zones, err := s.zones.List(ctx)
	if err != nil {
		return 0
	}
	for _, z := range zones {
		if z.Neighborhood == neighborhood {
			return z.Fee
		}
	}
	return 0
}

// Get retorna o pedido por id
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByID(ctx, id)
}

// List pedidos do painel, mais recentes primeiro
func (s *OrderService) List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error) {
	return s.orders.List(ctx, f)
}

// TrackByPhone pedidos de um cliente para a página de acompanhamento
func (s *OrderService) TrackByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	if phone == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.List(ctx, repository.OrderFilter{CustomerPhone: phone})
}

// UpdateStatus grava o novo status e reconcilia o estoque na transição.
// Os resultados por item são devolvidos ao chamador; falha de um item não
// desfaz o que já foi aplicado.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, newStatus domain.OrderStatus, actor stock.Actor) (*domain.Order, []stock.ItemResult, error) {
	if id == "" || !validStatuses[newStatus] {
		return nil, nil, ErrInvalidInput
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	oldStatus := o.Status
	if oldStatus == newStatus {
		return o, nil, nil
	}
	if oldStatus == domain.OrderStatusCancelado {
		return nil, nil, ErrInvalidState
	}

	o.Status = newStatus
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, nil, err
	}

	results := s.stock.ProcessOrderStatusChange(ctx, o, oldStatus, newStatus, actor)
	return o, results, nil
}
