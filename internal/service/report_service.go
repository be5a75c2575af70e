package service

import (
	"context"
	"sort"
	"time"

	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/repository"
)

// SalesReport resumo de vendas de um período
type SalesReport struct {
	From          string         `json:"from"`
	To            string         `json:"to"`
	TotalRevenue  float64        `json:"total_revenue"`
	TotalOrders   int            `json:"total_orders"`
	AverageTicket float64        `json:"average_ticket"`
	SalesByDay    []DailySales   `json:"sales_by_day"`
	TopProducts   []ProductSales `json:"top_products"`
}

type DailySales struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// ReportService relatórios do painel sobre pedidos finalizados
type ReportService struct {
	orders repository.OrderRepository
}

func NewReportService(orders repository.OrderRepository) *ReportService {
	return &ReportService{orders: orders}
}

// Sales agrega os pedidos finalizados entre from e to (inclusive, 2006-01-02).
func (s *ReportService) Sales(ctx context.Context, from, to string) (*SalesReport, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, ErrInvalidInput
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil || end.Before(start) {
		return nil, ErrInvalidInput
	}
	end = end.AddDate(0, 0, 1)

	orders, err := s.orders.List(ctx, repository.OrderFilter{Status: domain.OrderStatusFinalizado})
	if err != nil {
		return nil, err
	}

	rep := SalesReport{From: from, To: to}
	byDay := map[string]*DailySales{}
	byProduct := map[string]*ProductSales{}
	for _, o := range orders {
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		rep.TotalRevenue += o.Total
		rep.TotalOrders++

		day := o.CreatedAt.Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &DailySales{Date: day}
			byDay[day] = d
		}
		d.Revenue += o.Total
		d.Orders++

		for _, it := range o.Products {
			ps, ok := byProduct[it.ID]
			if !ok {
				ps = &ProductSales{ProductID: it.ID, Name: it.Name}
				byProduct[it.ID] = ps
			}
			ps.Quantity += it.Quantity
			ps.Revenue += it.Price * float64(it.Quantity)
		}
	}
	if rep.TotalOrders > 0 {
		rep.AverageTicket = rep.TotalRevenue / float64(rep.TotalOrders)
	}

	for _, d := range byDay {
		rep.SalesByDay = append(rep.SalesByDay, *d)
	}
	sort.Slice(rep.SalesByDay, func(i, j int) bool { return rep.SalesByDay[i].Date < rep.SalesByDay[j].Date })

	for _, ps := range byProduct {
		rep.TopProducts = append(rep.TopProducts, *ps)
	}
	sort.Slice(rep.TopProducts, func(i, j int) bool {
		if rep.TopProducts[i].Quantity != rep.TopProducts[j].Quantity {
			return rep.TopProducts[i].Quantity > rep.TopProducts[j].Quantity
		}
		return rep.TopProducts[i].Name < rep.TopProducts[j].Name
	})
	if len(rep.TopProducts) > 5 {
		rep.TopProducts = rep.TopProducts[:5]
	}
	return &rep, nil
}
