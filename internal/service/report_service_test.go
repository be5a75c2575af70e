package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/repository"
)

func seedSale(t *testing.T, orders repository.OrderRepository, when time.Time, items ...domain.OrderItem) {
	t.Helper()
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	o := domain.Order{
		CustomerName:  "Cliente",
		CustomerPhone: "11",
		Products:      items,
		Total:         total,
		Status:        domain.OrderStatusFinalizado,
	}
	if err := orders.Create(context.Background(), &o); err != nil {
		t.Fatalf("seed: %v", err)
	}
	o.CreatedAt = when
	if err := orders.Update(context.Background(), &o); err != nil {
		t.Fatalf("backdate: %v", err)
	}
}

func TestSalesReport(t *testing.T) {
	store := repository.NewMemoryStore()
	orders := repository.NewMemoryOrders(store)
	svc := NewReportService(orders)
	ctx := context.Background()

	d1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	seedSale(t, orders, d1, domain.OrderItem{ID: "p1", Name: "Bolo", Price: 25, Quantity: 2})
	seedSale(t, orders, d2, domain.OrderItem{ID: "p2", Name: "Torta", Price: 30, Quantity: 1})
	seedSale(t, orders, d2, domain.OrderItem{ID: "p1", Name: "Bolo", Price: 25, Quantity: 1})
	// fora do período
	seedSale(t, orders, d2.AddDate(0, 0, 5), domain.OrderItem{ID: "p3", Name: "Pudim", Price: 99, Quantity: 9})

	rep, err := svc.Sales(ctx, "2025-03-10", "2025-03-11")
	if err != nil {
		t.Fatalf("Sales: %v", err)
	}
	if rep.TotalOrders != 3 || rep.TotalRevenue != 105 {
		t.Fatalf("pedidos = %d receita = %v, want 3 / 105", rep.TotalOrders, rep.TotalRevenue)
	}
	if rep.AverageTicket != 35 {
		t.Fatalf("ticket médio = %v, want 35", rep.AverageTicket)
	}
	if len(rep.SalesByDay) != 2 || rep.SalesByDay[0].Date != "2025-03-10" || rep.SalesByDay[1].Orders != 2 {
		t.Fatalf("por dia: %+v", rep.SalesByDay)
	}
	if len(rep.TopProducts) != 2 || rep.TopProducts[0].ProductID != "p1" || rep.TopProducts[0].Quantity != 3 {
		t.Fatalf("top produtos: %+v", rep.TopProducts)
	}
}

func TestSalesReportTopFive(t *testing.T) {
	store := repository.NewMemoryStore()
	orders := repository.NewMemoryOrders(store)
	svc := NewReportService(orders)

	when := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, n := range names {
		seedSale(t, orders, when, domain.OrderItem{ID: n, Name: n, Price: 10, Quantity: i + 1})
	}

	rep, err := svc.Sales(context.Background(), "2025-03-10", "2025-03-10")
	if err != nil {
		t.Fatalf("Sales: %v", err)
	}
	if len(rep.TopProducts) != 5 {
		t.Fatalf("top = %d, want 5", len(rep.TopProducts))
	}
	if rep.TopProducts[0].ProductID != "G" || rep.TopProducts[4].ProductID != "C" {
		t.Fatalf("ordenação: %+v", rep.TopProducts)
	}
}

func TestSalesReportInvalidRange(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewReportService(repository.NewMemoryOrders(store))
	ctx := context.Background()

	if _, err := svc.Sales(ctx, "abc", "2025-03-10"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("from inválido: %v", err)
	}
	if _, err := svc.Sales(ctx, "2025-03-10", "abc"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("to inválido: %v", err)
	}
	if _, err := svc.Sales(ctx, "2025-03-11", "2025-03-10"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("intervalo invertido: %v", err)
	}
}
