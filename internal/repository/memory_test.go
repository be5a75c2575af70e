package repository

import (
	"context"
	"testing"

	"github.com/lucaspascoa/novoteste/internal/domain"
)

func TestMemoryStore_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := domain.Product{Name: "Dipirona", Category: "Medicamentos", Price: 10, Stock: 5, Status: domain.ProductStatusActive}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("no id")
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get: %v", err)
	}

	p.Price = 12
	if err := store.Update(ctx, &p); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, p.ID); err == nil {
		t.Fatalf("expected not found")
	}
}

func TestList_Filtering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	add := func(n, cat string, price float64, status domain.ProductStatus) {
		p := domain.Product{Name: n, Category: cat, Price: price, Stock: 1, Status: status}
		if err := store.Create(ctx, &p); err != nil {
			t.Fatal(err)
		}
	}
	add("Aspirina", "Medicamentos", 100, domain.ProductStatusActive)
	add("Paracetamol", "Medicamentos", 50, domain.ProductStatusActive)
	add("Shampoo", "Higiene", 150, domain.ProductStatusInactive)

	// name contains
	list, _ := store.List(ctx, ProductFilter{NameSubstring: "ina"})
	if len(list) == 0 {
		t.Fatalf("name filter empty")
	}

	// category
	list, _ = store.List(ctx, ProductFilter{Category: "Higiene"})
	if len(list) != 1 || list[0].Name != "Shampoo" {
		t.Fatalf("category filter fail: %v", list)
	}

	// status
	list, _ = store.List(ctx, ProductFilter{Status: domain.ProductStatusActive})
	if len(list) != 2 {
		t.Fatalf("status filter fail: %v", list)
	}

	// min
	min := 100.0
	list, _ = store.List(ctx, ProductFilter{MinPrice: &min})
	for _, p := range list {
		if p.Price < min {
			t.Fatalf("min filter fail")
		}
	}

	// max
	max := 100.0
	list, _ = store.List(ctx, ProductFilter{MaxPrice: &max})
	for _, p := range list {
		if p.Price > max {
			t.Fatalf("max filter fail")
		}
	}
}

func TestMemoryOrders_ListByStatusAndPhone(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewMemoryOrders(store)

	o1 := domain.Order{CustomerName: "Ana", CustomerPhone: "5593999990000", Status: domain.OrderStatusPendente}
	o2 := domain.Order{CustomerName: "Bruno", CustomerPhone: "5593999991111", Status: domain.OrderStatusFinalizado}
	if err := orders.Create(ctx, &o1); err != nil {
		t.Fatal(err)
	}
	if err := orders.Create(ctx, &o2); err != nil {
		t.Fatal(err)
	}

	list, _ := orders.List(ctx, OrderFilter{Status: domain.OrderStatusFinalizado})
	if len(list) != 1 || list[0].CustomerName != "Bruno" {
		t.Fatalf("status filter: %v", list)
	}

	list, _ = orders.List(ctx, OrderFilter{CustomerPhone: "5593999990000"})
	if len(list) != 1 || list[0].CustomerName != "Ana" {
		t.Fatalf("phone filter: %v", list)
	}
}

func TestMemoryAudit_AppendOnly(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	audit := NewMemoryAudit(store)

	e := domain.AuditLog{EntityName: "Product", EntityID: "p1", Action: domain.AuditActionUpdate, PerformedByName: "Sistema"}
	if err := audit.Create(ctx, &e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Fatalf("entry not stamped: %+v", e)
	}

	list, err := audit.List(ctx, "p1")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %v", err, list)
	}
	list, _ = audit.List(ctx, "other")
	if len(list) != 0 {
		t.Fatalf("expected empty for other entity")
	}
}

func TestMemoryStaff_GetByUsername(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	staff := NewMemoryStaff(store)

	s := domain.Staff{Username: "maria", FullName: "Maria Souza", Role: "Vendedor", Status: "active"}
	if err := staff.Create(ctx, &s); err != nil {
		t.Fatal(err)
	}
	got, err := staff.GetByUsername(ctx, "maria")
	if err != nil || got.FullName != "Maria Souza" {
		t.Fatalf("get by username: %v", err)
	}
	if _, err := staff.GetByUsername(ctx, "joao"); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryConfig_Singleton(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	cfgRepo := NewMemoryConfig(store)

	if _, err := cfgRepo.Get(ctx); err != ErrNotFound {
		t.Fatalf("expected not found before save, got %v", err)
	}
	cfg := domain.StoreConfig{StoreName: "Loja Teste", PickupEnabled: true}
	if err := cfgRepo.Save(ctx, &cfg); err != nil {
		t.Fatal(err)
	}
	got, err := cfgRepo.Get(ctx)
	if err != nil || got.StoreName != "Loja Teste" {
		t.Fatalf("get after save: %v", err)
	}
}
