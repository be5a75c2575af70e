package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/repository"
	"github.com/lucaspascoa/novoteste/internal/stock"
)

func newProductFixture(t *testing.T) (*ProductService, *repository.MemoryStore, *repository.MemoryAudit) {
	t.Helper()
	store := repository.NewMemoryStore()
	audit := repository.NewMemoryAudit(store)
	return NewProductService(store, audit), store, audit
}

func TestProductCreateDerivesStockStatus(t *testing.T) {
	svc, _, audit := newProductFixture(t)
	ctx := context.Background()
	actor := stock.Actor{ID: "s1", Name: "Carla"}

	cases := []struct {
		name      string
		stockQty  int
		min       int
		allowZero bool
		want      domain.StockStatus
	}{
		{"em estoque", 10, 2, false, domain.StockStatusInStock},
		{"estoque baixo", 2, 2, false, domain.StockStatusLowStock},
		{"esgotado", 0, 2, false, domain.StockStatusOutOfStock},
		{"zero permitido", 0, 2, true, domain.StockStatusOutOfStock},
	}
	for _, tc := range cases {
		p, err := svc.Create(ctx, domain.Product{
			Name:           "Produto " + tc.name,
			Category:       "Doces",
			Price:          10,
			Stock:          tc.stockQty,
			MinimumStock:   tc.min,
			AllowZeroStock: tc.allowZero,
		}, actor)
		if err != nil {
			t.Fatalf("%s: Create: %v", tc.name, err)
		}
		if p.StockStatus != tc.want {
			t.Fatalf("%s: stock_status = %q, want %q", tc.name, p.StockStatus, tc.want)
		}
	}

	logs, err := audit.List(ctx, "")
	if err != nil {
		t.Fatalf("audit list: %v", err)
	}
	if len(logs) != len(cases) {
		t.Fatalf("auditoria = %d entradas, want %d", len(logs), len(cases))
	}
	if logs[0].Action != domain.AuditActionCreate || logs[0].PerformedByName != "Carla" {
		t.Fatalf("entrada de auditoria inesperada: %+v", logs[0])
	}
}

func TestProductCreateValidation(t *testing.T) {
	svc, _, _ := newProductFixture(t)
	ctx := context.Background()

	bad := []domain.Product{
		{Category: "Doces", Price: 10},
		{Name: "Bolo", Price: 10},
		{Name: "Bolo", Category: "Doces", Price: -1},
		{Name: "Bolo", Category: "Doces", Price: 10, Stock: -1},
		{Name: "Bolo", Category: "Doces", Price: 10, MinimumStock: -1},
	}
	for i, p := range bad {
		if _, err := svc.Create(ctx, p, stock.Actor{}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("caso %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestProductUpdateKeepsStatusWhenOmitted(t *testing.T) {
	svc, _, audit := newProductFixture(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, domain.Product{
		Name: "Bolo", Category: "Doces", Price: 10, Stock: 5, MinimumStock: 1,
		Status: domain.ProductStatusInactive,
	}, stock.Actor{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	upd := *p
	upd.Status = ""
	upd.Price = 12
	got, err := svc.Update(ctx, upd, stock.Actor{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != domain.ProductStatusInactive {
		t.Fatalf("status = %q, want inativo preservado", got.Status)
	}
	if got.Price != 12 {
		t.Fatalf("price = %v", got.Price)
	}

	logs, _ := audit.List(ctx, p.ID)
	last := logs[len(logs)-1]
	if last.Action != domain.AuditActionUpdate {
		t.Fatalf("action = %q", last.Action)
	}
	if last.Changes.Before == nil || last.Changes.After == nil {
		t.Fatalf("update precisa de before e after: %+v", last.Changes)
	}
}

func TestProductDeleteAudits(t *testing.T) {
	svc, store, audit := newProductFixture(t)
	ctx := context.Background()

	p, _ := svc.Create(ctx, domain.Product{Name: "Torta", Category: "Doces", Price: 30, Stock: 3}, stock.Actor{})
	if err := svc.Delete(ctx, p.ID, stock.Actor{}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByID(ctx, p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("produto ainda existe: %v", err)
	}

	logs, _ := audit.List(ctx, p.ID)
	last := logs[len(logs)-1]
	if last.Action != domain.AuditActionDelete || last.PerformedByName != "Sistema" {
		t.Fatalf("entrada de auditoria: %+v", last)
	}
	if last.Changes.After != nil {
		t.Fatalf("delete não tem after: %+v", last.Changes)
	}

	if err := svc.Delete(ctx, "nope", stock.Actor{}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestProductListActive(t *testing.T) {
	svc, _, _ := newProductFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.Product{Name: "Ativo", Category: "Doces", Price: 5, Stock: 5}, stock.Actor{}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, domain.Product{
		Name: "Inativo", Category: "Doces", Price: 5, Stock: 5,
		Status: domain.ProductStatusInactive,
	}, stock.Actor{}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.ListActive(ctx, repository.ProductFilter{})
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ativo" {
		t.Fatalf("vitrine = %+v", got)
	}

	all, err := svc.List(ctx, repository.ProductFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin vê %d, want 2", len(all))
	}
}
