package service

import (
	"context"
	"errors"
	"time"

	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/repository"
)

var ErrAlreadyClosed = errors.New("day already closed")

// ClosureService fecha o caixa do dia somando os pedidos finalizados
type ClosureService struct {
	orders   repository.OrderRepository
	closures repository.ClosureRepository
}

func NewClosureService(orders repository.OrderRepository, closures repository.ClosureRepository) *ClosureService {
	return &ClosureService{orders: orders, closures: closures}
}

// Compute monta o resumo do dia sem persistir nada. A data segue o formato
// 2006-01-02; pedidos sem vendedor entram como "Online".
func (s *ClosureService) Compute(ctx context.Context, date string) (*domain.DailyClosure, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidInput
	}
	orders, err := s.orders.List(ctx, repository.OrderFilter{Status: domain.OrderStatusFinalizado})
	if err != nil {
		return nil, err
	}

	c := domain.DailyClosure{
		Date:            date,
		ByPaymentMethod: map[string]float64{},
		ByStaff:         map[string]float64{},
	}
	next := day.AddDate(0, 0, 1)
	for _, o := range orders {
		if o.CreatedAt.Before(day) || !o.CreatedAt.Before(next) {
			continue
		}
		c.TotalSales += o.Total
		c.TotalOrders++
		if o.PaymentMethod != "" {
			c.ByPaymentMethod[o.PaymentMethod] += o.Total
		}
		staff := o.StaffName
		if staff == "" {
			staff = "Online"
		}
		c.ByStaff[staff] += o.Total
	}
	return &c, nil
}

// Close persiste o fechamento do dia. Cada data só fecha uma vez.
func (s *ClosureService) Close(ctx context.Context, date, notes, closedByName string) (*domain.DailyClosure, error) {
	if _, err := s.closures.GetByDate(ctx, date); err == nil {
		return nil, ErrAlreadyClosed
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	c, err := s.Compute(ctx, date)
	if err != nil {
		return nil, err
	}
	c.Notes = notes
	c.ClosedByName = closedByName
	if err := s.closures.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List fechamentos já registrados
func (s *ClosureService) List(ctx context.Context) ([]domain.DailyClosure, error) {
	return s.closures.List(ctx)
}
