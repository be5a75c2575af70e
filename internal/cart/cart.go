// Package cart modela o carrinho da sessão da loja como estado explícito
// com estratégia de persistência injetada, em vez de acesso global ambiente.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/lucaspascoa/novoteste/internal/domain"
)

// Item linha do carrinho. Key identifica produto + variações; itens com a
// mesma Key têm quantidades somadas.
type Item struct {
	Key        string                `json:"key"`
	Product    domain.Product        `json:"product"`
	Variations domain.ItemVariations `json:"variations"`
	Quantity   int                   `json:"quantity"`
}

// itemKey produto + cor + tamanho, com "none" para variação ausente
func itemKey(productID string, v domain.ItemVariations) string {
	color, size := v.Color, v.Size
	if color == "" {
		color = "none"
	}
	if size == "" {
		size = "none"
	}
	return fmt.Sprintf("%s-%s-%s", productID, color, size)
}

// Storage estratégia de persistência do carrinho
type Storage interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

// MemoryStorage persistência em memória, usada em testes e sessões de servidor
type MemoryStorage struct {
	mu    sync.Mutex
	items []Item
}

func NewMemoryStorage() *MemoryStorage { return &MemoryStorage{} }

func (m *MemoryStorage) Load() ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemoryStorage) Save(items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make([]Item, len(items))
	copy(m.items, items)
	return nil
}

// FileStorage persistência em arquivo JSON, para o modo quiosque/balcão
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage { return &FileStorage{path: path} }

func (f *FileStorage) Load() ([]Item, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (f *FileStorage) Save(items []Item) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o644)
}

// Cart estado do carrinho de uma sessão
type Cart struct {
	storage Storage
}

func New(storage Storage) *Cart { return &Cart{storage: storage} }

// Add inclui o produto; linha já existente com as mesmas variações soma a quantidade
func (c *Cart) Add(p domain.Product, variations domain.ItemVariations, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantidade deve ser positiva")
	}
	items, err := c.storage.Load()
	if err != nil {
		return err
	}
	key := itemKey(p.ID, variations)
	for i := range items {
		if items[i].Key == key {
			items[i].Quantity += quantity
			return c.storage.Save(items)
		}
	}
	items = append(items, Item{Key: key, Product: p, Variations: variations, Quantity: quantity})
	return c.storage.Save(items)
}

// UpdateQuantity fixa a quantidade da linha; abaixo de 1 a linha é removida
func (c *Cart) UpdateQuantity(key string, quantity int) error {
	if quantity < 1 {
		return c.Remove(key)
	}
	items, err := c.storage.Load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].Key == key {
			items[i].Quantity = quantity
			return c.storage.Save(items)
		}
	}
	return nil
}

// Remove tira a linha do carrinho
func (c *Cart) Remove(key string) error {
	items, err := c.storage.Load()
	if err != nil {
		return err
	}
	out := items[:0]
	for _, it := range items {
		if it.Key != key {
			out = append(out, it)
		}
	}
	return c.storage.Save(out)
}

// Clear esvazia o carrinho
func (c *Cart) Clear() error {
	return c.storage.Save(nil)
}

// Items linhas atuais do carrinho
func (c *Cart) Items() ([]Item, error) {
	return c.storage.Load()
}

// Subtotal soma de preço x quantidade das linhas
func (c *Cart) Subtotal() (float64, error) {
	items, err := c.storage.Load()
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, it := range items {
		sum += it.Product.Price * float64(it.Quantity)
	}
	return sum, nil
}

// Total subtotal mais taxa de entrega
func (c *Cart) Total(deliveryFee float64) (float64, error) {
	sub, err := c.Subtotal()
	if err != nil {
		return 0, err
	}
	return sub + deliveryFee, nil
}

// OrderItems converte as linhas em itens congelados de pedido
func (c *Cart) OrderItems() ([]domain.OrderItem, error) {
	items, err := c.storage.Load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.OrderItem{
			ID:         it.Product.ID,
			Name:       it.Product.Name,
			Price:      it.Product.Price,
			Quantity:   it.Quantity,
			Variations: it.Variations,
		})
	}
	return out, nil
}
