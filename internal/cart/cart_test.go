package cart

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucaspascoa/novoteste/internal/domain"
)

func produto(id, name string, price float64) domain.Product {
	return domain.Product{ID: id, Name: name, Price: price}
}

func TestAdd_MergesSameProductAndVariations(t *testing.T) {
	c := New(NewMemoryStorage())
	p := produto("p1", "Camiseta", 30)

	require.NoError(t, c.Add(p, domain.ItemVariations{Color: "#fff", Size: "M"}, 1))
	require.NoError(t, c.Add(p, domain.ItemVariations{Color: "#fff", Size: "M"}, 2))
	// variação diferente vira outra linha
	require.NoError(t, c.Add(p, domain.ItemVariations{Color: "#000", Size: "M"}, 1))

	items, err := c.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	c := New(NewMemoryStorage())
	err := c.Add(produto("p1", "A", 10), domain.ItemVariations{}, 0)
	assert.Error(t, err)
}

func TestUpdateQuantity_BelowOneRemovesLine(t *testing.T) {
	c := New(NewMemoryStorage())
	p := produto("p1", "A", 10)
	require.NoError(t, c.Add(p, domain.ItemVariations{}, 2))
	items, _ := c.Items()
	require.Len(t, items, 1)
	key := items[0].Key

	require.NoError(t, c.UpdateQuantity(key, 5))
	items, _ = c.Items()
	assert.Equal(t, 5, items[0].Quantity)

	require.NoError(t, c.UpdateQuantity(key, 0))
	items, _ = c.Items()
	assert.Empty(t, items)
}

func TestSubtotalAndTotal(t *testing.T) {
	c := New(NewMemoryStorage())
	require.NoError(t, c.Add(produto("p1", "A", 10), domain.ItemVariations{}, 2))
	require.NoError(t, c.Add(produto("p2", "B", 5.5), domain.ItemVariations{}, 1))

	sub, err := c.Subtotal()
	require.NoError(t, err)
	assert.InDelta(t, 25.5, sub, 0.001)

	total, err := c.Total(8)
	require.NoError(t, err)
	assert.InDelta(t, 33.5, total, 0.001)
}

func TestClearAndOrderItems(t *testing.T) {
	c := New(NewMemoryStorage())
	require.NoError(t, c.Add(produto("p1", "A", 10), domain.ItemVariations{Size: "G"}, 3))

	orderItems, err := c.OrderItems()
	require.NoError(t, err)
	require.Len(t, orderItems, 1)
	assert.Equal(t, "p1", orderItems[0].ID)
	assert.Equal(t, 3, orderItems[0].Quantity)
	assert.Equal(t, "G", orderItems[0].Variations.Size)

	require.NoError(t, c.Clear())
	items, _ := c.Items()
	assert.Empty(t, items)
}

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	c := New(NewFileStorage(path))

	require.NoError(t, c.Add(produto("p1", "A", 12), domain.ItemVariations{}, 2))

	// nova instância sobre o mesmo arquivo enxerga o estado salvo
	c2 := New(NewFileStorage(path))
	items, err := c2.Items()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestFileStorage_MissingFileIsEmptyCart(t *testing.T) {
	c := New(NewFileStorage(filepath.Join(t.TempDir(), "missing.json")))
	items, err := c.Items()
	require.NoError(t, err)
	assert.Empty(t, items)
}
