package base44

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/repository"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "app-1", "chave-secreta")
}

func TestProducts_ListSendsEqualityFilters(t *testing.T) {
	var gotPath, gotStatus, gotKey string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStatus = r.URL.Query().Get("status")
		gotKey = r.Header.Get("api_key")
		_ = json.NewEncoder(w).Encode([]domain.Product{
			{ID: "p1", Name: "Sabonete", Price: 5},
			{ID: "p2", Name: "Shampoo", Price: 20},
		})
	})

	list, err := NewProducts(c).List(context.Background(), repository.ProductFilter{
		Status:        domain.ProductStatusActive,
		NameSubstring: "sham",
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/apps/app-1/entities/Product", gotPath)
	assert.Equal(t, "active", gotStatus)
	assert.Equal(t, "chave-secreta", gotKey)
	// substring é aplicado do lado do cliente
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0].ID)
}

func TestProducts_GetByIDNotFound(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	_, err := NewProducts(c).GetByID(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProducts_UpdatePutsFullRecord(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody domain.Product
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(gotBody)
	})

	p := domain.Product{ID: "p1", Name: "Sabonete", Stock: 3, StockStatus: domain.StockStatusLowStock}
	require.NoError(t, NewProducts(c).Update(context.Background(), &p))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/apps/app-1/entities/Product/p1", gotPath)
	assert.Equal(t, 3, gotBody.Stock)
}

func TestStaff_GetByUsername(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("username") == "maria" {
			_ = json.NewEncoder(w).Encode([]domain.Staff{{ID: "s1", Username: "maria"}})
			return
		}
		_ = json.NewEncoder(w).Encode([]domain.Staff{})
	})

	s, err := NewStaff(c).GetByUsername(context.Background(), "maria")
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)

	_, err = NewStaff(c).GetByUsername(context.Background(), "jose")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAuditLogs_CreatePosts(t *testing.T) {
	var gotPath string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var e domain.AuditLog
		require.NoError(t, json.NewDecoder(r.Body).Decode(&e))
		e.ID = "a1"
		_ = json.NewEncoder(w).Encode(e)
	})

	e := domain.AuditLog{EntityName: "Product", EntityID: "p1", Action: domain.AuditActionUpdate}
	require.NoError(t, NewAuditLogs(c).Create(context.Background(), &e))
	assert.Equal(t, "/api/apps/app-1/entities/AuditLog", gotPath)
	assert.Equal(t, "a1", e.ID)
}

func TestConfig_GetUsesFirstRecord(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]domain.StoreConfig{{ID: "cfg1", StoreName: "Loja"}})
	})
	cfg, err := NewConfig(c).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Loja", cfg.StoreName)
}

func TestUploadFile(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/apps/app-1/files", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "logo.png", hdr.Filename)
		_ = json.NewEncoder(w).Encode(UploadResult{FileURL: "https://cdn.example.com/logo.png"})
	})

	res, err := c.UploadFile(context.Background(), "logo.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/logo.png", res.FileURL)
}

func TestServerErrorSurfaces(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	_, err := NewProducts(c).List(context.Background(), repository.ProductFilter{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}
