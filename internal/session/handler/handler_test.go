package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	invusecase "github.com/pantrylab/inventory-service/internal/inventory/usecase"
	"github.com/pantrylab/inventory-service/internal/model"
	"github.com/pantrylab/inventory-service/internal/session"
	"github.com/pantrylab/inventory-service/pkg/logger"
	"github.com/shopspring/decimal"
)

// Mock Repository
type mockRepo struct {
	items map[string]*model.InventoryItem
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[string]*model.InventoryItem)}
}

func (m *mockRepo) ListAll(ctx context.Context) ([]model.InventoryItem, error) {
	out := []model.InventoryItem{}
	for _, it := range m.items {
		out = append(out, *it)
	}
	return out, nil
}

func (m *mockRepo) FindByName(ctx context.Context, name string) (*model.InventoryItem, error) {
	for _, it := range m.items {
		if it.Name == name {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *mockRepo) Create(ctx context.Context, item *model.InventoryItem) error {
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *mockRepo) UpsertQuantity(ctx context.Context, id string, quantity int64) error {
	if it, ok := m.items[id]; ok {
		it.Quantity = quantity
	}
	return nil
}

func (m *mockRepo) UpsertPriceAndQuantity(ctx context.Context, id string, price decimal.Decimal, quantity int64) error {
	if it, ok := m.items[id]; ok {
		it.Price = price
		it.Quantity = quantity
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func newTestServer() *http.ServeMux {
	repo := newMockRepo()
	uc := invusecase.NewInventoryUseCase(repo, nil, logger.NewNop())
	s := session.NewSession(uc, logger.NewNop())

	mux := http.NewServeMux()
	NewHTTPHandler(s, logger.NewNop()).Register(mux)
	return mux
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) session.View {
	t.Helper()
	var v session.View
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode view failed: %v", err)
	}
	return v
}

func TestAddItemEndpoint(t *testing.T) {
	mux := newTestServer()

	w := postJSON(t, mux, "/api/items", map[string]string{"name": "Apples", "price": "2.50"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	v := decodeView(t, w)
	if len(v.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(v.Items))
	}
	if !v.SelectedTotal.Equal(decimal.RequireFromString("2.50")) {
		t.Errorf("expected total 2.50, got %s", v.SelectedTotal)
	}
}

func TestAddItemEndpoint_ValidationRejected(t *testing.T) {
	mux := newTestServer()

	w := postJSON(t, mux, "/api/items", map[string]string{"name": "", "price": "2.50"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty name, got %d", w.Code)
	}

	w = postJSON(t, mux, "/api/items", map[string]string{"name": "Apples", "price": "abc"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad price, got %d", w.Code)
	}
}

func TestConflictEndpoints(t *testing.T) {
	mux := newTestServer()

	postJSON(t, mux, "/api/items", map[string]string{"name": "Apples", "price": "2.50"})
	w := postJSON(t, mux, "/api/items", map[string]string{"name": "Apples", "price": "3.00"})

	v := decodeView(t, w)
	if v.PendingConflict == nil {
		t.Fatal("expected a pending conflict in the view")
	}

	// Another add is rejected while the conflict is open.
	w = postJSON(t, mux, "/api/items", map[string]string{"name": "Bread", "price": "1.20"})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 while conflict pending, got %d", w.Code)
	}

	w = postJSON(t, mux, "/api/conflict/confirm", map[string]string{})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm failed: %d %s", w.Code, w.Body.String())
	}

	v = decodeView(t, w)
	if v.PendingConflict != nil {
		t.Error("conflict must be cleared after confirm")
	}
	if !v.Items[0].Price.Equal(decimal.RequireFromString("3.00")) || v.Items[0].Quantity != 2 {
		t.Errorf("expected price 3.00 quantity 2, got %s x %d", v.Items[0].Price, v.Items[0].Quantity)
	}

	// Resolving again is a conflict-state error.
	w = postJSON(t, mux, "/api/conflict/cancel", map[string]string{})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 with no pending conflict, got %d", w.Code)
	}
}

func TestQuantityEndpoints(t *testing.T) {
	mux := newTestServer()

	w := postJSON(t, mux, "/api/items", map[string]string{"name": "Bread", "price": "1.20"})
	id := decodeView(t, w).Items[0].ID

	w = postJSON(t, mux, "/api/items/increment", map[string]string{"id": id})
	if got := decodeView(t, w).Items[0].Quantity; got != 2 {
		t.Errorf("expected quantity 2, got %d", got)
	}

	w = postJSON(t, mux, "/api/items/remove", map[string]string{"id": id})
	if got := decodeView(t, w).Items; len(got) != 0 {
		t.Errorf("expected empty inventory, got %d items", len(got))
	}

	w = postJSON(t, mux, "/api/items/increment", map[string]string{"id": id})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", w.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	mux := newTestServer()

	postJSON(t, mux, "/api/items", map[string]string{"name": "Apples", "price": "2.50"})
	postJSON(t, mux, "/api/items", map[string]string{"name": "Bread", "price": "1.20"})

	w := postJSON(t, mux, "/api/items/search", map[string]string{"term": "app"})
	v := decodeView(t, w)
	if len(v.Filtered) != 1 || v.Filtered[0].Name != "Apples" {
		t.Errorf("expected filtered view [Apples], got %v", v.Filtered)
	}
	if len(v.Items) != 2 {
		t.Errorf("full snapshot must be untouched, got %d items", len(v.Items))
	}
}
