package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tahweela/tahweela-backend/internal/catalog"
)

func product(id, supplier string, price int64) catalog.Product {
	return catalog.Product{ID: id, SupplierID: supplier, Name: "product " + id, Price: decimal.NewFromInt(price)}
}

type failingMirror struct {
	mu      sync.Mutex
	loadErr error
	saveErr error
	payload []byte
	saves   int
}

func (m *failingMirror) Load(context.Context, string) ([]byte, error) {
	return m.payload, m.loadErr
}

func (m *failingMirror) Save(context.Context, string, []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	return m.saveErr
}

var errMirrorDown = errors.New("mirror down")

func newController(t *testing.T, mirror Mirror) *Controller {
	t.Helper()
	ctrl, err := NewController(Options{Key: "tahweela_cart", Mirror: mirror})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	ctrl.Init(context.Background())
	return ctrl
}

func mirroredLines(t *testing.T, mirror *MemoryMirror, key string) []Line {
	t.Helper()
	payload, err := mirror.Load(context.Background(), key)
	if err != nil {
		t.Fatalf("load mirror: %v", err)
	}
	if payload == nil {
		t.Fatalf("expected payload under %q", key)
	}
	lines, err := decodeLines(payload)
	if err != nil {
		t.Fatalf("decode mirror: %v", err)
	}
	return lines
}
