package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tahweela/tahweela-backend/api/middleware"
	cartsvc "github.com/tahweela/tahweela-backend/internal/cart"
	"github.com/tahweela/tahweela-backend/internal/catalog"
	"github.com/tahweela/tahweela-backend/pkg/enums"
)

type summaryEnvelope struct {
	Data struct {
		Lines []struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		} `json:"lines"`
		Groups []struct {
			SupplierID string `json:"supplier_id"`
		} `json:"supplier_groups"`
		Total     string `json:"total"`
		ItemCount int    `json:"item_count"`
		IsOpen    bool   `json:"is_open"`
	} `json:"data"`
}

func newFixtures(t *testing.T) (*cartsvc.Registry, catalog.Service) {
	t.Helper()
	reg, err := cartsvc.NewRegistry(cartsvc.RegistryOptions{StorageKey: "tahweela_cart", Mirror: cartsvc.NewMemoryMirror()})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	svc, err := catalog.NewService(catalog.ServiceParams{Repo: catalog.NewStaticRepository(nil)})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return reg, svc
}

func authed(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middleware.WithIdentity(req.Context(), "user-1", enums.UserTypeBuyer, "sess-1"))
}

func decodeSummary(t *testing.T, resp *httptest.ResponseRecorder) summaryEnvelope {
	t.Helper()
	var envelope summaryEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestCartAddItemMergesAndGroups(t *testing.T) {
	reg, products := newFixtures(t)
	handler := CartAddItem(reg, products, nil)

	for _, body := range []string{
		`{"product_id":"1","quantity":2,"specifications":{"size":"L"}}`,
		`{"product_id":"1","quantity":3,"specifications":{"size":"L"}}`,
		`{"product_id":"2"}`,
	} {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, authed(http.MethodPost, "/api/v1/cart/items", body))
		if resp.Code != http.StatusCreated {
			t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
		}
	}

	resp := httptest.NewRecorder()
	CartFetch(reg, nil).ServeHTTP(resp, authed(http.MethodGet, "/api/v1/cart", ""))
	summary := decodeSummary(t, resp).Data
	if len(summary.Lines) != 2 || summary.Lines[0].Quantity != 5 || summary.Lines[1].Quantity != 1 {
		t.Fatalf("unexpected lines %+v", summary.Lines)
	}
	if summary.ItemCount != 6 || summary.Total != "2275" {
		t.Fatalf("unexpected totals count=%d total=%s", summary.ItemCount, summary.Total)
	}
	if len(summary.Groups) != 2 || summary.Groups[0].SupplierID != "sup1" {
		t.Fatalf("unexpected groups %+v", summary.Groups)
	}
	if !summary.IsOpen {
		t.Fatal("adding an item should open the cart")
	}
}

func TestCartAddItemRejectsBadInput(t *testing.T) {
	reg, products := newFixtures(t)
	handler := CartAddItem(reg, products, nil)

	cases := map[string]struct {
		body   string
		status int
	}{
		"zero quantity":   {`{"product_id":"1","quantity":0}`, http.StatusBadRequest},
		"missing product": {`{"quantity":1}`, http.StatusBadRequest},
		"unknown product": {`{"product_id":"999"}`, http.StatusNotFound},
		"bad spec value":  {`{"product_id":"1","specifications":{"size":["L"]}}`, http.StatusBadRequest},
		"huge quantity":   {`{"product_id":"1","quantity":9223372036854775807}`, http.StatusBadRequest},
	}
	for name, tc := range cases {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, authed(http.MethodPost, "/api/v1/cart/items", tc.body))
		if resp.Code != tc.status {
			t.Fatalf("%s: expected %d got %d", name, tc.status, resp.Code)
		}
	}
}

func TestCartUpdateAndRemove(t *testing.T) {
	reg, products := newFixtures(t)
	CartAddItem(reg, products, nil).ServeHTTP(httptest.NewRecorder(), authed(http.MethodPost, "/", `{"product_id":"1","quantity":2}`))
	CartAddItem(reg, products, nil).ServeHTTP(httptest.NewRecorder(), authed(http.MethodPost, "/", `{"product_id":"3","quantity":1}`))

	resp := httptest.NewRecorder()
	CartUpdateItem(reg, nil).ServeHTTP(resp, authed(http.MethodPatch, "/", `{"product_id":"1","quantity":7}`))
	if summary := decodeSummary(t, resp).Data; summary.Lines[0].Quantity != 7 {
		t.Fatalf("expected absolute quantity 7, got %+v", summary.Lines)
	}

	resp = httptest.NewRecorder()
	CartUpdateItem(reg, nil).ServeHTTP(resp, authed(http.MethodPatch, "/", `{"product_id":"1","quantity":0}`))
	if summary := decodeSummary(t, resp).Data; len(summary.Lines) != 1 || summary.Lines[0].ProductID != "3" {
		t.Fatalf("zero quantity should remove the line, got %+v", summary.Lines)
	}

	resp = httptest.NewRecorder()
	CartRemoveItem(reg, nil).ServeHTTP(resp, authed(http.MethodDelete, "/", `{"product_id":"missing"}`))
	if resp.Code != http.StatusOK || len(decodeSummary(t, resp).Data.Lines) != 1 {
		t.Fatal("removing a missing line should be a no-op")
	}

	resp = httptest.NewRecorder()
	CartClear(reg, nil).ServeHTTP(resp, authed(http.MethodDelete, "/", ""))
	if summary := decodeSummary(t, resp).Data; len(summary.Lines) != 0 || summary.Total != "0" {
		t.Fatalf("expected empty cart, got %+v", summary)
	}
}

func TestCartUpdateRequiresQuantity(t *testing.T) {
	reg, _ := newFixtures(t)
	resp := httptest.NewRecorder()
	CartUpdateItem(reg, nil).ServeHTTP(resp, authed(http.MethodPatch, "/", `{"product_id":"1"}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartUpdateRejectsQuantityOverLineMax(t *testing.T) {
	reg, _ := newFixtures(t)
	resp := httptest.NewRecorder()
	CartUpdateItem(reg, nil).ServeHTTP(resp, authed(http.MethodPatch, "/", `{"product_id":"1","quantity":1000001}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemResponseReflectsTheAdd(t *testing.T) {
	reg, products := newFixtures(t)
	handler := CartAddItem(reg, products, nil)

	for i, want := range []int{2, 4} {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, authed(http.MethodPost, "/api/v1/cart/items", `{"product_id":"1","quantity":2}`))
		if resp.Code != http.StatusCreated {
			t.Fatalf("add %d: expected 201 got %d", i, resp.Code)
		}
		summary := decodeSummary(t, resp).Data
		if len(summary.Lines) != 1 || summary.Lines[0].Quantity != want || summary.ItemCount != want {
			t.Fatalf("add %d: expected quantity %d in response, got %+v", i, want, summary.Lines)
		}
	}
}

func TestCartSetOpen(t *testing.T) {
	reg, _ := newFixtures(t)
	resp := httptest.NewRecorder()
	CartSetOpen(reg, nil).ServeHTTP(resp, authed(http.MethodPut, "/", `{"open":true}`))
	if !decodeSummary(t, resp).Data.IsOpen {
		t.Fatal("expected open cart")
	}
	ctrl, _ := reg.ForOwner(context.Background(), "user-1")
	if !ctrl.IsOpen() {
		t.Fatal("flag should be stored on the controller")
	}
}

func TestCartRequiresUser(t *testing.T) {
	reg, _ := newFixtures(t)
	resp := httptest.NewRecorder()
	CartFetch(reg, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
