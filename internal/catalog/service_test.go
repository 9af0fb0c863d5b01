package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
)

type failingRepo struct{}

func (failingRepo) List(context.Context) ([]Product, error) { return nil, errors.New("down") }
func (failingRepo) FindByID(context.Context, string) (*Product, bool, error) {
	return nil, false, errors.New("down")
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: NewStaticRepository(nil), DefaultLimit: 2, MaxLimit: 3})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected missing repo to fail")
	}
}

func TestServiceSearchAppliesConfiguredLimits(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.SearchProducts(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Limit != 2 || len(res.Items) != 2 || res.TotalPages != 3 {
		t.Fatalf("unexpected page %+v", res)
	}

	res, err = svc.SearchProducts(context.Background(), Filters{Limit: 50})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Limit != 3 {
		t.Fatalf("expected limit capped at 3, got %d", res.Limit)
	}
}

func TestServiceSearchValidatesFilters(t *testing.T) {
	svc := newTestService(t)
	min, max := decimal.NewFromInt(100), decimal.NewFromInt(10)
	_, err := svc.SearchProducts(context.Background(), Filters{MinPrice: &min, MaxPrice: &max})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = svc.SearchProducts(context.Background(), Filters{SortBy: "cheapest"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for sort key, got %v", err)
	}
}

func TestServiceGetProductByID(t *testing.T) {
	svc := newTestService(t)

	product, err := svc.GetProductByID(context.Background(), "4")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if product.SupplierID != "sup4" || !product.Price.Equal(decimal.NewFromInt(2800)) {
		t.Fatalf("unexpected product %+v", product)
	}

	if _, err := svc.GetProductByID(context.Background(), "missing"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.GetProductByID(context.Background(), " "); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceWrapsRepositoryFailures(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: failingRepo{}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.SearchProducts(context.Background(), Filters{}); !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if _, err := svc.GetProductByID(context.Background(), "1"); !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
