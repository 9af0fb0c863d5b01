package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
)

type addItemBody struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":"1","quantity":0}`))
	var body addItemBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["quantity"] != "must be at least 1" {
		t.Fatalf("unexpected details %#v", typed.Details())
	}
}

func TestDecodeJSONBodyRejectsUnknownFieldsAndEmptyBody(t *testing.T) {
	var body addItemBody
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":"1","quantity":1,"price":9}`))
	if err := DecodeJSONBody(req, &body); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected unknown field rejection, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := DecodeJSONBody(req, &body); err == nil || pkgerrors.As(err).Message() != "request body required" {
		t.Fatalf("expected empty body error, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":"1","quantity":2}`))
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Quantity != 2 {
		t.Fatalf("unexpected decoded body %+v", body)
	}
}

func TestDecodeJSONBodyRejectsTrailingDataAndOversizedBodies(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":"1","quantity":1}{"productId":"2"}`))
	var body addItemBody
	if err := DecodeJSONBody(req, &body); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected trailing object to be rejected, got %v", err)
	}

	huge := `{"productId":"` + strings.Repeat("x", MaxBodyBytes) + `","quantity":1}`
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(huge))
	err := DecodeJSONBody(req, &body)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) || !strings.Contains(pkgerrors.As(err).Message(), "exceeds") {
		t.Fatalf("expected size limit error, got %v", err)
	}
}

func TestParseQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&minPrice=10.5&rating=4.5&verified=true&limit=500", nil)

	if page, err := ParseQueryInt(req, "page", 1, 1, 1000); err != nil || page != 3 {
		t.Fatalf("page: %d %v", page, err)
	}
	if _, err := ParseQueryInt(req, "limit", 12, 1, 100); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected out of range limit, got %v", err)
	}
	if def, err := ParseQueryInt(req, "missing", 12, 1, 100); err != nil || def != 12 {
		t.Fatalf("expected default, got %d %v", def, err)
	}
	if price, err := ParseQueryDecimal(req, "minPrice"); err != nil || price == nil || price.String() != "10.5" {
		t.Fatalf("minPrice: %v %v", price, err)
	}
	if price, err := ParseQueryDecimal(req, "maxPrice"); err != nil || price != nil {
		t.Fatalf("absent decimal should be nil, got %v %v", price, err)
	}
	if rating, err := ParseQueryFloat(req, "rating", 0, 5); err != nil || rating == nil || *rating != 4.5 {
		t.Fatalf("rating: %v %v", rating, err)
	}
	if verified, err := ParseQueryBool(req, "verified"); err != nil || !verified {
		t.Fatalf("verified: %v %v", verified, err)
	}

	bad := httptest.NewRequest(http.MethodGet, "/?minPrice=-1&verified=maybe", nil)
	if _, err := ParseQueryDecimal(bad, "minPrice"); err == nil {
		t.Fatal("negative price should fail")
	}
	if _, err := ParseQueryBool(bad, "verified"); err == nil {
		t.Fatal("invalid bool should fail")
	}
}

func TestSanitizeStringCountsRunes(t *testing.T) {
	if got := SanitizeString("  تمور  ", 3); got != "تمو" {
		t.Fatalf("unexpected rune truncation %q", got)
	}
	if got := SanitizeString(" dates ", 0); got != "dates" {
		t.Fatalf("unexpected trim %q", got)
	}
}
