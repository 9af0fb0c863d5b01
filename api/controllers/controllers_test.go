package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tahweela/tahweela-backend/api/middleware"
	"github.com/tahweela/tahweela-backend/internal/auth"
	"github.com/tahweela/tahweela-backend/internal/catalog"
	"github.com/tahweela/tahweela-backend/internal/checkout"
	pkgauth "github.com/tahweela/tahweela-backend/pkg/auth"
	"github.com/tahweela/tahweela-backend/pkg/config"
	"github.com/tahweela/tahweela-backend/pkg/enums"
	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
)

type pingFunc func(context.Context) error

func (p pingFunc) Ping(ctx context.Context) error { return p(ctx) }

func TestHealthReadyReportsDependencies(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("down") })

	resp := httptest.NewRecorder()
	HealthReady(cfg, nil, map[string]Pinger{"db": ok, "redis": nil})(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"redis":"skipped"`) {
		t.Fatalf("expected skipped redis check, got %s", resp.Body.String())
	}

	resp = httptest.NewRecorder()
	HealthReady(cfg, nil, map[string]Pinger{"db": down})(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestProductSearchParsesFilters(t *testing.T) {
	svc, err := catalog.NewService(catalog.ServiceParams{Repo: catalog.NewStaticRepository(nil)})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	resp := httptest.NewRecorder()
	ProductSearch(svc, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products?verified=true&sort_by=price_asc&limit=2", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data []catalog.Product `json:"data"`
		Meta struct {
			TotalCount int `json:"total_count"`
			TotalPages int `json:"total_pages"`
			Limit      int `json:"limit"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Meta.TotalCount != 4 || envelope.Meta.TotalPages != 2 || envelope.Meta.Limit != 2 {
		t.Fatalf("unexpected meta %+v", envelope.Meta)
	}
	if len(envelope.Data) != 2 || envelope.Data[0].ID != "2" {
		t.Fatalf("expected cheapest verified product first, got %+v", envelope.Data)
	}

	for _, target := range []string{
		"/api/v1/products?min_price=500&max_price=100",
		"/api/v1/products?sort_by=popular",
		"/api/v1/products?rating=9",
	} {
		resp = httptest.NewRecorder()
		ProductSearch(svc, nil)(resp, httptest.NewRequest(http.MethodGet, target, nil))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", target, resp.Code)
		}
	}
}

func TestProductGet(t *testing.T) {
	svc, _ := catalog.NewService(catalog.ServiceParams{Repo: catalog.NewStaticRepository(nil)})
	r := chi.NewRouter()
	r.Get("/products/{productId}", ProductGet(svc, nil))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/products/4", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"supplier_id":"sup4"`) {
		t.Fatalf("unexpected response %d %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/products/404", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAuthLoginProfileAndLogout(t *testing.T) {
	jwtCfg := config.JWTConfig{Secret: "secret", Issuer: "tahweela", ExpirationMinutes: 60}
	svc, err := auth.NewService(auth.ServiceParams{JWT: jwtCfg})
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	resp := httptest.NewRecorder()
	AuthLogin(svc, nil)(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"Buyer@Example.com","company_name":"  Dates Co  "}`)))
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var login struct {
		Data auth.LoginResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.Data.AccessToken == "" || login.Data.User.CompanyName != "Dates Co" {
		t.Fatalf("unexpected login result %+v", login.Data)
	}

	claims, err := pkgauth.ParseAccessToken(jwtCfg, login.Data.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	sessionID := claims.SessionID()
	withSession := func(method, body string) *http.Request {
		req := httptest.NewRequest(method, "/", strings.NewReader(body))
		return req.WithContext(middleware.WithIdentity(req.Context(), login.Data.User.ID, enums.UserTypeBuyer, sessionID))
	}

	resp = httptest.NewRecorder()
	AuthUpdateProfile(svc, nil)(resp, withSession(http.MethodPatch, `{"phone":"not-a-phone"}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid phone got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	AuthUpdateProfile(svc, nil)(resp, withSession(http.MethodPatch, `{"display_name":"Layla"}`))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"display_name":"Layla"`) {
		t.Fatalf("unexpected profile update %d %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	AuthState(svc, nil)(resp, withSession(http.MethodGet, ""))
	if !strings.Contains(resp.Body.String(), `"is_authenticated":true`) {
		t.Fatalf("expected authenticated state, got %s", resp.Body.String())
	}

	resp = httptest.NewRecorder()
	AuthLogout(svc, nil)(resp, withSession(http.MethodPost, ""))
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.Code)
	}
	if svc.Active(sessionID) {
		t.Fatal("session should be gone after logout")
	}
}

type stubCheckout struct {
	in  checkout.Input
	res *checkout.Result
	err error
}

func (s *stubCheckout) Execute(_ context.Context, in checkout.Input) (*checkout.Result, error) {
	s.in = in
	return s.res, s.err
}

func TestCheckoutStampsAuthenticatedUser(t *testing.T) {
	stub := &stubCheckout{res: &checkout.Result{Success: true}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"shipping_address":" King Fahd Rd, Riyadh "}`))
	req = req.WithContext(middleware.WithIdentity(req.Context(), "user-9", enums.UserTypeBuyer, "sess"))

	resp := httptest.NewRecorder()
	Checkout(stub, nil)(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if stub.in.UserID != "user-9" || stub.in.ShippingAddress != "King Fahd Rd, Riyadh" {
		t.Fatalf("unexpected checkout input %+v", stub.in)
	}
}

func TestCheckoutMapsEmptyCart(t *testing.T) {
	stub := &stubCheckout{res: &checkout.Result{Error: "cart is empty"}, err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"shipping_address":"Riyadh"}`))
	req = req.WithContext(middleware.WithIdentity(req.Context(), "user-9", enums.UserTypeBuyer, "sess"))

	resp := httptest.NewRecorder()
	Checkout(stub, nil)(resp, req)
	if resp.Code != http.StatusBadRequest || !strings.Contains(resp.Body.String(), "cart is empty") {
		t.Fatalf("unexpected response %d %s", resp.Code, resp.Body.String())
	}
}
