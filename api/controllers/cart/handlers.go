package cart

import (
	"context"
	"net/http"

	"github.com/tahweela/tahweela-backend/api/middleware"
	"github.com/tahweela/tahweela-backend/api/responses"
	"github.com/tahweela/tahweela-backend/api/validators"
	cartsvc "github.com/tahweela/tahweela-backend/internal/cart"
	"github.com/tahweela/tahweela-backend/internal/catalog"
	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
	"github.com/tahweela/tahweela-backend/pkg/logger"
)

// Carts resolves the cart controller owned by an authenticated user.
type Carts interface {
	ForOwner(ctx context.Context, owner string) (*cartsvc.Controller, error)
}

type productLookup interface {
	GetProductByID(ctx context.Context, id string) (*catalog.Product, error)
}

// CartFetch returns the caller's cart with totals and supplier groups.
func CartFetch(carts Carts, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl, err := ownerCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ctrl.Summary())
	}
}

// CartAddItem snapshots the catalog product and merges it into the cart.
func CartAddItem(carts Carts, products productLookup, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctrl, err := ownerCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := products.GetProductByID(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := ctrl.AddAndSummarize(r.Context(), *product, payload.quantity(), payload.Specifications)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, summary)
	}
}

func CartUpdateItem(carts Carts, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctrl, err := ownerCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctrl.UpdateQuantity(r.Context(), payload.ProductID, *payload.Quantity, payload.Specifications)
		responses.WriteSuccess(w, ctrl.Summary())
	}
}

func CartRemoveItem(carts Carts, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload removeItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctrl, err := ownerCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctrl.Remove(r.Context(), payload.ProductID, payload.Specifications)
		responses.WriteSuccess(w, ctrl.Summary())
	}
}

func CartClear(carts Carts, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl, err := ownerCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctrl.Clear(r.Context())
		responses.WriteSuccess(w, ctrl.Summary())
	}
}

// CartSetOpen toggles the drawer flag the storefront uses to show the cart.
func CartSetOpen(carts Carts, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload setOpenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctrl, err := ownerCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctrl.SetOpen(*payload.Open)
		responses.WriteSuccess(w, ctrl.Summary())
	}
}

func ownerCart(r *http.Request, carts Carts) (*cartsvc.Controller, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return carts.ForOwner(r.Context(), userID)
}
