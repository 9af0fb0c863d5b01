package controllers

import (
	"net/http"

	"github.com/tahweela/tahweela-backend/api/middleware"
	"github.com/tahweela/tahweela-backend/api/responses"
	"github.com/tahweela/tahweela-backend/api/validators"
	"github.com/tahweela/tahweela-backend/internal/checkout"
	"github.com/tahweela/tahweela-backend/pkg/logger"
)

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,max=500"`
	BillingAddress  string `json:"billing_address,omitempty" validate:"omitempty,max=500"`
	Notes           string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// Checkout places one draft order per supplier from the caller's cart.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Execute(r.Context(), checkout.Input{
			UserID:          middleware.UserIDFromContext(r.Context()),
			ShippingAddress: validators.SanitizeString(payload.ShippingAddress, 500),
			BillingAddress:  validators.SanitizeString(payload.BillingAddress, 500),
			Notes:           validators.SanitizeString(payload.Notes, 1000),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
