package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tahweela/tahweela-backend/api/responses"
	"github.com/tahweela/tahweela-backend/api/validators"
	"github.com/tahweela/tahweela-backend/internal/catalog"
	"github.com/tahweela/tahweela-backend/pkg/enums"
	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
	"github.com/tahweela/tahweela-backend/pkg/logger"
	"github.com/tahweela/tahweela-backend/pkg/pagination"
	"github.com/tahweela/tahweela-backend/pkg/types"
)

const maxQueryLength = 200

// ProductSearch runs the catalog search stage over the query string filters.
func ProductSearch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseSearchFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SearchProducts(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, result.Items, types.PageMeta{
			Page:       result.Page,
			Limit:      result.Limit,
			TotalCount: result.TotalCount,
			TotalPages: result.TotalPages,
		})
	}
}

func ProductGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		product, err := svc.GetProductByID(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func parseSearchFilters(r *http.Request) (catalog.Filters, error) {
	q := r.URL.Query()
	filters := catalog.Filters{
		Query:       validators.SanitizeString(q.Get("q"), maxQueryLength),
		Category:    validators.SanitizeString(q.Get("category"), maxQueryLength),
		Subcategory: validators.SanitizeString(q.Get("subcategory"), maxQueryLength),
		Location:    validators.SanitizeString(q.Get("location"), maxQueryLength),
		SortBy:      enums.SortKey(strings.TrimSpace(q.Get("sort_by"))),
	}

	var err error
	if filters.MinPrice, err = validators.ParseQueryDecimal(r, "min_price"); err != nil {
		return catalog.Filters{}, err
	}
	if filters.MaxPrice, err = validators.ParseQueryDecimal(r, "max_price"); err != nil {
		return catalog.Filters{}, err
	}
	if filters.MinRating, err = validators.ParseQueryFloat(r, "rating", 0, 5); err != nil {
		return catalog.Filters{}, err
	}
	if filters.VerifiedOnly, err = validators.ParseQueryBool(r, "verified"); err != nil {
		return catalog.Filters{}, err
	}
	if filters.Page, err = validators.ParseQueryInt(r, "page", pagination.FirstPage, pagination.FirstPage, 1_000_000); err != nil {
		return catalog.Filters{}, err
	}
	if filters.Limit, err = validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit); err != nil {
		return catalog.Filters{}, err
	}
	return filters, nil
}
