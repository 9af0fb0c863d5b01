package controllers

import (
	"net/http"

	"github.com/tahweela/tahweela-backend/api/middleware"
	"github.com/tahweela/tahweela-backend/api/responses"
	"github.com/tahweela/tahweela-backend/api/validators"
	"github.com/tahweela/tahweela-backend/internal/auth"
	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
	"github.com/tahweela/tahweela-backend/pkg/logger"
)

// AuthLogin signs the caller in and returns an access token.
func AuthLogin(svc *auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload auth.LoginInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.DisplayName = validators.SanitizeString(payload.DisplayName, 120)
		payload.CompanyName = validators.SanitizeString(payload.CompanyName, 200)

		result, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout ends the session bound to the presented token.
func AuthLogout(svc *auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}
		svc.Logout(r.Context(), sessionID)
		responses.WriteNoContent(w)
	}
}

func AuthMe(svc *auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.Me(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// AuthState exposes the session state subscribers observe.
func AuthState(svc *auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := svc.Session(middleware.SessionIDFromContext(r.Context()))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
			return
		}
		responses.WriteSuccess(w, session.State())
	}
}

func AuthUpdateProfile(svc *auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload auth.ProfileUpdate
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := svc.UpdateProfile(r.Context(), middleware.SessionIDFromContext(r.Context()), payload)
		if !result.Success {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, result.Error))
			return
		}
		responses.WriteSuccess(w, result)
	}
}
