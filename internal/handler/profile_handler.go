package handler

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"ghprofile/internal/app/profile"
	"ghprofile/internal/pkg/errs"
	"ghprofile/internal/pkg/req"
	"ghprofile/internal/pkg/resp"
)

// LookupInput is the body of POST /api/profile/lookup.
type LookupInput struct {
	Username string `json:"username"`
}

// HandleGetProfile returns the current profile record.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.State.Current())
	}
}

// HandleLookup resolves the posted username and returns the resulting record.
// A failed lookup leaves the record untouched and is reported with its error code.
func HandleLookup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LookupInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := deps.Searcher.Search(r.Context(), input.Username)
		if err != nil {
			zerolog.Ctx(r.Context()).Info().Err(err).Str("username", input.Username).Msg("Lookup did not change the profile.")
			resp.RespondError(w, r, errs.FromLookup(err))
			return
		}

		resp.RespondSuccess(w, r, user)
	}
}

// HandleDispatch applies a raw action. Unknown action types leave the record unchanged.
// A CHANGE_USER payload without a login is rejected and never reaches the container.
func HandleDispatch(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var action profile.Action
		if customErr := req.BindJSON(w, r, &action); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if action.Kind == profile.ActionChangeUser && strings.TrimSpace(action.Payload.Login) == "" {
			zerolog.Ctx(r.Context()).Info().Msg("Rejected CHANGE_USER without login.")
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		resp.RespondSuccess(w, r, deps.State.Dispatch(r.Context(), action))
	}
}
