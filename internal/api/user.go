package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/ansokolv/social-calendar-backend/internal/pkg/validator"
	"github.com/gerow/go-color"
)

var errCantRetrieveUser = errors.New("can't retrieve user from context")

func (a *Api) getUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(contextKeyUser).(*model.User)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUser)
		return
	}

	resp, _ := mapToUserResp(user)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updatePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(contextKeyUser).(*model.User)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUser)
		return
	}

	req := &struct {
		PushToken string `json:"push_token"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.users.UpdateUserPushToken(r.Context(), a.db, user.ID, req.PushToken); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("update push token: %w", err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(contextKeyUser).(*model.User)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUser)
		return
	}

	settings, err := a.users.GetUserSettings(r.Context(), a.db, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("get settings: %w", err))
		}
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToSettingsResp(settings), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) setSettingsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(contextKeyUser).(*model.User)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUser)
		return
	}

	req := &struct {
		Color  string `json:"color"`
		Notify bool   `json:"notify"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	colorRGB, err := color.HTMLToRGB(req.Color)
	if err != nil {
		v := validator.New()
		v.AddError("color", "invalid color")
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	if err := a.users.SetUserSettings(r.Context(), a.db, &model.UserSettings{
		UserID: user.ID,
		Color:  colorRGB,
		Notify: req.Notify,
	}); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("set settings: %w", err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) searchUsersHandler(w http.ResponseWriter, r *http.Request) {
	filter := model.UserSearchFilter{
		Query: r.URL.Query().Get("q"),
		Limit: 20,
		Page:  1,
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			a.badRequestResponse(w, r, fmt.Errorf("invalid limit %q", v))
			return
		}
		filter.Limit = n
	}

	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			a.badRequestResponse(w, r, fmt.Errorf("invalid page %q", v))
			return
		}
		filter.Page = n
	}

	users, err := a.users.SearchUsers(r.Context(), a.db, filter)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("search users: %w", err))
		return
	}

	resp, _ := mapSlice(users, mapToUserResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
