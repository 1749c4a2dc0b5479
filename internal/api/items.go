package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/ansokolv/social-calendar-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

func (a *Api) createItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	req := &struct {
		Kind          model.ItemKind   `json:"kind"`
		Title         string           `json:"title"`
		Description   string           `json:"description"`
		Location      string           `json:"location"`
		AllDay        bool             `json:"all_day"`
		From          dateTime         `json:"from"`
		To            dateTime         `json:"to"`
		RepeatType    model.RepeatType `json:"repeat_type"`
		Notifications []duration       `json:"notifications"`
		Visibility    model.Visibility `json:"visibility"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()

	v.Check(len(req.Title) != 0, "title", "title must be provided")
	v.Check(!time.Time(req.From).IsZero(), "from", "from must be provided")

	if req.Kind == model.ItemKindEvent {
		v.Check(!time.Time(req.To).IsZero(), "to", "to must be provided")
		v.Check(time.Time(req.From).Before(time.Time(req.To)), "to", "to must be after from")
	}

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	to := time.Time(req.To)
	if to.IsZero() {
		to = time.Time(req.From)
	}

	report, err := a.itemsService.CheckConflict(r.Context(), userID, 0, model.TimeInterval{
		From: time.Time(req.From),
		To:   to,
	})
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("check conflict: %w", err))
		return
	}

	notifications, _ := mapSlice(req.Notifications, func(d duration) (time.Duration, error) {
		return time.Duration(d), nil
	})
	item, err := a.itemsService.CreateItem(r.Context(), &model.ItemCreate{
		OwnerID:       userID,
		Kind:          req.Kind,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		AllDay:        req.AllDay,
		From:          time.Time(req.From),
		To:            to,
		RepeatType:    req.RepeatType,
		Notifications: notifications,
		Visibility:    req.Visibility,
		Source:        model.SourcePersonal,
	})
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("create item: %w", err))
		return
	}

	mappedItem, _ := mapToItemResp(item)
	resp := &struct {
		Item     *itemResp     `json:"item"`
		Conflict *conflictResp `json:"conflict"`
	}{
		Item:     mappedItem,
		Conflict: mapToConflictResp(report),
	}

	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getItemsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	filter, err := parseItemsQuery(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}
	filter.OwnerIDs = []int64{userID}

	items, err := a.itemsService.GetItems(r.Context(), *filter)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get items: %w", err))
		return
	}

	resp, _ := mapSlice(items, mapToItemResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ts, err := parseOccurrenceID(chi.URLParam(r, "itemID"))
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	req := &struct {
		Kind          model.ItemKind   `json:"kind"`
		Title         string           `json:"title"`
		Description   string           `json:"description"`
		Location      string           `json:"location"`
		AllDay        bool             `json:"all_day"`
		From          dateTime         `json:"from"`
		To            dateTime         `json:"to"`
		Notifications []duration       `json:"notifications"`
		Visibility    model.Visibility `json:"visibility"`
		SingleOnly    bool             `json:"single_only"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(len(req.Title) != 0, "title", "title must be provided")
	v.Check(!time.Time(req.From).IsZero(), "from", "from must be provided")
	v.Check(!time.Time(req.To).IsZero(), "to", "to must be provided")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	notifications, _ := mapSlice(req.Notifications, func(d duration) (time.Duration, error) {
		return time.Duration(d), nil
	})
	update := &model.ItemUpdate{
		Kind:          req.Kind,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		AllDay:        req.AllDay,
		From:          time.Time(req.From),
		To:            time.Time(req.To),
		Notifications: notifications,
		Visibility:    req.Visibility,
	}

	var report *model.ConflictReport
	if req.SingleOnly {
		report, err = a.itemsService.UpdateItemInstance(r.Context(), id, ts, update)
	} else {
		report, err = a.itemsService.UpdateItem(r.Context(), id, ts, update)
	}
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("update item: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToConflictResp(report), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) completeItemHandler(w http.ResponseWriter, r *http.Request) {
	id, _, err := parseOccurrenceID(chi.URLParam(r, "itemID"))
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	req := &struct {
		Completed bool `json:"completed"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.itemsService.SetCompleted(r.Context(), id, req.Completed); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("set completed: %w", err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) deleteItemHandler(w http.ResponseWriter, r *http.Request) {
	id, _, err := parseOccurrenceID(chi.URLParam(r, "itemID"))
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.itemsService.DeleteItem(r.Context(), id); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("delete item: %w", err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func parseItemsQuery(r *http.Request) (*model.ItemsFilter, error) {
	var err error

	res := &model.ItemsFilter{}

	v := r.URL.Query().Get("from")
	if v == "" {
		return nil, fmt.Errorf("from must be provided")
	}
	res.From, err = time.Parse(dateTimeFormat, v)
	if err != nil {
		return nil, fmt.Errorf("invalid time format: %w", err)
	}

	v = r.URL.Query().Get("to")
	if v == "" {
		return nil, fmt.Errorf("to must be provided")
	}
	res.To, err = time.Parse(dateTimeFormat, v)
	if err != nil {
		return nil, fmt.Errorf("invalid time format: %w", err)
	}

	vals := r.URL.Query()["kinds"]
	res.Kinds = make([]model.ItemKind, len(vals))
	for i, v := range vals {
		k, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid kind %v", v)
		}
		res.Kinds[i] = model.ItemKind(k)
	}

	return res, nil
}

// parseOccurrenceID splits an occurrence-addressed id ("<id>_<unix>") into
// the stored item id and the occurrence start.
func parseOccurrenceID(s string) (int64, time.Time, error) {
	base, rest, ok := strings.Cut(s, "_")
	if !ok {
		return 0, time.Time{}, fmt.Errorf("invalid item id %q", s)
	}

	id, err := strconv.ParseInt(base, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("invalid item id %q", s)
	}

	unix, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("invalid item id %q", s)
	}

	return id, time.Unix(unix, 0), nil
}
