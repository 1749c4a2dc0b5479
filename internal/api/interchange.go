package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/ics"
)

const maxImportSize = 5_242_880

func (a *Api) exportItemsHandler(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write(ics.Encode(items, time.Now()))
}

func (a *Api) importItemsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportSize))
	if err != nil {
		a.badRequestResponse(w, r, fmt.Errorf("read document: %w", err))
		return
	}

	records, err := ics.Decode(body)
	if err != nil {
		a.badRequestResponse(w, r, fmt.Errorf("parse document: %w", err))
		return
	}

	imported, err := a.itemsService.ImportItems(r.Context(), userID, records)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("import items: %w", err))
		return
	}

	resp := &struct {
		Imported int `json:"imported"`
	}{
		Imported: imported,
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
