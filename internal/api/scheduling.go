package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/business/availability"
	"github.com/ansokolv/social-calendar-backend/internal/business/scheduling"
	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/ansokolv/social-calendar-backend/internal/pkg/validator"
)

func (a *Api) suggestSlotsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	req := &struct {
		ParticipantIDs  []int64         `json:"participant_ids"`
		DurationMinutes int             `json:"duration_minutes"`
		RangeStart      dateTime        `json:"range_start"`
		RangeEnd        dateTime        `json:"range_end"`
		DayParts        []model.DayPart `json:"day_parts"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(req.DurationMinutes > 0, "duration_minutes", "duration must be positive")
	v.Check(!time.Time(req.RangeStart).IsZero(), "range_start", "range_start must be provided")
	v.Check(!time.Time(req.RangeEnd).IsZero(), "range_end", "range_end must be provided")
	v.Check(!time.Time(req.RangeEnd).Before(time.Time(req.RangeStart)), "range_end", "range_end must not precede range_start")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	slots, err := a.schedulingService.Suggest(r.Context(), &scheduling.SuggestRequest{
		RequesterID:     userID,
		ParticipantIDs:  req.ParticipantIDs,
		DurationMinutes: req.DurationMinutes,
		RangeStart:      time.Time(req.RangeStart),
		RangeEnd:        time.Time(req.RangeEnd),
		DayParts:        req.DayParts,
	})
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("suggest slots: %w", err))
		return
	}

	resp, _ := mapSlice(slots, mapToSlotResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) checkAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	req := &struct {
		ParticipantIDs []int64  `json:"participant_ids"`
		From           dateTime `json:"from"`
		To             dateTime `json:"to"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	proposed := model.TimeInterval{
		From: time.Time(req.From),
		To:   time.Time(req.To),
	}

	v := validator.New()
	v.Check(proposed.IsValid(), "from", "interval must be non-empty")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	ids := append([]int64{userID}, req.ParticipantIDs...)
	participants, err := a.availability.Participants(r.Context(), ids, proposed)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("materialize participants: %w", err))
		return
	}

	verdict := availability.Check(proposed, participants)

	if err := a.writeJSON(w, http.StatusOK, mapToVerdictResp(verdict), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
