package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/data"
	"github.com/LPredmore/valorwell-clinician-portal-sub007/service"
)

// syncedEventView hides everything about the external event except its
// times; the label is always the fixed generic one.
type syncedEventView struct {
	ID      string    `json:"id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	IsBusy  bool      `json:"is_busy"`
	Label   string    `json:"label"`
}

// GET /clinicians/{id}/events
func (a *API) listSyncedEvents(w http.ResponseWriter, r *http.Request) {
	events, err := a.service.Events.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	views := make([]syncedEventView, 0, len(events))
	for _, ev := range events {
		views = append(views, syncedEventView{
			ID:      ev.ID,
			StartAt: ev.StartAt,
			EndAt:   ev.EndAt,
			IsBusy:  ev.IsBusy,
			Label:   data.BusyLabel,
		})
	}

	writeJSON(w, http.StatusOK, views)
}

type syncRequest struct {
	Events []service.SyncedEventInput `json:"events"`
}

// POST /clinicians/{id}/events/sync — validated rows from the calendar-sync
// collaborator; transport auth happens upstream of this boundary.
func (a *API) ingestSyncedEvents(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	applied, err := a.service.Events.Ingest(r.Context(), chi.URLParam(r, "id"), req.Events)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"applied": applied})
}
