package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

// GET /clinicians?active=true
func (a *API) listClinicians(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))

	clinicians, err := a.service.Clinicians.List(r.Context(), activeOnly)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, clinicians)
}

// GET /clinicians/{id}
func (a *API) getClinician(w http.ResponseWriter, r *http.Request) {
	clinician, err := a.service.Clinicians.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, clinician)
}

type timeZoneRequest struct {
	TimeZone string `json:"time_zone"`
}

// PUT /clinicians/{id}/timezone
func (a *API) updateClinicianTimeZone(w http.ResponseWriter, r *http.Request) {
	var req timeZoneRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	if err := a.service.Clinicians.UpdateTimeZone(r.Context(), chi.URLParam(r, "id"), req.TimeZone); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
