package api

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/common"
	"github.com/LPredmore/valorwell-clinician-portal-sub007/service"
)

// GET /clinicians/{id}/availability?start=2006-01-02&end=2006-01-02&tz=Zone
func (a *API) getAvailability(w http.ResponseWriter, r *http.Request) {
	clinicianID := chi.URLParam(r, "id")

	start, err := common.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid start date"})
		return
	}
	end, err := common.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid end date"})
		return
	}

	days, err := a.service.Availability.Materialize(r.Context(), clinicianID, start, end, r.URL.Query().Get("tz"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, days)
}

// GET /clinicians/{id}/exceptions?start=...&end=...
func (a *API) listExceptions(w http.ResponseWriter, r *http.Request) {
	clinicianID := chi.URLParam(r, "id")

	from := r.URL.Query().Get("start")
	to := r.URL.Query().Get("end")
	if from == "" || to == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "start and end are required"})
		return
	}

	excs, err := a.service.Exceptions.List(r.Context(), clinicianID, from, to)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, excs)
}

// POST /clinicians/{id}/exceptions
func (a *API) addException(w http.ResponseWriter, r *http.Request) {
	var form service.ExceptionForm
	if err := decodeBody(r, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	form.ClinicianID = chi.URLParam(r, "id")

	exc, err := a.service.Exceptions.Add(r.Context(), form)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, exc)
}

// PUT /exceptions/{id}
func (a *API) updateException(w http.ResponseWriter, r *http.Request) {
	var form service.ExceptionForm
	if err := decodeBody(r, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	exc, err := a.service.Exceptions.Update(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exc)
}

// DELETE /exceptions/{id}
func (a *API) deleteException(w http.ResponseWriter, r *http.Request) {
	if err := a.service.Exceptions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /clinicians/{id}/worktime
func (a *API) updateWeeklySlot(w http.ResponseWriter, r *http.Request) {
	var form service.WeeklySlotForm
	if err := decodeBody(r, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	if err := a.service.Exceptions.UpdateWeeklySlot(r.Context(), chi.URLParam(r, "id"), form); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
