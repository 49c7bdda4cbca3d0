package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/service"
)

func parseRange(r *http.Request) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date")
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date")
	}
	// end date is inclusive
	return from, to.AddDate(0, 0, 1), nil
}

// GET /clinicians/{id}/appointments?start=...&end=...&include_blocked=true
func (a *API) listAppointments(w http.ResponseWriter, r *http.Request) {
	clinicianID := chi.URLParam(r, "id")

	from, to, err := parseRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	includeBlocked, _ := strconv.ParseBool(r.URL.Query().Get("include_blocked"))
	appts, err := a.service.Appointments.List(r.Context(), clinicianID, from, to, includeBlocked)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, appts)
}

// POST /appointments
func (a *API) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req service.BookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	appt, err := a.service.Appointments.Book(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, appt)
}

// POST /appointments/recurring
func (a *API) createRecurring(w http.ResponseWriter, r *http.Request) {
	var req service.RecurringRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	instances, err := a.service.Appointments.BookRecurring(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, instances)
}

type rescheduleRequest struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

// PUT /appointments/{id}?scope=single|this_and_future|series
func (a *API) rescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	scope, err := service.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	var req rescheduleRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	updated, err := a.service.Appointments.Reschedule(r.Context(), chi.URLParam(r, "id"), scope, req.StartAt, req.EndAt)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /appointments/{id}/status
func (a *API) updateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	if err := a.service.Appointments.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /appointments/{id}?scope=...&cancel=true
func (a *API) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	scope, err := service.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if cancel, _ := strconv.ParseBool(r.URL.Query().Get("cancel")); cancel {
		err = a.service.Appointments.Cancel(r.Context(), id, scope)
	} else {
		err = a.service.Appointments.Delete(r.Context(), id, scope)
	}
	if err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type blockTimeRequest struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

// POST /clinicians/{id}/blocked-time
func (a *API) blockTime(w http.ResponseWriter, r *http.Request) {
	var req blockTimeRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	appt, err := a.service.Appointments.BlockTime(r.Context(), chi.URLParam(r, "id"), req.StartAt, req.EndAt)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, appt)
}

// GET /search?clinician=...&start=...&end=...&status=...
func (a *API) searchAppointments(w http.ResponseWriter, r *http.Request) {
	clinicianID := r.URL.Query().Get("clinician")
	from, to, err := parseRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	appts, err := a.service.Appointments.List(r.Context(), clinicianID, from, to, false)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := appts[:0]
		for _, appt := range appts {
			if appt.Status == status {
				filtered = append(filtered, appt)
			}
		}
		appts = filtered
	}

	writeJSON(w, http.StatusOK, appts)
}

// GET /clinicians/{id}/reports?start=...&end=...
func (a *API) appointmentReport(w http.ResponseWriter, r *http.Request) {
	clinicianID := chi.URLParam(r, "id")
	from, to, err := parseRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	appts, err := a.service.Appointments.List(r.Context(), clinicianID, from, to, false)
	if err != nil {
		a.writeError(w, err)
		return
	}

	counts := map[string]int{}
	for _, appt := range appts {
		counts[appt.Status]++
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"clinician_id": clinicianID,
		"total":        len(appts),
		"by_status":    counts,
	})
}

// GET /clinicians/{id}/export?start=...&end=... — CSV of real appointments
func (a *API) exportAppointments(w http.ResponseWriter, r *http.Request) {
	clinicianID := chi.URLParam(r, "id")
	from, to, err := parseRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	appts, err := a.service.Appointments.List(r.Context(), clinicianID, from, to, false)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=appointments.csv")

	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "client_id", "start_at", "end_at", "type", "status"})
	for _, appt := range appts {
		cw.Write([]string{
			appt.ID,
			appt.ClientID,
			appt.StartAt.Format(time.RFC3339),
			appt.EndAt.Format(time.RFC3339),
			appt.Type,
			appt.Status,
		})
	}
	cw.Flush()
}
