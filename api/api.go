package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/service"
)

type API struct {
	service *service.Service
	caps    service.Capabilities
	logger  zerolog.Logger
}

func NewAPI(s *service.Service, caps service.Capabilities, logger zerolog.Logger) *API {
	return &API{service: s, caps: caps, logger: logger}
}

func (a *API) InitRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/clinicians", a.listClinicians)
		r.Get("/clinicians/{id}", a.getClinician)
		r.Put("/clinicians/{id}/timezone", a.updateClinicianTimeZone)

		r.Get("/clinicians/{id}/availability", a.getAvailability)

		r.Get("/clinicians/{id}/exceptions", a.listExceptions)
		r.Post("/clinicians/{id}/exceptions", a.addException)
		r.Put("/exceptions/{id}", a.updateException)
		r.Delete("/exceptions/{id}", a.deleteException)
		r.Put("/clinicians/{id}/worktime", a.updateWeeklySlot)

		r.Get("/clinicians/{id}/appointments", a.listAppointments)
		r.Post("/appointments", a.createAppointment)
		r.Post("/appointments/recurring", a.createRecurring)
		r.Put("/appointments/{id}", a.rescheduleAppointment)
		r.Put("/appointments/{id}/status", a.updateAppointmentStatus)
		r.Delete("/appointments/{id}", a.deleteAppointment)
		r.Post("/clinicians/{id}/blocked-time", a.blockTime)

		r.Get("/clinicians/{id}/events", a.listSyncedEvents)
		r.Post("/clinicians/{id}/events/sync", a.ingestSyncedEvents)

		// capability-gated surfaces
		r.Get("/search", a.gated(a.caps.Search, a.searchAppointments))
		r.Get("/clinicians/{id}/reports", a.gated(a.caps.Reports, a.appointmentReport))
		r.Get("/clinicians/{id}/export", a.gated(a.caps.Exports, a.exportAppointments))
	})
}

// gated mounts the handler only when the capability is on; disabled surfaces
// answer uniformly without reaching the service layer.
func (a *API) gated(enabled bool, h http.HandlerFunc) http.HandlerFunc {
	if enabled {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "feature disabled"})
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the service failure taxonomy onto HTTP statuses.
func (a *API) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidTimeZone):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, service.ErrFetchFailed):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		a.logger.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}
