package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/data"
	"github.com/LPredmore/valorwell-clinician-portal-sub007/service"
)

func newTestRouter(t *testing.T, caps service.Capabilities) (http.Handler, *data.DAO) {
	t.Helper()
	dao := data.NewDAO("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	svc := service.NewService(dao, service.Options{Logger: zerolog.Nop()})

	r := chi.NewRouter()
	NewAPI(svc, caps, zerolog.Nop()).InitRoutes(r)
	return r, dao
}

func get(h http.Handler, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestGatedRoutesAnswerDisabled(t *testing.T) {
	h, _ := newTestRouter(t, service.DefaultCapabilities())

	for _, url := range []string{
		"/api/v1/search?start=2024-06-01&end=2024-06-07",
		"/api/v1/clinicians/x/reports?start=2024-06-01&end=2024-06-07",
		"/api/v1/clinicians/x/export?start=2024-06-01&end=2024-06-07",
	} {
		rec := get(h, url)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, url)
		require.JSONEq(t, `{"error":"feature disabled"}`, rec.Body.String(), url)
	}
}

func TestEnabledRoutesReachHandlers(t *testing.T) {
	h, dao := newTestRouter(t, service.Capabilities{Search: true, Reports: true, Exports: true})

	c := data.Clinician{ID: uuid.NewString(), TimeZone: "America/Chicago", IsActive: true}
	require.NoError(t, dao.Clinicians.Add(&c))

	rec := get(h, "/api/v1/search?clinician="+c.ID+"&start=2024-06-01&end=2024-06-07")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(h, "/api/v1/clinicians/"+c.ID+"/reports?start=2024-06-01&end=2024-06-07")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(h, "/api/v1/clinicians/"+c.ID+"/export?start=2024-06-01&end=2024-06-07")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
}

func TestErrorStatusMapping(t *testing.T) {
	h, dao := newTestRouter(t, service.DefaultCapabilities())

	c := data.Clinician{
		ID:           uuid.NewString(),
		TimeZone:     "America/Chicago",
		IsActive:     true,
		MondayStart1: "09:00",
		MondayEnd1:   "12:00",
	}
	require.NoError(t, dao.Clinicians.Add(&c))

	// malformed query
	rec := get(h, "/api/v1/clinicians/"+c.ID+"/availability?start=nope&end=2024-06-07")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// inverted range comes back as a validation error
	rec = get(h, "/api/v1/clinicians/"+c.ID+"/availability?start=2024-06-07&end=2024-06-01")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown clinician
	rec = get(h, "/api/v1/clinicians/missing/availability?start=2024-06-01&end=2024-06-07")
	require.Equal(t, http.StatusNotFound, rec.Code)

	// happy path
	rec = get(h, "/api/v1/clinicians/"+c.ID+"/availability?start=2024-06-01&end=2024-06-07")
	require.Equal(t, http.StatusOK, rec.Code)
}
