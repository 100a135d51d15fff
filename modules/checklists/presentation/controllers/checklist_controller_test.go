package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/fieldware/sitecheck/modules/checklists/domain/checklist"
	"github.com/fieldware/sitecheck/modules/checklists/services"
	"github.com/fieldware/sitecheck/pkg/application"
	"github.com/fieldware/sitecheck/pkg/composables"
	"github.com/fieldware/sitecheck/pkg/eventbus"
	"github.com/fieldware/sitecheck/pkg/session"
)

type stubSiteAPI struct {
	calls int
	body  map[string]any
	err   error
}

func (s *stubSiteAPI) SubmitChecklist(ctx context.Context, sess session.Session, endpoint string, body any) error {
	s.calls++
	s.body, _ = body.(map[string]any)
	return s.err
}

func testMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := composables.WithLogger(r.Context(), logrus.NewEntry(logrus.New()))
		ctx = composables.WithSession(ctx, session.Session{
			Token:      "tok",
			WorkSiteID: "ws-1",
			Role:       session.RoleSiteManager,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestRouter(t *testing.T, api services.SiteAPI) *mux.Router {
	t.Helper()
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logrus.New()),
		Logger:   logrus.New(),
	})
	app.RegisterServices(services.NewSubmissionService(api, app.EventPublisher()))

	r := mux.NewRouter()
	r.Use(testMiddleware)
	NewChecklistController(app).Register(r)
	return r
}

func postForm(t *testing.T, router *mux.Router, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func completeEarthingValues() url.Values {
	values := url.Values{}
	values.Set("inspection_date", "2026-08-29")
	values.Set("location", "Inverter station 2")
	for key, choice := range map[string]string{
		"answers[installation][pit_depth].choice":        "Yes",
		"answers[installation][strip_continuous].choice": "Yes",
		"answers[installation][joints_welded].choice":    "N/A",
		"answers[testing][resistance_measured].choice":   "Yes",
	} {
		values.Set(key, choice)
	}
	return values
}

func TestList(t *testing.T) {
	router := newTestRouter(t, &stubSiteAPI{})
	req := httptest.NewRequest(http.MethodGet, "/checklists", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"concrete_pour"`)
	require.Contains(t, rec.Body.String(), `"href":"/checklists/earthing"`)
}

func TestGetForm(t *testing.T) {
	router := newTestRouter(t, &stubSiteAPI{})
	req := httptest.NewRequest(http.MethodGet, "/checklists/earthing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"label":"Earth pit depth as per drawing"`)
}

func TestGetForm_NotFound(t *testing.T) {
	router := newTestRouter(t, &stubSiteAPI{})
	req := httptest.NewRequest(http.MethodGet, "/checklists/unknown_form", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmit_Created(t *testing.T) {
	api := &stubSiteAPI{}
	router := newTestRouter(t, api)

	rec := postForm(t, router, "/checklists/earthing", completeEarthingValues())
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"redirect":"/checklists/earthing"`)
	require.Equal(t, 1, api.calls)
	require.Equal(t, "2026-08-29", api.body["inspection_date"])

	answers, ok := api.body["checklists"].(map[string]map[string]checklist.AnswerPayload)
	require.True(t, ok)
	require.Equal(t, "Yes", answers["installation"]["pit_depth"].Choice)
	require.Equal(t, "N/A", answers["installation"]["joints_welded"].Choice)
}

func TestSubmit_IncompleteChecklist(t *testing.T) {
	api := &stubSiteAPI{}
	router := newTestRouter(t, api)

	values := completeEarthingValues()
	values.Del("answers[testing][resistance_measured].choice")

	rec := postForm(t, router, "/checklists/earthing", values)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Earth resistance measured and recorded")
	require.Zero(t, api.calls)
}

func TestSubmit_DuplicateWitness(t *testing.T) {
	api := &stubSiteAPI{}
	router := newTestRouter(t, api)

	values := url.Values{}
	values.Set("inspection_date", "2026-08-29")
	values.Set("location", "Block C")
	values.Set("witness1_id", "10")
	values.Set("witness2_id", "10")
	values.Set("witness3_id", "30")

	rec := postForm(t, router, "/checklists/concrete_pour", values)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "DUPLICATE_WITNESS")
	require.Zero(t, api.calls)
}

func TestSubmit_RemarkOnlyAnswerAccepted(t *testing.T) {
	api := &stubSiteAPI{}
	router := newTestRouter(t, api)

	values := completeEarthingValues()
	values.Set("answers[testing][megger_calibrated].remark", "calibration due next month")

	rec := postForm(t, router, "/checklists/earthing", values)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestSubmit_UnknownItemRejected(t *testing.T) {
	api := &stubSiteAPI{}
	router := newTestRouter(t, api)

	values := completeEarthingValues()
	values.Set("answers[installation][made_up].choice", "Yes")

	rec := postForm(t, router, "/checklists/earthing", values)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, api.calls)
}
