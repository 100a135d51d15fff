package siteapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldware/sitecheck/pkg/session"
)

var testSession = session.Session{Token: "tok-1", WorkSiteID: "ws-7", Role: session.RoleSiteManager}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, Options{RequestIDHeader: "X-Request-ID"})
	require.NoError(t, err)
	return client, srv
}

func TestSubmitChecklist_Created(t *testing.T) {
	var gotAuth, gotSite, gotRequestID string
	var gotBody map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/inspections/earthing", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotSite = r.URL.Query().Get("work_site_id")
		gotRequestID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.SubmitChecklist(context.Background(), testSession, "/inspections/earthing", map[string]any{"date": "2026-08-29"})
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-1", gotAuth)
	require.Equal(t, "ws-7", gotSite)
	require.NotEmpty(t, gotRequestID)
	require.Equal(t, "2026-08-29", gotBody["date"])
}

func TestSubmitChecklist_NonFieldErrorSurfaced(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"non_field_errors":["witnesses must be distinct"]}`))
	})

	err := client.SubmitChecklist(context.Background(), testSession, "/inspections/earthing", map[string]any{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "witnesses must be distinct", apiErr.Message)
}

func TestSubmitChecklist_WrongStatusIsError(t *testing.T) {
	// a 200 from a POST endpoint that promises 201 is still a failure
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	err := client.SubmitChecklist(context.Background(), testSession, "/inspections/earthing", map[string]any{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusOK, apiErr.Status)
}

func TestGetJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		// reads carry auth but no work_site_id override
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.Empty(t, r.URL.Query().Get("work_site_id"))
		_, _ = w.Write([]byte(`{"id":15,"status":"submitted"}`))
	})

	var out struct {
		ID     int    `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, client.GetJSON(context.Background(), testSession, "/permits/15", &out))
	require.Equal(t, 15, out.ID)
	require.Equal(t, "submitted", out.Status)
}

func TestPut_AbsoluteURLPassthrough(t *testing.T) {
	var gotPath string
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	// server-supplied action URLs are absolute and must not be re-rooted
	err := client.Put(context.Background(), testSession, srv.URL+"/permits/15/close", nil)
	require.NoError(t, err)
	require.Equal(t, "/permits/15/close", gotPath)
}

func TestPutMultipart_SniffsContentType(t *testing.T) {
	pngHeader := []byte("\x89PNG\r\n\x1a\n0000000000")
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "15", r.FormValue("permit_id"))
		file, header, err := r.FormFile("verifier_signature")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		require.Equal(t, "sig.png", header.Filename)
		require.Equal(t, "image/png", header.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	})

	err := client.PutMultipart(context.Background(), testSession, "/permits/15/verify",
		map[string]string{"permit_id": "15"},
		[]FilePart{{Field: "verifier_signature", Filename: "sig.png", Data: pngHeader}},
	)
	require.NoError(t, err)
}

func TestContextCancellationAborts(t *testing.T) {
	started := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- client.Put(ctx, testSession, "/permits/15/close", nil)
	}()
	<-started
	cancel()
	err := <-done
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}
