// Package siteapi is the HTTP client for the inspection REST backend.
//
// The backend owns all storage and workflow rules; this client only shapes
// requests the way the backend expects: bearer token and work_site_id on
// every write, JSON for scalar payloads, multipart for image evidence.
// Every request carries the caller's context so an abandoned page does not
// leave orphaned requests behind. Nothing is retried.
package siteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/fieldware/sitecheck/pkg/configuration"
	"github.com/fieldware/sitecheck/pkg/session"
)

// APIError is a non-2xx backend response. Message prefers the backend's
// non_field_errors[0] or message field; otherwise a generic fallback.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %s (status=%d)", e.Message, e.Status)
	}
	return fmt.Sprintf("backend: request failed (status=%d)", e.Status)
}

type errorBody struct {
	Message        string   `json:"message"`
	Code           string   `json:"code"`
	NonFieldErrors []string `json:"non_field_errors"`
}

// FilePart is one uploaded image relayed to the backend as a
// multipart/form-data part. Images are never base64-inlined.
type FilePart struct {
	Field    string
	Filename string
	Data     []byte
}

type Options struct {
	Timeout         time.Duration
	RequestIDHeader string
}

type Client struct {
	baseURL         *url.URL
	httpClient      *http.Client
	requestIDHeader string
}

func NewClient(baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL: %q", baseURL)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:         u,
		httpClient:      &http.Client{Timeout: timeout},
		requestIDHeader: opts.RequestIDHeader,
	}, nil
}

// FromConfiguration builds the client the server entrypoint uses.
func FromConfiguration(conf *configuration.Configuration) (*Client, error) {
	return NewClient(conf.Backend.BaseURL, Options{
		Timeout:         conf.Backend.Timeout,
		RequestIDHeader: conf.RequestIDHeader,
	})
}

// resolve joins a path or server-supplied URL against the backend base.
// Permit action descriptors carry absolute URLs; those pass through as-is.
func (c *Client) resolve(pathOrURL string) (string, error) {
	u, err := url.Parse(pathOrURL)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", pathOrURL, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	resolved := *c.baseURL
	resolved.Path = strings.TrimRight(resolved.Path, "/") + "/" + strings.TrimLeft(u.Path, "/")
	resolved.RawQuery = u.RawQuery
	return resolved.String(), nil
}

func (c *Client) do(ctx context.Context, sess session.Session, method, pathOrURL string, contentType string, body io.Reader, wantStatus int, out any) error {
	target, err := c.resolve(pathOrURL)
	if err != nil {
		return err
	}
	u, err := url.Parse(target)
	if err != nil {
		return err
	}
	if method != http.MethodGet {
		q := u.Query()
		q.Set("work_site_id", sess.WorkSiteID)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, uuid.NewString())
	}
	req.Header.Set("Authorization", sess.Authorization())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("http read: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("json unmarshal response: %w", err)
	}
	return nil
}

func newAPIError(status int, body []byte) *APIError {
	var parsed errorBody
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Code = parsed.Code
		switch {
		case len(parsed.NonFieldErrors) > 0:
			apiErr.Message = parsed.NonFieldErrors[0]
		case parsed.Message != "":
			apiErr.Message = parsed.Message
		}
	}
	return apiErr
}

// SubmitChecklist posts an assembled checklist body to a form endpoint.
// The backend acknowledges with 201 Created.
func (c *Client) SubmitChecklist(ctx context.Context, sess session.Session, endpoint string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("json marshal request: %w", err)
	}
	return c.do(ctx, sess, http.MethodPost, endpoint, "application/json", bytes.NewReader(b), http.StatusCreated, nil)
}

// GetJSON fetches a resource into out, expecting 200.
func (c *Client) GetJSON(ctx context.Context, sess session.Session, pathOrURL string, out any) error {
	return c.do(ctx, sess, http.MethodGet, pathOrURL, "", nil, http.StatusOK, out)
}

// Put performs a state-transition PUT with an optional JSON body,
// expecting 200.
func (c *Client) Put(ctx context.Context, sess session.Session, pathOrURL string, body any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, sess, http.MethodPut, pathOrURL, contentType, reader, http.StatusOK, nil)
}

// PutMultipart performs a state-transition PUT carrying file parts and
// scalar fields as multipart/form-data, expecting 200. Part content types
// are sniffed from the data rather than trusted from the upload.
func (c *Client) PutMultipart(ctx context.Context, sess session.Session, pathOrURL string, fields map[string]string, files []FilePart) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("multipart field %q: %w", key, err)
		}
	}
	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
		header.Set("Content-Type", mimetype.Detect(file.Data).String())
		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("multipart part %q: %w", file.Field, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return fmt.Errorf("multipart write %q: %w", file.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("multipart close: %w", err)
	}

	return c.do(ctx, sess, http.MethodPut, pathOrURL, writer.FormDataContentType(), &buf, http.StatusOK, nil)
}
