// Package clients contains the typed HTTP clients for the remote book and
// review services. Both share the same transport conventions: JSON bodies,
// a bearer token when a session exists, a correlation id per request, and
// a fixed timeout with no retry.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bookshelf/internal/identity"
)

// DefaultTimeout bounds every request. The services publish no timeout of
// their own; expiry surfaces as a transport failure.
const DefaultTimeout = 10 * time.Second

// APIError is returned when a service responds with a non-2xx status. It
// carries the server-provided message when the response body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.Status, e.Message)
}

// errorBody matches the error payload shapes the services use.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// api is the transport shared by both clients. notFound, when set, replaces
// the generic APIError on a 404 so callers can match it as a sentinel.
type api struct {
	baseURL  string
	session  *identity.Session
	client   *http.Client
	tracer   trace.Tracer
	notFound error
}

func newAPI(baseURL string, session *identity.Session, timeout time.Duration, name string, notFound error) api {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return api{
		baseURL:  baseURL,
		session:  session,
		client:   &http.Client{Timeout: timeout},
		tracer:   otel.Tracer("bookshelf/clients/" + name),
		notFound: notFound,
	}
}

// do performs one request/response exchange. A nil out skips body decoding
// for 204-style responses.
func (a *api) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	ctx, span := a.tracer.Start(ctx, op,
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		),
	)
	defer span.End()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	rawURL := a.baseURL + path
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	token, err := a.session.Token(ctx)
	if err != nil {
		return fmt.Errorf("fetch session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		if resp.StatusCode == http.StatusNotFound && a.notFound != nil {
			return a.notFound
		}
		var payload errorBody
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.text() != "" {
			return &APIError{Status: resp.StatusCode, Message: payload.text()}
		}
		return &APIError{Status: resp.StatusCode, Message: "request failed"}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Reason extracts a message suitable for showing to the user: the
// server-provided message when there is one, the plain error text
// otherwise.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
