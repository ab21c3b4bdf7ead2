// Package api is the single choke point for calls to the remote
// employee service. It attaches the bearer credential, unwraps the
// {"data": ...} envelope and turns every failure into an *Error
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ilhamrafi44/ayp/internal/session"
)

const (
	contentTypeJSON = "application/json"
	acceptJSON      = contentTypeJSON

	headerRequestID = "X-Request-Id"

	unexpectedResponse = "Unexpected response from server"
)

// Client talks to the remote service rooted at BaseURL
type Client struct {
	BaseURL string
	HTTP    *http.Client

	store session.Store
	log   zerolog.Logger
}

// Request describes one outbound call. Body is JSON-encoded when non-nil.
// NoAuth skips the bearer credential
type Request struct {
	Method string
	Path   string
	Body   any
	NoAuth bool
}

// New returns a client whose credential comes from store. A nil store
// sends every call unauthenticated
func New(baseURL string, timeout time.Duration, store session.Store, log zerolog.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		store:   store,
		log:     log,
	}
}

// Do sends req and decodes the unwrapped payload into out (which may be nil)
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return &Error{Kind: KindTransport, Message: "failed to encode request: " + err.Error(), Err: err}
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.BaseURL+req.Path, body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
	}

	reqID := uuid.NewString()
	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("Accept", acceptJSON)
	httpReq.Header.Set(headerRequestID, reqID)

	// A missing token is not a local failure; the service decides
	if !req.NoAuth {
		if token := session.Token(ctx, c.store); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		c.log.Warn().Err(err).
			Str("method", method).
			Str("path", req.Path).
			Str("request_id", reqID).
			Msg("request failed")
		return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
	}

	raw, err := readAndClose(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Message: err.Error(), Err: err}
	}

	c.log.Debug().
		Str("method", method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Str("request_id", reqID).
		Dur("took", time.Since(start)).
		Msg("api call")

	if err := decode(resp.StatusCode, raw, out); err != nil {
		c.log.Warn().
			Str("method", method).
			Str("path", req.Path).
			Int("status", resp.StatusCode).
			Str("request_id", reqID).
			Str("kind", errKind(err)).
			Msg("api call failed")
		return err
	}
	return nil
}

func readAndClose(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(rc)
}

// decode applies the response rules: the body is read as text, an empty
// body counts as {}, non-2xx becomes KindAPI (or KindUnauthenticated on
// 401) with the payload's message, and a 2xx payload is unwrapped from
// its "data" envelope when it has one
func decode(status int, raw []byte, out any) error {
	ok := status >= 200 && status < 300
	text := strings.TrimSpace(string(raw))

	if text == "" {
		if !ok {
			return failure(status, "", raw)
		}
		if out != nil {
			// nothing to decode is not a success for a typed call
			return &Error{Kind: KindMalformed, Status: status, Message: unexpectedResponse, Body: raw}
		}
		return nil
	}

	var payload json.RawMessage
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		if !ok {
			return failure(status, "", raw)
		}
		return &Error{Kind: KindMalformed, Status: status, Message: text, Body: raw, Err: err}
	}

	if !ok {
		return failure(status, messageOf(payload), raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(unwrap(payload), out); err != nil {
		return &Error{Kind: KindMalformed, Status: status, Message: unexpectedResponse, Body: raw, Err: err}
	}
	return nil
}

func failure(status int, msg string, raw []byte) *Error {
	if msg == "" {
		msg = statusMessage(status)
	}
	kind := KindAPI
	if status == http.StatusUnauthorized {
		kind = KindUnauthenticated
	}
	return &Error{Kind: kind, Status: status, Message: msg, Body: raw}
}

// messageOf returns the "message" string of an object payload
func messageOf(payload json.RawMessage) string {
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &obj); err != nil {
		return ""
	}
	return obj.Message
}

// unwrap returns the value of "data" when payload is an object carrying a
// non-null "data" field, and payload itself otherwise
func unwrap(payload json.RawMessage) json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return payload
	}
	data, ok := obj["data"]
	if !ok || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return payload
	}
	return data
}

func errKind(err error) string {
	if ae, ok := err.(*Error); ok {
		return ae.Kind.String()
	}
	return "unknown"
}
