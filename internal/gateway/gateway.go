// Package gateway is the remote data gateway for the Selat Check
// backend. Each function translates one domain operation into a single
// HTTP request and normalizes the outcome into a uniform Result. There
// are no retries and no explicit timeouts: one attempt per call,
// transport defaults only.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// FallbackMessage is substituted whenever the backend does not supply a
// human-readable message of its own.
const FallbackMessage = "An error occurred. Please try again."

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// NewWithHTTPClient is used by tests to swap the transport.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := New(baseURL)
	c.http = httpClient
	return c
}

// Result is the uniform outcome shape every gateway call collapses to.
// On failure, Message always carries something a user can read.
type Result[T any] struct {
	Success bool
	Message string
	Data    T
}

func fail[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

// request performs one JSON round trip. Success bodies are either a
// bare payload or a {message, data} envelope; failure bodies are
// expected to carry a message field.
func request[T any](ctx context.Context, c *Client, method, path, token string, body any) Result[T] {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fail[T](FallbackMessage)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fail[T](FallbackMessage)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail[T](FallbackMessage)
	}
	defer resp.Body.Close()

	return decode[T](resp)
}

func decode[T any](resp *http.Response) Result[T] {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail[T](FallbackMessage)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail[T](serverMessage(raw))
	}

	var out Result[T]
	if len(raw) > 0 {
		var envelope struct {
			Message string          `json:"message"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
			if err := json.Unmarshal(envelope.Data, &out.Data); err != nil {
				return fail[T](FallbackMessage)
			}
			out.Message = envelope.Message
		} else if err := json.Unmarshal(raw, &out.Data); err != nil {
			return fail[T](FallbackMessage)
		}
	}
	out.Success = true
	return out
}

func serverMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && strings.TrimSpace(payload.Message) != "" {
		return payload.Message
	}
	return FallbackMessage
}
