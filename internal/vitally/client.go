package vitally

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// maxResponseBytes caps how much of an upstream response body is read.
const maxResponseBytes = 4 << 20

// Method is the small set of HTTP verbs the Vitally API is called with.
type Method string

const (
	MethodGet  Method = http.MethodGet
	MethodPost Method = http.MethodPost
	MethodPut  Method = http.MethodPut
)

// Transport issues one Vitally API call. The endpoint is relative to the
// configured base URL and may carry a query string. The body, when
// non-nil, is serialized as JSON for create/replace calls.
//
// Implementations: Client (live HTTP) and Mock (demo mode). Callers must
// not care which one they hold.
type Transport interface {
	Call(ctx context.Context, endpoint string, method Method, body any) (json.RawMessage, error)
}

// APIError is returned for any non-success HTTP status from the API.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vitally API request failed: %s", e.Status)
}

// Client is the live Transport. One network round trip per call, no
// retries, no timeout beyond the http.Client default.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient creates a live API client for the given base URL and secret
// token.
func NewClient(baseURL, apiKey string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   http.DefaultClient,
		log:     logger,
	}
}

// Call performs one authenticated request and returns the raw JSON body.
// Non-2xx responses become an *APIError carrying the HTTP status.
func (c *Client) Call(ctx context.Context, endpoint string, method Method, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.baseURL + "/" + strings.TrimPrefix(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, string(method), url, reader)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", basicAuth(c.apiKey))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("method", string(method)).Str("endpoint", endpoint).Msg("calling vitally API")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", endpoint, err)
	}
	return json.RawMessage(data), nil
}

// basicAuth builds the Authorization header Vitally expects: the secret
// token as a Basic credential with an empty password.
func basicAuth(apiKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey+":"))
}
