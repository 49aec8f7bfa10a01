package vitally

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "secret-token", zerolog.Nop())
}

func TestClientSetsBasicAuthHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.Call(context.Background(), "accounts", MethodGet, nil)
	require.NoError(t, err)

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("secret-token:"))
	assert.Equal(t, want, gotAuth)
}

func TestClientGetReturnsRawBody(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.RequestURI()
		_, _ = w.Write([]byte(`{"results":[{"id":"1","name":"Acme Corporation"}]}`))
	})

	raw, err := c.Call(context.Background(), "accounts?limit=10&status=active", MethodGet, nil)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/accounts?limit=10&status=active", gotPath)

	var page Page[Account]
	require.NoError(t, json.Unmarshal(raw, &page))
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Acme Corporation", page.Results[0].Name)
}

func TestClientSerializesBodyForMutations(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"id":"note-9"}`))
	})

	body := map[string]string{"accountId": "1", "note": "hello"}
	_, err := c.Call(context.Background(), "notes", MethodPost, body)
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"accountId":"1","note":"hello"}`, string(gotBody))
}

func TestClientMapsNonSuccessToAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := c.Call(context.Background(), "accounts/999", MethodGet, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "404")
}

func TestClientReportsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient(srv.URL, "secret-token", zerolog.Nop())
	srv.Close()

	_, err := c.Call(context.Background(), "accounts", MethodGet, nil)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not APIErrors")
}
