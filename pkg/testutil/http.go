// Package testutil provides common test utilities for handler and integration tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// ContentTypeRDAP mirrors the media type the query endpoint answers with.
const ContentTypeRDAP = "application/rdap+json"

// NewRequest creates a simple HTTP request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// DecodeBody unmarshals a JSON object response, failing the test otherwise.
func DecodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "response is not a JSON object: %s", rr.Body.String())
	return body
}

// RequireRDAP checks the status and RDAP media type of rr and returns the
// decoded body. Error messages are RDAP bodies too.
func RequireRDAP(t *testing.T, rr *httptest.ResponseRecorder, status int) map[string]any {
	t.Helper()
	require.Equal(t, status, rr.Code, "unexpected status, body: %s", rr.Body.String())
	require.Equal(t, ContentTypeRDAP, rr.Header().Get("Content-Type"))
	return DecodeBody(t, rr)
}
