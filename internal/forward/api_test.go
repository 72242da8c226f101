package forward

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devilcove/piafwd"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

const assignPath = "/vpninfo/port_forward_assignment"

func testCredentials() Credentials {
	return Credentials{
		"user":      "p1234567",
		"pass":      "secret",
		"client_id": "abc123def456",
		"local_ip":  "10.6.118.4",
	}
}

// assignServer starts a test server answering the assignment path with
// the given status and body.
func assignServer(t *testing.T, status int, contentType, body string) *httptest.Server {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc(assignPath, func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}).Methods(http.MethodPost)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestRequestPort(t *testing.T) {
	t.Run("forwards credentials as a form", func(t *testing.T) {
		router := mux.NewRouter()
		router.HandleFunc(assignPath, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.Nil(t, r.ParseForm())
			assert.Equal(t, "p1234567", r.FormValue("user"))
			assert.Equal(t, "secret", r.FormValue("pass"))
			assert.Equal(t, "abc123def456", r.FormValue("client_id"))
			assert.Equal(t, "10.6.118.4", r.FormValue("local_ip"))
			_, _ = w.Write([]byte(`{"port": 41374}`))
		}).Methods(http.MethodPost)
		server := httptest.NewServer(router)
		t.Cleanup(server.Close)
		document, err := RequestPort(context.Background(), testCredentials(), server.URL+assignPath, time.Second)
		assert.Nil(t, err)
		assert.Equal(t, json.Number("41374"), document["port"])
	})
	t.Run("unescapes the response", func(t *testing.T) {
		server := assignServer(t, http.StatusOK, "", `%7B%22port%22%3A%2041374%7D`)
		document, err := RequestPort(context.Background(), testCredentials(), server.URL+assignPath, time.Second)
		assert.Nil(t, err)
		assert.Equal(t, json.Number("41374"), document["port"])
	})
	t.Run("decodes declared charset", func(t *testing.T) {
		server := assignServer(t, http.StatusOK, "application/json; charset=latin1", "{\"error\": \"caf\xe9\"}")
		document, err := RequestPort(context.Background(), testCredentials(), server.URL+assignPath, time.Second)
		assert.Nil(t, err)
		assert.Equal(t, "café", document["error"])
	})
	t.Run("unknown charset falls back to raw bytes", func(t *testing.T) {
		server := assignServer(t, http.StatusOK, "application/json; charset=klingon", `{"port": 7}`)
		document, err := RequestPort(context.Background(), testCredentials(), server.URL+assignPath, time.Second)
		assert.Nil(t, err)
		assert.Equal(t, json.Number("7"), document["port"])
	})
	t.Run("http error status", func(t *testing.T) {
		server := assignServer(t, http.StatusUnauthorized, "", "denied")
		_, err := RequestPort(context.Background(), testCredentials(), server.URL+assignPath, time.Second)
		assert.NotNil(t, err)
		assert.Equal(t, piafwd.APIRequestFailed, failureCode(t, err))
		assert.Contains(t, err.Error(), "401")
	})
	t.Run("connection refused", func(t *testing.T) {
		server := assignServer(t, http.StatusOK, "", "{}")
		endpoint := server.URL + assignPath
		server.Close()
		_, err := RequestPort(context.Background(), testCredentials(), endpoint, time.Second)
		assert.NotNil(t, err)
		assert.Equal(t, piafwd.APIRequestFailed, failureCode(t, err))
	})
	t.Run("timeout", func(t *testing.T) {
		router := mux.NewRouter()
		router.HandleFunc(assignPath, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Second)
			_, _ = w.Write([]byte(`{"port": 41374}`))
		}).Methods(http.MethodPost)
		server := httptest.NewServer(router)
		t.Cleanup(server.Close)
		_, err := RequestPort(context.Background(), testCredentials(), server.URL+assignPath, time.Millisecond*50)
		assert.NotNil(t, err)
		assert.Equal(t, piafwd.APIRequestFailed, failureCode(t, err))
	})
	t.Run("invalid endpoint", func(t *testing.T) {
		_, err := RequestPort(context.Background(), testCredentials(), "://not-a-url", time.Second)
		assert.NotNil(t, err)
		assert.Equal(t, piafwd.APIRequestFailed, failureCode(t, err))
	})
	t.Run("malformed response", func(t *testing.T) {
		server := assignServer(t, http.StatusOK, "", "this is not json")
		_, err := RequestPort(context.Background(), testCredentials(), server.URL+assignPath, time.Second)
		assert.NotNil(t, err)
		assert.Equal(t, piafwd.ResponseMalformed, failureCode(t, err))
		assert.Contains(t, err.Error(), "this is not json")
	})
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name string // description of this test case
		text string
		want piafwd.ExitCode
	}{
		{
			name: "object",
			text: `{"port": 41374}`,
			want: piafwd.Success,
		},
		{
			name: "empty object",
			text: `{}`,
			want: piafwd.Success,
		},
		{
			name: "empty",
			text: "",
			want: piafwd.ResponseMalformed,
		},
		{
			name: "array",
			text: `[1, 2]`,
			want: piafwd.ResponseMalformed,
		},
		{
			name: "null",
			text: "null",
			want: piafwd.ResponseMalformed,
		},
		{
			name: "trailing data",
			text: `{"port": 41374} extra`,
			want: piafwd.ResponseMalformed,
		},
		{
			name: "bare number",
			text: "41374",
			want: piafwd.ResponseMalformed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			document, err := parseResponse(tt.text)
			if tt.want == piafwd.Success {
				assert.Nil(t, err)
				assert.NotNil(t, document)
				return
			}
			assert.NotNil(t, err)
			assert.Equal(t, tt.want, failureCode(t, err))
		})
	}
}

func TestUnescapeResponse(t *testing.T) {
	tests := []struct {
		name string // description of this test case
		text string
		want string
	}{
		{
			name: "escaped json",
			text: `%7B%22port%22%3A%2012345%7D`,
			want: `{"port": 12345}`,
		},
		{
			name: "plain json untouched",
			text: `{"port": 12345}`,
			want: `{"port": 12345}`,
		},
		{
			name: "plus signs are literal",
			text: "a+b",
			want: "a+b",
		},
		{
			name: "broken escape passes through",
			text: "100% bad",
			want: "100% bad",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unescapeResponse(tt.text))
		})
	}
}

func TestDecodeBody(t *testing.T) {
	t.Run("no content type", func(t *testing.T) {
		assert.Equal(t, `{"port": 1}`, decodeBody([]byte(`{"port": 1}`), ""))
	})
	t.Run("latin1", func(t *testing.T) {
		assert.Equal(t, "café", decodeBody([]byte("caf\xe9"), "text/plain; charset=ISO-8859-1"))
	})
	t.Run("unknown charset", func(t *testing.T) {
		assert.Equal(t, "plain", decodeBody([]byte("plain"), "text/plain; charset=klingon"))
	})
}
