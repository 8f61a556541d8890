package logx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymizeIP(t *testing.T) {
	tests := map[string]string{
		"203.0.113.42:5555":      "203.0.113.0",
		"203.0.113.42":           "203.0.113.0",
		"[::1]:80":               "127.0.0.1",
		"2001:db8:85a3::8a2e:1":  "2001:db8:85a3::",
		"[2001:db8:1:2:3::4]:80": "2001:db8:1:2::",
		"not-an-ip":              "unknown_ip",
	}

	for in, want := range tests {
		assert.Equal(t, want, AnonymizeIP(in), in)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	InitGlobalLoggerTo(&buf, false)
	t.Cleanup(func() { InitGlobalLoggerTo(&bytes.Buffer{}, false) })

	h := RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	r.RemoteAddr = "198.51.100.7:1234"
	h.ServeHTTP(httptest.NewRecorder(), r)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "http", entry["component"])
	assert.Equal(t, "198.51.100.0", entry["remote_ip"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.Equal(t, "ghprofile", entry["service"])
}
