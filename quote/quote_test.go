package quote

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChart = `{
  "chart": {
    "result": [
      {"meta": {"symbol": "005930.KS", "regularMarketPrice": 71200.5}}
    ],
    "error": null
  }
}`

func TestPricePath(t *testing.T) {
	var jobj any
	require.NoError(t, jwgetFromString(sampleChart, &jobj))
	val, err := jsonpath.Get(pricePath, jobj)
	require.NoError(t, err)
	assert.Equal(t, 71200.5, val)
}

func jwgetFromString(body string, data any) error {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()
	return jwget(srv.Client(), srv.URL, data)
}

func TestJwgetRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()
	var jobj any
	assert.Error(t, jwget(srv.Client(), srv.URL, &jobj))
}

func TestDiskCacheServesRepeatedRequests(t *testing.T) {
	var buf strings.Builder
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	log := zerolog.New(&buf)
	client := &http.Client{Transport: &diskCache{base: http.DefaultTransport, log: log}}
	for i := 0; i < 2; i++ {
		var jobj any
		require.NoError(t, jwget(client, srv.URL, &jobj))
	}
	// The second request is served from disk within the same hour.
	assert.Equal(t, 1, hits)
	// The fetch diagnostic goes through the structured logger.
	assert.Contains(t, buf.String(), `"message":"quote fetched"`)
}

func TestUserAgentHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	client := &http.Client{Transport: &userAgent{http.DefaultTransport}}
	var jobj any
	require.NoError(t, jwget(client, srv.URL, &jobj))
	assert.Equal(t, "rebalance/1.0", got)
}
