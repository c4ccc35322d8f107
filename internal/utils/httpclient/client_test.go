package httpclient

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MatchBoard/internal/config"

	"github.com/andybalholm/brotli"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = "match_id,team\n1,U10 Reds\n"

func compressed(t *testing.T, encoding string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	switch encoding {
	case "gzip":
		w = gzip.NewWriter(&buf)
	case "br":
		w = brotli.NewWriter(&buf)
	default:
		t.Fatalf("unknown encoding %s", encoding)
	}
	_, err := w.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestNewHTTPClient_Decodes(t *testing.T) {
	for _, encoding := range []string{"gzip", "br", ""} {
		t.Run("encoding="+encoding, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.Header.Get("Accept-Encoding"), "br")
				if encoding == "" {
					_, _ = w.Write([]byte(payload))
					return
				}
				w.Header().Set("Content-Encoding", encoding)
				_, _ = w.Write(compressed(t, encoding))
			}))
			defer srv.Close()

			client := NewHTTPClient(config.HTTPOptions{Timeout: 5}, logrus.New())
			resp, err := client.Get(srv.URL)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, payload, string(body))
			assert.Empty(t, resp.Header.Get("Content-Encoding"))
		})
	}
}

func TestNewHTTPClient_TimeoutAndBadProxy(t *testing.T) {
	client := NewHTTPClient(config.HTTPOptions{Proxy: "://bad"}, logrus.New())
	assert.Equal(t, defaultTimeout, client.Timeout)

	client = NewHTTPClient(config.HTTPOptions{Timeout: 3}, logrus.New())
	assert.Equal(t, 3*time.Second, client.Timeout)
}

func TestNewHTTPClient_LeavesRequestHeadersUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip, br", r.Header.Get("Accept-Encoding"))
		assert.Equal(t, "text/csv", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/csv")

	client := NewHTTPClient(config.HTTPOptions{Timeout: 5}, logrus.New())
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, req.Header.Get("Accept-Encoding"))
	assert.Equal(t, http.Header{"Accept": {"text/csv"}}, req.Header)
}
