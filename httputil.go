package capratio

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// diskCache implements a best-effort disk cache for HTTP responses. The key
// embeds the current day, so entries expire daily; failures to read or write
// the cache are ignored and the request goes through.
type diskCache struct {
	base http.RoundTripper
}

// RoundTrip implements the http.RoundTripper interface.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := fmt.Sprintf("%s %s %s", time.Now().Format("2006-01-02"), req.Method, req.URL.String())
	key = fmt.Sprintf("capratio-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	slog.Debug("http", "method", resp.Request.Method, "host", resp.Request.URL.Host, "status", resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		slog.Debug("cache write failed (ignored)", "err", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(os.TempDir(), key), content, 0644)
}

// NewDailyCachingClient returns an http.Client whose responses are cached on
// disk with entries expiring daily. Providers price assets on prev-day
// closes, so within a day a repeated run can be answered from disk entirely.
func NewDailyCachingClient() *http.Client {
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport}}
}
