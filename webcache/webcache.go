// Package webcache contains http utils to deal with remote quote services:
// a disk cache for responses and a JSON GET helper.
package webcache

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// diskCache implements a simple disk cache for HTTP responses.
//
// Entries are keyed by the request and the current TTL bucket, so they
// expire when the bucket changes.
type diskCache struct {
	base http.RoundTripper
	dir  string
	ttl  time.Duration
	now  func() time.Time
	log  logrus.FieldLogger
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first. If a fresh cached response is not found, it proceeds
// with the actual HTTP request and caches the new response if it's successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	bucket := c.now().Truncate(c.ttl).Unix()
	key := fmt.Sprintf("%d %s %s", bucket, req.Method, req.URL.String())
	key = fmt.Sprintf("hold-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		c.log.WithField("url", req.URL.Host+req.URL.Path).Debug("cache hit")
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"method": resp.Request.Method,
		"url":    resp.Request.URL.Host + resp.Request.URL.Path,
		"status": resp.Status,
	}).Debug("http response")
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	// otherwise attempt to store it in cache
	if err := c.put(key, resp); err != nil {
		c.log.WithError(err).Warn("cache write failed (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
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
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}

// Options configure a Client.
type Options struct {
	Timeout time.Duration // 0 means no timeout
	TTL     time.Duration // 0 disables the cache
	Dir     string        // cache folder, os.TempDir() if empty
	Log     logrus.FieldLogger
}

// NewClient returns an http.Client that caches successful responses on disk
// for up to opts.TTL.
func NewClient(opts Options) *http.Client {
	client := &http.Client{Timeout: opts.Timeout}
	if opts.TTL <= 0 {
		return client
	}
	dir := opts.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	client.Transport = &diskCache{base: http.DefaultTransport, dir: dir, ttl: opts.TTL, now: time.Now, log: log}
	return client
}

// GetJSON performs an HTTP GET request to the given address and unmarshals the
// JSON response body into the provided data structure.
func GetJSON(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
