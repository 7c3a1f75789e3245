package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method       string
	Path         string
	Query        string
	CacheControl string
	ContentType  string
	Body         string
}

// recorder captures every request and answers with a fixed status/body.
type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rec.mu.Lock()
	rec.requests = append(rec.requests, recordedRequest{
		Method:       r.Method,
		Path:         r.URL.Path,
		Query:        r.URL.RawQuery,
		CacheControl: r.Header.Get("Cache-Control"),
		ContentType:  r.Header.Get("Content-Type"),
		Body:         string(body),
	})
	rec.mu.Unlock()

	status := rec.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	w.Write([]byte(rec.body))
}

func (rec *recorder) only(t *testing.T) recordedRequest {
	t.Helper()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.requests, 1)
	return rec.requests[0]
}

func newTestClient(t *testing.T, rec *recorder) *Client {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestSearchNodes(t *testing.T) {
	t.Parallel()
	rec := &recorder{body: `[{"id":"1","name":"a"},{"id":"2","name":"b"}]`}
	c := newTestClient(t, rec)

	nodes, err := c.SearchNodes(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, []Node{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}, nodes)

	req := rec.only(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/v1/nodes", req.Path)
	assert.Equal(t, "pattern=foo", req.Query)
	assert.Equal(t, "no-store", req.CacheControl)
}

func TestSearchNodesEmptyPattern(t *testing.T) {
	t.Parallel()
	rec := &recorder{body: `[]`}
	c := newTestClient(t, rec)

	nodes, err := c.SearchNodes(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, nodes)
	assert.Empty(t, nodes)
	assert.Equal(t, "pattern=", rec.only(t).Query)
}

func TestSearchNodesHTTPError(t *testing.T) {
	t.Parallel()
	rec := &recorder{status: http.StatusBadRequest, body: "missing pattern"}
	c := newTestClient(t, rec)

	_, err := c.SearchNodes(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "missing pattern")
}

func TestSearchNodesBadJSON(t *testing.T) {
	t.Parallel()
	rec := &recorder{body: `{not json`}
	c := newTestClient(t, rec)

	_, err := c.SearchNodes(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing search response")
}

func TestDeleteNode(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	c := newTestClient(t, rec)

	require.NoError(t, c.DeleteNode(context.Background(), "n-42"))
	req := rec.only(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/api/v1/nodes/n-42", req.Path)
}

func TestAcquireNode(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	c := newTestClient(t, rec)

	require.NoError(t, c.AcquireNode(context.Background(), "n-42"))
	req := rec.only(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/v1/cache/n-42", req.Path)
}

func TestAcquireNodeServerError(t *testing.T) {
	t.Parallel()
	rec := &recorder{status: http.StatusInternalServerError, body: "boom"}
	c := newTestClient(t, rec)

	err := c.AcquireNode(context.Background(), "n-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquire n-1 returned 500")
}

func TestScanPaths(t *testing.T) {
	t.Parallel()
	rec := &recorder{body: "scanning"}
	c := newTestClient(t, rec)

	out, err := c.ScanPaths(context.Background(), []string{"/tmp", "/media"})
	require.NoError(t, err)
	assert.Equal(t, "scanning", out)

	req := rec.only(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/v1/cache", req.Path)
	assert.Equal(t, "application/x-www-form-urlencoded", req.ContentType)
	assert.Equal(t, "acd_paths%5B%5D=%2Ftmp&acd_paths%5B%5D=%2Fmedia", req.Body)
}

func TestSync(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	c := newTestClient(t, rec)

	require.NoError(t, c.Sync(context.Background()))
	req := rec.only(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/v1/cache", req.Path)
	assert.Empty(t, req.Body)
}

func TestFetchLog(t *testing.T) {
	t.Parallel()
	rec := &recorder{body: `[
		{"level":20,"timestamp":1467800000000,"thread":"MainThread","message":"A"},
		{"message":"B","extra":true}
	]`}
	c := newTestClient(t, rec)

	records, err := c.FetchLog(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].Message)
	assert.Equal(t, "INFO", records[0].LevelName())
	assert.Equal(t, "MainThread", records[0].Thread)
	assert.Equal(t, "B", records[1].Message)
	assert.Contains(t, string(records[1].Raw), `"extra":true`)

	req := rec.only(t)
	assert.Equal(t, "/api/v1/log", req.Path)
	assert.Equal(t, "no-store", req.CacheControl)
}

func TestFetchLogToleratesOddFields(t *testing.T) {
	t.Parallel()
	rec := &recorder{body: `[
		{"message":"A","level":"INFO"},
		{"message":"B","timestamp":1700000000000.5},
		{"message":"C"}
	]`}
	c := newTestClient(t, rec)

	records, err := c.FetchLog(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "A", records[0].Message)
	assert.Equal(t, 20, records[0].Level)
	assert.Equal(t, "B", records[1].Message)
	assert.Equal(t, int64(1700000000000), records[1].Timestamp)
	assert.Equal(t, "C", records[2].Message)
}

func TestFetchLogSkipsUndecodableRecords(t *testing.T) {
	t.Parallel()
	rec := &recorder{body: `[{"message":"A"},{"message":5},"junk",{"message":"B"}]`}
	c := newTestClient(t, rec)

	records, err := c.FetchLog(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].Message)
	assert.Equal(t, "B", records[1].Message)
}

func TestTransportFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	err := c.Sync(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync request failed")
}
