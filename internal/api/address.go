package api

import (
	"net/url"
	"strings"
)

const (
	nodesPath  = "/api/v1/nodes"
	cachePath  = "/api/v1/cache"
	logPath    = "/api/v1/log"
	socketPath = "/api/v1/socket"
)

// Resource names one of the collections exposed by ddld.
type Resource int

const (
	ResourceNodes Resource = iota
	ResourceCache
	ResourceLog
	ResourceLogStream
)

// Address maps logical resources onto request targets under a base URL.
// It never validates ids or query strings.
type Address struct {
	base string
}

func NewAddress(baseURL string) Address {
	return Address{base: strings.TrimRight(baseURL, "/")}
}

// Target is the generic form of the helpers below. For ResourceNodes an
// argument containing "=" is treated as an encoded query string, anything
// else as a node id.
func (a Address) Target(kind Resource, idOrQuery string) string {
	switch kind {
	case ResourceNodes:
		if idOrQuery == "" {
			return a.Nodes()
		}
		if strings.Contains(idOrQuery, "=") {
			return a.base + nodesPath + "?" + idOrQuery
		}
		return a.Node(idOrQuery)
	case ResourceCache:
		return a.CacheItem(idOrQuery)
	case ResourceLog:
		return a.Log()
	case ResourceLogStream:
		return a.LogStream()
	}
	return a.base
}

func (a Address) Nodes() string { return a.base + nodesPath }

func (a Address) NodesQuery(q url.Values) string {
	return a.base + nodesPath + "?" + q.Encode()
}

func (a Address) Node(id string) string { return a.base + nodesPath + "/" + id }

func (a Address) Cache() string { return a.base + cachePath }

// CacheItem addresses a single cached node; an empty id yields the
// collection itself.
func (a Address) CacheItem(id string) string {
	if id == "" {
		return a.Cache()
	}
	return a.base + cachePath + "/" + id
}

func (a Address) Log() string { return a.base + logPath }

// LogStream returns the WebSocket endpoint, swapping http(s) for ws(s).
func (a Address) LogStream() string {
	switch {
	case strings.HasPrefix(a.base, "https://"):
		return "wss://" + strings.TrimPrefix(a.base, "https://") + socketPath
	case strings.HasPrefix(a.base, "http://"):
		return "ws://" + strings.TrimPrefix(a.base, "http://") + socketPath
	}
	return a.base + socketPath
}
