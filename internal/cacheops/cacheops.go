// Package cacheops triggers whole-tree cache operations that do not
// depend on the node selection.
package cacheops

import "context"

type Client interface {
	ScanPaths(ctx context.Context, paths []string) (string, error)
	Sync(ctx context.Context) error
}

type Controller struct {
	client Client
	paths  []string
}

func NewController(client Client, scanPaths []string) *Controller {
	return &Controller{client: client, paths: append([]string(nil), scanPaths...)}
}

// Paths returns the configured scan targets.
func (c *Controller) Paths() []string {
	return append([]string(nil), c.paths...)
}

// ScanNow asks the service to scan the configured paths. The response
// body is opaque and returned as-is.
func (c *Controller) ScanNow(ctx context.Context) (string, error) {
	return c.client.ScanPaths(ctx, c.paths)
}

// Sync asks the service for a full reconciliation pass.
func (c *Controller) Sync(ctx context.Context) error {
	return c.client.Sync(ctx)
}
