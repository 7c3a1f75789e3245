// Package batch fans a single operator action out over every selected node.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wcpan/ddltop/internal/selection"
)

type Action string

const (
	ActionAcquire Action = "acquire"
	ActionTrash   Action = "trash"
)

// NeedsConfirm reports whether the action must pass a yes/no gate first.
func (a Action) NeedsConfirm() bool {
	return a == ActionTrash
}

// Client is the subset of the ddld API used by batch actions.
type Client interface {
	AcquireNode(ctx context.Context, id string) error
	DeleteNode(ctx context.Context, id string) error
}

// Result is the outcome of one per-node request. Callers only log it.
type Result struct {
	ID  string
	Err error
}

type Dispatcher struct {
	client Client
	sel    *selection.Set
}

func NewDispatcher(client Client, sel *selection.Set) *Dispatcher {
	return &Dispatcher{client: client, sel: sel}
}

// Begin gathers the current selection and clears it before any request
// is issued. The selection is never restored, whatever the requests do.
func (d *Dispatcher) Begin(action Action) Batch {
	ids := d.sel.IDs()
	d.sel.Clear(ids...)
	return Batch{Action: action, IDs: ids, client: d.client}
}

// Batch is a gathered set of ids waiting to be sent.
type Batch struct {
	Action Action
	IDs    []string
	client Client
}

// Run issues one request per id without waiting on each other and
// returns once all of them settled. Results keep the order of IDs.
//
// The group is used only as a join: a failed request must not cancel its
// siblings, so every goroutine reports nil and keeps its error in
// results. Wait therefore always returns nil.
func (b Batch) Run(ctx context.Context) []Result {
	results := make([]Result, len(b.IDs))
	var g errgroup.Group
	for i, id := range b.IDs {
		g.Go(func() error {
			results[i] = Result{ID: id, Err: b.send(ctx, id)}
			return nil
		})
	}
	g.Wait()
	return results
}

func (b Batch) send(ctx context.Context, id string) error {
	switch b.Action {
	case ActionAcquire:
		return b.client.AcquireNode(ctx, id)
	case ActionTrash:
		return b.client.DeleteNode(ctx, id)
	}
	return fmt.Errorf("batch: unknown action %q", b.Action)
}

// Failed returns the results that carried an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
