package search

import (
	"context"
	"time"

	"github.com/wcpan/ddltop/internal/api"
)

// Querier is the part of the ddld client the search controller needs.
type Querier interface {
	SearchNodes(ctx context.Context, pattern string) ([]api.Node, error)
}

// Group is the rendered result of one query. Groups are never merged.
type Group struct {
	Seq        int
	Pattern    string
	Items      []api.Node
	ResolvedAt time.Time
}

// Empty reports whether the query returned nothing. Empty groups are
// still rendered so the operator can see the query ran.
func (g Group) Empty() bool {
	return len(g.Items) == 0
}

// Results is the stack of result groups, newest resolution first.
type Results struct {
	groups []Group
}

// Prepend puts g above every group already present.
func (r *Results) Prepend(g Group) {
	r.groups = append([]Group{g}, r.groups...)
}

// Groups returns the groups top to bottom.
func (r Results) Groups() []Group {
	out := make([]Group, len(r.groups))
	copy(out, r.groups)
	return out
}

func (r Results) Len() int {
	return len(r.groups)
}

// Row is one line of the flattened result list: either a group header,
// a node entry, or the empty marker of a group with no items.
type Row struct {
	Group int
	Kind  RowKind
	Node  api.Node
}

type RowKind int

const (
	RowHeader RowKind = iota
	RowNode
	RowEmpty
)

// Rows flattens the groups for display and cursor navigation.
func (r Results) Rows() []Row {
	var rows []Row
	for gi, g := range r.groups {
		rows = append(rows, Row{Group: gi, Kind: RowHeader})
		if g.Empty() {
			rows = append(rows, Row{Group: gi, Kind: RowEmpty})
			continue
		}
		for _, n := range g.Items {
			rows = append(rows, Row{Group: gi, Kind: RowNode, Node: n})
		}
	}
	return rows
}

// Controller issues node queries. Concurrent queries are neither
// serialized nor cancelled; callers prepend in resolution order.
type Controller struct {
	client Querier
	seq    int
}

func NewController(client Querier) *Controller {
	return &Controller{client: client}
}

// Next reserves the sequence number for a new submission.
func (c *Controller) Next() int {
	c.seq++
	return c.seq
}

// Query performs a single search and wraps the result as a Group.
func (c *Controller) Query(ctx context.Context, seq int, pattern string) (Group, error) {
	nodes, err := c.client.SearchNodes(ctx, pattern)
	if err != nil {
		return Group{}, err
	}
	return Group{
		Seq:        seq,
		Pattern:    pattern,
		Items:      nodes,
		ResolvedAt: time.Now(),
	}, nil
}
