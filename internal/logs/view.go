// Package logs merges the one-shot historical log snapshot with records
// arriving over the live stream.
//
// Order is by arrival, never by the timestamp a record carries: a live
// record is put on top of everything shown, and the historical snapshot,
// whenever it resolves, goes below everything shown. A live record that
// beat the snapshot therefore sits above the whole historical block even
// if it is chronologically older. Nothing is deduplicated.
package logs

import "github.com/wcpan/ddltop/internal/api"

type Segment int

const (
	SegmentLive Segment = iota
	SegmentHistory
)

func (s Segment) String() string {
	if s == SegmentHistory {
		return "history"
	}
	return "live"
}

type Entry struct {
	Record  api.LogRecord
	Segment Segment
}

// View is the newest-first list of rendered records. Entries are stored
// oldest-at-the-front so that live pushes are appends; Entries flips it.
type View struct {
	rev         []Entry
	historyRuns int
}

// PushLive places rec above everything currently in the view.
func (v *View) PushLive(rec api.LogRecord) {
	v.rev = append(v.rev, Entry{Record: rec, Segment: SegmentLive})
}

// AppendHistory takes the snapshot in service order (oldest first),
// reverses it and places the block below everything currently in the
// view, so the service's newest record is the topmost of the block.
func (v *View) AppendHistory(records []api.LogRecord) {
	block := make([]Entry, len(records))
	for i, rec := range records {
		block[i] = Entry{Record: rec, Segment: SegmentHistory}
	}
	v.rev = append(block, v.rev...)
	v.historyRuns++
}

// HistoryLoaded reports whether a snapshot has been appended.
func (v *View) HistoryLoaded() bool {
	return v.historyRuns > 0
}

func (v *View) Len() int {
	return len(v.rev)
}

// Entries returns the view top to bottom.
func (v *View) Entries() []Entry {
	out := make([]Entry, len(v.rev))
	for i, e := range v.rev {
		out[len(v.rev)-1-i] = e
	}
	return out
}

// Messages is Entries reduced to the message text.
func (v *View) Messages() []string {
	entries := v.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Record.Message
	}
	return out
}
