package ui

import (
	"github.com/wcpan/ddltop/internal/api"
	"github.com/wcpan/ddltop/internal/batch"
	"github.com/wcpan/ddltop/internal/logstream"
	"github.com/wcpan/ddltop/internal/search"
	"github.com/wcpan/ddltop/internal/ui/panels"
)

// Type aliases to panels message types, single source of truth.
type (
	CloseModalMsg    = panels.CloseModalMsg
	ClearFlashMsg    = panels.ClearFlashMsg
	SearchSubmitMsg  = panels.SearchSubmitMsg
	ConfirmResultMsg = panels.ConfirmResultMsg
	YankMsg          = panels.YankMsg
)

// SearchResultMsg carries one resolved node query.
type SearchResultMsg struct {
	Pattern string
	Group   search.Group
	Err     error
}

// BatchDoneMsg is sent once every request of a batch has settled.
type BatchDoneMsg struct {
	Action  batch.Action
	Results []batch.Result
}

type ScanDoneMsg struct {
	Body string
	Err  error
}

type SyncDoneMsg struct {
	Err error
}

// HistoryLoadedMsg carries the one-shot log snapshot, oldest first.
type HistoryLoadedMsg struct {
	Records []api.LogRecord
	Err     error
}

// StreamEventMsg relays one event from the live log connection.
type StreamEventMsg struct {
	Event logstream.Event
}

// StreamEndedMsg is sent after the stream's event channel closes.
type StreamEndedMsg struct{}
