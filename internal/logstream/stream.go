// Package logstream maintains the live log feed from ddld over a
// WebSocket. A Stream dials once, reports its connection state and every
// decoded record as events, and never reconnects.
package logstream

import (
	"context"
	"log"

	"github.com/coder/websocket"

	"github.com/wcpan/ddltop/internal/api"
)

type State int

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further events will follow this state.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateErrored
}

type EventKind int

const (
	EventState EventKind = iota
	EventRecord
)

type Event struct {
	Kind   EventKind
	State  State
	Record api.LogRecord
	Err    error // set with StateErrored
}

const readLimit = 1 << 20

type Stream struct {
	url    string
	events chan Event
}

func New(url string, bufSize int) *Stream {
	if bufSize <= 0 {
		bufSize = 256
	}
	return &Stream{
		url:    url,
		events: make(chan Event, bufSize),
	}
}

func (s *Stream) URL() string {
	return s.url
}

// Events is closed once Run returns. The last event is always a state
// event carrying StateClosed or StateErrored.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Run dials the socket and pumps messages until the connection ends or
// ctx is cancelled. It must be called once.
func (s *Stream) Run(ctx context.Context) {
	defer close(s.events)

	s.sendState(ctx, StateConnecting, nil)

	conn, _, err := websocket.Dial(ctx, s.url, nil)
	if err != nil {
		s.finish(ctx, err)
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(readLimit)

	s.sendState(ctx, StateOpen, nil)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			s.finish(ctx, err)
			return
		}

		rec, err := api.DecodeLogRecord(data)
		if err != nil {
			log.Printf("warning: logstream: skipping message: %v", err)
			continue
		}
		s.send(ctx, Event{Kind: EventRecord, Record: rec})
	}
}

func (s *Stream) finish(ctx context.Context, err error) {
	if isNormalClose(ctx, err) {
		s.sendState(ctx, StateClosed, nil)
		return
	}
	s.sendState(ctx, StateErrored, err)
}

func isNormalClose(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}

func (s *Stream) sendState(ctx context.Context, st State, err error) {
	s.send(ctx, Event{Kind: EventState, State: st, Err: err})
}

// send drops the event once ctx is done unless the buffer has room, so
// the terminal state still reaches a consumer that drains after cancel.
func (s *Stream) send(ctx context.Context, ev Event) {
	select {
	case s.events <- ev:
		return
	default:
	}
	select {
	case <-ctx.Done():
	case s.events <- ev:
	}
}
