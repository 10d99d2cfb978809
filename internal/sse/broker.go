// Package sse implements a Server-Sent Events broker that tells browsers when
// the navigation tree changed.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// Event types sent to clients.
const (
	TypeFragmentChanged = "fragment.changed"
	TypeFragmentRemoved = "fragment.removed"
	TypeReloaded        = "navtree.reloaded"
)

// Event represents an SSE event to broadcast.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type siteEventReq struct {
	kind  string
	value string
}

// Broker manages SSE client connections and broadcasts events.
//
// A single internal event loop (goroutine) owns the mutable state: clients,
// the last reload broadcast time and a pending reload revision. Public
// methods talk to the loop through channels.
type Broker struct {
	reloadMin time.Duration

	subscribeCh   chan chan []byte
	unsubscribeCh chan chan []byte
	publishCh     chan Event
	siteEventCh   chan siteEventReq
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a new SSE broker. navtree.reloaded events are sent at
// most once per reloadThrottle; a reload inside the window is delivered when
// the window ends, carrying the latest revision.
func NewBroker(reloadThrottle time.Duration) *Broker {
	if reloadThrottle <= 0 {
		reloadThrottle = 2 * time.Second
	}

	b := &Broker{
		reloadMin:     reloadThrottle,
		subscribeCh:   make(chan chan []byte),
		unsubscribeCh: make(chan chan []byte),
		publishCh:     make(chan Event, 256),
		siteEventCh:   make(chan siteEventReq, 256),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]struct{})
	var lastReload time.Time
	var pending string
	var pendingTimer *time.Timer
	var pendingCh <-chan time.Time

	broadcast := func(event Event) {
		payload, err := json.Marshal(event.Data)
		if err != nil {
			return
		}
		raw := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, payload))

		for ch := range clients {
			select {
			case ch <- raw:
			default:
				// Slow client; drop rather than block the loop.
			}
		}
	}

	sendReload := func(revision string) {
		lastReload = time.Now()
		broadcast(Event{Type: TypeReloaded, Data: map[string]string{"revision": revision}})
	}

	for {
		select {
		case <-b.stopCh:
			if pendingTimer != nil {
				pendingTimer.Stop()
			}
			for ch := range clients {
				close(ch)
			}
			return

		case ch := <-b.subscribeCh:
			clients[ch] = struct{}{}

		case ch := <-b.unsubscribeCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case event := <-b.publishCh:
			broadcast(event)

		case req := <-b.siteEventCh:
			switch req.kind {
			case TypeFragmentChanged, TypeFragmentRemoved:
				broadcast(Event{Type: req.kind, Data: map[string]string{"path": req.value}})
			case TypeReloaded:
				wait := b.reloadMin - time.Since(lastReload)
				if wait <= 0 && pendingCh == nil {
					sendReload(req.value)
					continue
				}
				pending = req.value
				if pendingCh == nil {
					pendingTimer = time.NewTimer(wait)
					pendingCh = pendingTimer.C
				}
			}

		case <-pendingCh:
			pendingCh = nil
			pendingTimer = nil
			sendReload(pending)
			pending = ""

		case resp := <-b.countReqCh:
			resp <- len(clients)
		}
	}
}

// Close gracefully stops broker loop and closes all client channels.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe adds a new client and returns its channel.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 64)
	if b.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case b.subscribeCh <- ch:
	case <-b.stopped:
		close(ch)
	}

	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// Publish sends an event to all connected clients.
func (b *Broker) Publish(event Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- event:
	case <-b.stopped:
	}
}

// PublishSiteEvent forwards a watcher event. Fragment kinds carry a path and
// are sent immediately; TypeReloaded carries a revision and is throttled.
// Unknown kinds are ignored. The signature matches index.EventCallback.
func (b *Broker) PublishSiteEvent(kind, value string) {
	if b.closed.Load() {
		return
	}
	select {
	case b.siteEventCh <- siteEventReq{kind: kind, value: value}:
	case <-b.stopped:
	}
}

// ServeHTTP is the SSE endpoint handler (GET /events).
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
