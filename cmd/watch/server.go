package watch

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// broker manages SSE client connections and broadcasts graph JSON payloads.
type broker struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
	latest  string
}

func newBroker() *broker {
	return &broker{
		clients: make(map[chan string]struct{}),
	}
}

func (b *broker) subscribe() chan string {
	ch := make(chan string, 1)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	if b.latest != "" {
		ch <- b.latest
	}
	b.mu.Unlock()
	return ch
}

func (b *broker) unsubscribe(ch chan string) {
	b.mu.Lock()
	delete(b.clients, ch)
	close(ch)
	b.mu.Unlock()
}

func (b *broker) publish(payload string) {
	b.mu.Lock()
	b.latest = payload
	for ch := range b.clients {
		select {
		case ch <- payload:
		default:
		}
	}
	b.mu.Unlock()
}

func newServer(b *broker, port int) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/graph", handleGraph(b))
	mux.HandleFunc("/events", handleSSE(b))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
}

// handleGraph serves the latest graph payload for one-shot consumers.
func handleGraph(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		latest := b.latest
		b.mu.Unlock()

		if latest == "" {
			http.Error(w, "graph not built yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, latest)
	}
}

func handleSSE(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch := b.subscribe()
		defer b.unsubscribe(ch)

		for {
			select {
			case <-r.Context().Done():
				return
			case payload, ok := <-ch:
				if !ok {
					return
				}
				// SSE data lines must not contain raw newlines.
				fmt.Fprintf(w, "data: %s\n\n", strings.ReplaceAll(payload, "\n", ""))
				flusher.Flush()
			}
		}
	}
}
