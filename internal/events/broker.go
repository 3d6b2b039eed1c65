// Package events carries record-change notifications from the store to the
// dashboard's SSE stream so the dashboard refreshes without polling.
package events

import (
	"fmt"
	"sync"
)

type Broker struct {
	mu      sync.RWMutex
	clients map[chan string]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		clients: make(map[chan string]struct{}),
	}
}

func (b *Broker) Subscribe() chan string {
	ch := make(chan string, 16)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan string) {
	b.mu.Lock()
	delete(b.clients, ch)
	b.mu.Unlock()
	close(ch)
}

// Publish fans a record-change event out to every subscriber. Slow
// subscribers are skipped rather than blocking the writer.
func (b *Broker) Publish(op, requestID string) {
	msg := fmt.Sprintf(`{"op":%q,"request_id":%q}`, op, requestID)
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}
