package match

import "sync"

// watchBuffer is the per-watcher channel capacity. A watcher that falls
// this far behind loses intermediate snapshots; the store row is ground
// truth and slow consumers re-fetch on ambiguity.
const watchBuffer = 16

// hub fans out per-match change notifications to active watchers. It is
// the push half of the store: every mutator publishes the fresh row here
// after a successful write.
type hub struct {
	mu       sync.Mutex
	watchers map[string]map[int]chan Match
	nextID   int
}

func newHub() *hub {
	return &hub{watchers: make(map[string]map[int]chan Match)}
}

// subscribe registers a watcher for a single match. The cancel func is
// idempotent and closes the channel.
func (h *hub) subscribe(matchID string) (<-chan Match, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Match, watchBuffer)
	id := h.nextID
	h.nextID++

	if h.watchers[matchID] == nil {
		h.watchers[matchID] = make(map[int]chan Match)
	}
	h.watchers[matchID][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.watchers[matchID]; ok {
			if c, ok := set[id]; ok {
				delete(set, id)
				close(c)
			}
			if len(set) == 0 {
				delete(h.watchers, matchID)
			}
		}
	}
	return ch, cancel
}

// notify delivers a snapshot to every watcher of the match. Sends never
// block; a full buffer drops the snapshot.
func (h *hub) notify(m Match) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.watchers[m.ID] {
		select {
		case ch <- m:
		default:
		}
	}
}
