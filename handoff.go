package purfectvt

import "sync"

// Snapshot is an immutable view of one Frame's visible cells plus the
// state a renderer needs to draw it, published by the Vterm's I/O
// goroutine across the Handoff. Renderers must not mutate Cells.
type Snapshot struct {
	SeqNo  uint64
	NCols  int
	NRows  int
	Cells  []Cell // nRows*nCols, logical (already un-ring-rotated) order
	Cursor Cursor
	// DamageStart/DamageEnd is the half-open cell-index range that
	// changed since the previous snapshot; a renderer that kept the
	// previous Cells buffer may redraw only this range. A renderer that
	// doesn't track prior state should simply redraw everything.
	DamageStart, DamageEnd int
	Title                  string
	BellCount               uint64
}

// Handoff is a single-producer coalescing channel: the producer (Vterm's
// read loop) publishes a Snapshot whenever the screen changes; each
// consumer (a renderer goroutine) always observes only the
// most recently published one, never a backlog. Grounded on zutty's
// Renderer::update/renderThread mutex+condvar+seqNo handoff.
type Handoff struct {
	mu   sync.Mutex
	cond *sync.Cond
	next Snapshot
	done bool
}

// NewHandoff returns a ready-to-use Handoff with SeqNo 0, so the first
// Wait call by a freshly started consumer blocks until the first real
// Publish.
func NewHandoff() *Handoff {
	h := &Handoff{}
	h.cond = sync.NewCond(&h.mu)
	return h
}

// Publish makes s the latest snapshot and wakes every blocked consumer. s.SeqNo
// is overwritten with the next monotonic sequence number; callers should
// leave it zero.
func (h *Handoff) Publish(s Snapshot) {
	h.mu.Lock()
	s.SeqNo = h.next.SeqNo + 1
	h.next = s
	h.mu.Unlock()
	h.cond.Broadcast()
}

// Wait blocks until a snapshot newer than lastSeqNo is available or the
// handoff is shut down, then returns it. ok is false only after Shutdown.
// Pass the SeqNo of the previously consumed snapshot (0 on first call).
func (h *Handoff) Wait(lastSeqNo uint64) (snap Snapshot, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for h.next.SeqNo == lastSeqNo && !h.done {
		h.cond.Wait()
	}
	if h.done && h.next.SeqNo == lastSeqNo {
		return Snapshot{}, false
	}
	return h.next, true
}

// Shutdown unblocks any waiting consumer permanently; subsequent Wait
// calls with the last-seen SeqNo return ok=false immediately.
func (h *Handoff) Shutdown() {
	h.mu.Lock()
	h.done = true
	h.mu.Unlock()
	h.cond.Broadcast()
}
