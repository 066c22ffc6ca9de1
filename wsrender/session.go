// Package wsrender streams a Vterm's rendered frames to browser clients
// over WebSocket and relays their keyboard/resize/paste input back into
// the PTY, the same producer/consumer split as cli's local renderer but
// with the network as the transport. Grounded on
// amantus-ai-vibetunnel's pkg/api websocket handler (ping/pong keepalive,
// a buffered send channel drained by a dedicated writer goroutine) and
// patrick-goecommerce-Multiterminal-UI's session-registry pattern.
package wsrender

import (
	"log"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vtcore/purfectvt"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBufferSize = 256
)

// Session pairs one Vterm core with its PTY-spawned child process and
// publishes every refresh as a Snapshot over a Handoff, so any number of
// browser tabs can each run their own consumer goroutine against the same
// live terminal.
type Session struct {
	ID string

	vt  *purfectvt.Vterm
	pty purfectvt.PTY
	h   *purfectvt.Handoff

	// viewBuf mirrors the frame's current nCols*nRows visible area, in the
	// same viewOffset-relative layout FullCopyCells/DeltaCopyCells produce.
	// The first publish after creation or a resize reseeds it wholesale
	// with FullCopyCells; every publish after that updates it in place with
	// DeltaCopyCells, so only cells the frame actually damaged get re-copied.
	// Each published snapshot still carries the whole visible area.
	mu       sync.Mutex
	viewBuf  []purfectvt.Cell
	viewCols int
	viewRows int

	closeOnce sync.Once
	done      chan struct{}
}

// Manager tracks the set of live Sessions, keyed by ID, so HTTP handlers
// can attach new WebSocket clients to an existing terminal or create one.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager returns an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create spawns shell under a fresh PTY wired to a new Vterm, registers
// it under a new UUID, and returns the Session.
func (m *Manager) Create(shell string, cols, rows, scrollback int) (*Session, error) {
	vt := purfectvt.NewVterm(cols, rows, scrollback)

	p, err := purfectvt.NewPTY()
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:   uuid.NewString(),
		vt:   vt,
		pty:  p,
		h:    purfectvt.NewHandoff(),
		done: make(chan struct{}),
	}

	vt.SetWritePty(func(b []byte) { s.pty.Write(b) })
	vt.SetRefreshHandler(s.publish)

	cmd := exec.Command(shell)
	if err := p.Start(cmd); err != nil {
		return nil, err
	}
	if err := p.Resize(cols, rows); err != nil {
		log.Printf("wsrender: initial resize of session %s: %v", s.ID, err)
	}

	go s.readLoop()

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, nil
}

// Get returns the session for id, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// Close tears down a session and removes it from the registry.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	s := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if s != nil {
		s.Close()
	}
}

func (s *Session) readLoop() {
	buf := make([]byte, 32*1024)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			s.vt.Feed(buf[:n])
		}
		if err != nil {
			s.Close()
			return
		}
	}
}

// publish is the Vterm refresh callback: it copies the current frame into
// a persistent buffer and hands a Snapshot to the Handoff for any
// connected WebSocket writers to pick up.
func (s *Session) publish(f *purfectvt.Frame) {
	s.mu.Lock()
	cols, rows := f.NCols(), f.NRows()
	if cols != s.viewCols || rows != s.viewRows {
		s.viewBuf = make([]purfectvt.Cell, cols*rows)
		s.viewCols, s.viewRows = cols, rows
		f.FullCopyCells(s.viewBuf)
	} else {
		f.DeltaCopyCells(s.viewBuf)
	}
	f.ResetDamage()
	cells := make([]purfectvt.Cell, len(s.viewBuf))
	copy(cells, s.viewBuf)
	s.mu.Unlock()

	s.h.Publish(purfectvt.Snapshot{
		NCols:  cols,
		NRows:  rows,
		Cells:  cells,
		Cursor: f.Cursor(),
	})
}

// Resize propagates a new size to both the PTY and the Vterm core.
func (s *Session) Resize(cols, rows int) {
	s.vt.Resize(cols, rows)
	if err := s.pty.Resize(cols, rows); err != nil {
		log.Printf("wsrender: resize session %s: %v", s.ID, err)
	}
}

// Close shuts down the PTY and unblocks any waiting Handoff consumers.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.h.Shutdown()
		s.pty.Close()
		close(s.done)
	})
}
