package wsrender

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/vtcore/purfectvt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server exposes a Manager's sessions over HTTP/WebSocket.
type Server struct {
	mgr        *Manager
	shell      string
	cols, rows int
	scrollback int
}

// NewServer builds a router-ready Server. shell/cols/rows/scrollback are
// the defaults used for sessions created via POST /sessions.
func NewServer(mgr *Manager, shell string, cols, rows, scrollback int) *Server {
	return &Server{mgr: mgr, shell: shell, cols: cols, rows: rows, scrollback: scrollback}
}

// Router builds the gorilla/mux routes: create a session, and attach a
// WebSocket to an existing one.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/sessions", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/ws", s.handleWebSocket)
	return r
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.mgr.Create(s.shell, s.cols, s.rows, s.scrollback)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"id": sess.ID})
}

// wireMessage is the JSON envelope exchanged with the browser: outbound
// frame snapshots, inbound key/rune/resize/paste events.
type wireMessage struct {
	Type string `json:"type"`

	// Outbound (frame)
	Cols   int              `json:"cols,omitempty"`
	Rows   int              `json:"rows,omitempty"`
	Cells  []wireCell       `json:"cells,omitempty"`
	Cursor *wireCursor      `json:"cursor,omitempty"`

	// Inbound
	Key   string `json:"key,omitempty"`
	Mod   int    `json:"mod,omitempty"`
	Rune  string `json:"rune,omitempty"`
	Text  string `json:"text,omitempty"`
}

type wireCell struct {
	Ch   string `json:"ch"`
	Fg   string `json:"fg"`
	Bg   string `json:"bg"`
	Bold bool   `json:"bold,omitempty"`
	Ital bool   `json:"italic,omitempty"`
	Und  bool   `json:"underline,omitempty"`
	Inv  bool   `json:"inverse,omitempty"`
}

type wireCursor struct {
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Visible bool `json:"visible"`
}

func toWireCell(c purfectvt.Cell) wireCell {
	ch := " "
	if c.CodePoint != 0 && !c.DWidthCont {
		ch = string(rune(c.CodePoint))
	}
	return wireCell{
		Ch: ch, Fg: c.Fg.ToHex(), Bg: c.Bg.ToHex(),
		Bold: c.Bold, Ital: c.Italic, Und: c.Underline, Inv: c.Inverse,
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess := s.mgr.Get(id)
	if sess == nil {
		http.Error(w, "no such session", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("wsrender: upgrade: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	send := make(chan wireMessage, sendBufferSize)
	done := make(chan struct{})

	go s.writer(conn, send, done)
	s.readInput(conn, sess, send, done)
}

// writer drains send and forwards a ping on idle, matching the
// keepalive shape of the teacher's raw websocket writer goroutine.
func (s *Server) writer(conn *websocket.Conn, send <-chan wireMessage, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readInput runs the Handoff consumer for this connection and the
// inbound-message reader concurrently until the socket closes.
func (s *Server) readInput(conn *websocket.Conn, sess *Session, send chan wireMessage, done chan struct{}) {
	go func() {
		defer close(done)
		var lastSeq uint64
		for {
			snap, ok := sess.h.Wait(lastSeq)
			if !ok {
				return
			}
			lastSeq = snap.SeqNo

			cells := make([]wireCell, len(snap.Cells))
			for i, c := range snap.Cells {
				cells[i] = toWireCell(c)
			}
			msg := wireMessage{
				Type: "frame", Cols: snap.NCols, Rows: snap.NRows, Cells: cells,
				Cursor: &wireCursor{X: snap.Cursor.X, Y: snap.Cursor.Y, Visible: snap.Cursor.Visible},
			}
			select {
			case send <- msg:
			case <-done:
				return
			}
		}
	}()

	for {
		var msg wireMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		s.dispatch(sess, msg)
	}
}

func (s *Server) dispatch(sess *Session, msg wireMessage) {
	switch msg.Type {
	case "resize":
		if msg.Cols > 0 && msg.Rows > 0 {
			sess.Resize(msg.Cols, msg.Rows)
		}
	case "rune":
		for _, r := range msg.Rune {
			sess.vt.WritePtyRune(r, purfectvt.VtModifier(msg.Mod), true)
		}
	case "key":
		if k, ok := keyByName[msg.Key]; ok {
			sess.vt.WritePtyKey(k, purfectvt.VtModifier(msg.Mod), true)
		}
	case "paste":
		sess.vt.PasteSelection(msg.Text)
	}
}
