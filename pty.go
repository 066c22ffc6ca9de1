package purfectvt

import (
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// PTY is the host-side handle to a pseudo-terminal running a child
// process. A Vterm never touches a PTY directly; whatever wires them
// together (cli, wsrender, a test harness) reads PTY.Read into
// Vterm.Feed and writes Vterm's WritePty callback output into PTY.Write.
type PTY interface {
	Start(cmd *exec.Cmd) error
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Resize(cols, rows int) error
	Close() error
}

// hostPTY implements PTY on top of creack/pty, which already carries its
// own per-platform build tags (unix ioctls, Windows ConPTY) — one Go
// file replaces the cgo unix/ConPTY Windows pair the teacher carried.
type hostPTY struct {
	f *os.File
}

// NewPTY allocates a PTY handle; call Start to launch the child command.
func NewPTY() (PTY, error) {
	return &hostPTY{}, nil
}

func (p *hostPTY) Start(cmd *exec.Cmd) error {
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
	if err != nil {
		return err
	}
	p.f = f
	return nil
}

func (p *hostPTY) Read(b []byte) (int, error)  { return p.f.Read(b) }
func (p *hostPTY) Write(b []byte) (int, error) { return p.f.Write(b) }

func (p *hostPTY) Resize(cols, rows int) error {
	return pty.Setsize(p.f, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

func (p *hostPTY) Close() error { return p.f.Close() }
