// Package cli provides a CLI-based terminal emulator adapter for PurfectVT.
//
// It runs a Vterm core inside an actual host terminal: a PTY-spawned child
// process feeds the Vterm's Parser, and a differential renderer redraws the
// resulting Frame to the host terminal's own screen using ANSI escape
// sequences, within an optional bordered window.
//
// # Features
//
//   - Full VT100/ANSI escape sequence interpretation via Vterm's parser
//   - Scrollback buffer with Shift+PageUp/PageDown navigation
//   - Multiple border styles (single, double, heavy, rounded)
//   - Optional status bar showing cursor position and scroll status
//   - Window resizing that tracks the host terminal (SIGWINCH)
//   - Differential rendering for efficiency (only updates changed cells)
//   - True color (24-bit) and 256-color support
//   - Full attribute support: bold, italic, underline, inverse
//
// # Basic Usage
//
//	import "github.com/vtcore/purfectvt/cli"
//
//	opts := cli.Options{
//	    AutoSize:      true,                   // Fill available space
//	    BorderStyle:   cli.BorderRounded,      // Rounded border
//	    Title:         "My Terminal",
//	    ShowStatusBar: true,
//	}
//
//	term, err := cli.New(opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Start the terminal (enters raw mode)
//	if err := term.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer term.Stop()
//
//	// Run a shell
//	if err := term.RunShell(); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Wait for shell to exit
//	term.Wait()
//
// # Scrollback Navigation
//
// While running, the following keys navigate the scrollback buffer:
//
//   - Shift+PageUp: Scroll up one page
//   - Shift+PageDown: Scroll down one page
//   - Shift+Up: Scroll up one line
//   - Shift+Down: Scroll down one line
//
// Any regular input automatically scrolls to the bottom.
//
// # Architecture
//
// The package consists of three main components:
//
//   - Terminal: manages the PTY, the Vterm core, and coordinates rendering/input
//   - Renderer: renders a Vterm Frame snapshot to the host terminal using ANSI codes
//   - InputHandler: reads raw stdin, recognizes scrollback shortcuts, forwards the rest to the PTY
package cli
