// Command vtermd runs the PurfectVT terminal core against a real shell.
//
// In its default (standalone) mode it behaves like the cli package's own
// demo program: a bordered terminal window inside your actual terminal,
// running $SHELL (or the command given after "--"). With --web it
// instead (or additionally) serves sessions over HTTP/WebSocket for
// browser clients, via the wsrender package.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vtcore/purfectvt"
	"github.com/vtcore/purfectvt/cli"
	"github.com/vtcore/purfectvt/wsrender"
)

func main() {
	var (
		configPath  string
		webAddr     string
		webOnly     bool
		borderFlag  string
		title       string
		noStatusBar bool
	)

	root := &cobra.Command{
		Use:   "vtermd [-- command [args...]]",
		Short: "Run a terminal emulator core over a local shell and/or a WebSocket listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := purfectvt.LoadHostConfig(configPath)
			if webAddr != "" {
				cfg.WebListenAddr = webAddr
			}

			shell, shellArgs := splitCommand(args, cfg.Shell)

			if webAddr != "" || webOnly {
				if err := runWeb(cfg, shell); err != nil {
					return err
				}
				if webOnly {
					select {}
				}
			}

			return runStandalone(cfg, shell, shellArgs, borderStyleFromName(borderFlag), title, !noStatusBar)
		},
	}

	flags := root.Flags()
	flags.StringVar(&configPath, "config", "", "path to host config YAML (default ~/.vtermd.yaml)")
	flags.StringVar(&webAddr, "web", "", "also serve sessions over HTTP/WebSocket at this address (e.g. :7681)")
	flags.BoolVar(&webOnly, "web-only", false, "serve only over --web, with no local terminal window")
	flags.StringVar(&borderFlag, "border", "rounded", "border style: none, single, double, heavy, rounded")
	flags.StringVar(&title, "title", "vtermd", "window title shown in the border")
	flags.BoolVar(&noStatusBar, "no-status-bar", false, "hide the status bar")
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(name)
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// splitCommand separates a shell and its arguments out of the trailing
// "-- cmd args..." portion of argv, falling back to cfg's configured
// shell when none is given.
func splitCommand(args []string, configuredShell string) (string, []string) {
	if len(args) == 0 {
		shell := configuredShell
		if shell == "" {
			shell = "/bin/sh"
		}
		return shell, nil
	}
	return args[0], args[1:]
}

func borderStyleFromName(name string) cli.BorderStyle {
	switch name {
	case "single":
		return cli.BorderSingle
	case "double":
		return cli.BorderDouble
	case "heavy":
		return cli.BorderHeavy
	case "rounded":
		return cli.BorderRounded
	default:
		return cli.BorderNone
	}
}

func runStandalone(cfg purfectvt.HostConfig, shell string, shellArgs []string, border cli.BorderStyle, title string, statusBar bool) error {
	opts := cli.Options{
		AutoSize:       true,
		BorderStyle:    border,
		Title:          title,
		ShowStatusBar:  statusBar,
		ScrollbackSize: cfg.ScrollbackSize,
		Shell:          shell,
	}

	term, err := cli.New(opts)
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		term.Stop()
		os.Exit(0)
	}()

	exitCode := 0
	term.SetOnExit(func(code int) { exitCode = code })

	if err := term.Start(); err != nil {
		return fmt.Errorf("starting terminal: %w", err)
	}

	if err := term.RunCommand(shell, shellArgs...); err != nil {
		term.Stop()
		return fmt.Errorf("running command: %w", err)
	}

	term.Wait()
	term.Stop()
	os.Exit(exitCode)
	return nil
}

func runWeb(cfg purfectvt.HostConfig, shell string) error {
	mgr := wsrender.NewManager()
	srv := wsrender.NewServer(mgr, shell, cfg.Cols, cfg.Rows, cfg.ScrollbackSize)

	go func() {
		if err := http.ListenAndServe(cfg.WebListenAddr, srv.Router()); err != nil {
			fmt.Fprintf(os.Stderr, "wsrender: %v\n", err)
		}
	}()
	fmt.Fprintf(os.Stderr, "vtermd: serving sessions on %s\n", cfg.WebListenAddr)
	return nil
}
