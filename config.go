package purfectvt

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// HostConfig holds the settings a host process (cli, wsrender, vtermd)
// reads to construct a Vterm and its renderers. It is not consulted by
// Vterm itself — the core takes its dimensions and scrollback size as
// plain constructor arguments — this is purely the on-disk shape hosts
// share so a config file edit doesn't require separate flags everywhere.
type HostConfig struct {
	Cols           int    `yaml:"cols"`
	Rows           int    `yaml:"rows"`
	ScrollbackSize int    `yaml:"scrollback_size"`
	Shell          string `yaml:"shell"`
	Theme          string `yaml:"theme"` // "dark" or "light"

	WebListenAddr string `yaml:"web_listen_addr"`
}

// DefaultHostConfig returns the built-in defaults.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		Cols:           80,
		Rows:           24,
		ScrollbackSize: 10000,
		Shell:          os.Getenv("SHELL"),
		Theme:          "dark",
		WebListenAddr:  ":7681",
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vtermd.yaml")
}

// LoadHostConfig reads path (or ~/.vtermd.yaml if path is empty), merging
// onto the built-in defaults. A missing file is not an error — defaults
// are written out so the file exists for the user to edit next time.
func LoadHostConfig(path string) HostConfig {
	cfg := DefaultHostConfig()

	if path == "" {
		path = defaultConfigPath()
	}
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		writeHostConfigDefaults(path, cfg)
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Printf("config: %s: %v, using defaults", path, err)
		return DefaultHostConfig()
	}

	if cfg.Cols <= 0 {
		cfg.Cols = 80
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 24
	}
	if cfg.ScrollbackSize < 0 {
		cfg.ScrollbackSize = 0
	}
	if cfg.Theme != "dark" && cfg.Theme != "light" {
		cfg.Theme = "dark"
	}

	return cfg
}

func writeHostConfigDefaults(path string, cfg HostConfig) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return
	}
	header := []byte("# vtermd host configuration\n# Edits take effect the next time vtermd starts.\n\n")
	_ = os.WriteFile(path, append(header, data...), 0644)
}

// ConfigWatcher reloads a HostConfig from disk whenever the file changes,
// delivering the new value to onChange. Grounded on fsnotify's standard
// single-watcher-goroutine pattern (editors replace-write config files,
// which fsnotify reports as Remove+Create rather than Write, so both
// events re-arm the watch).
type ConfigWatcher struct {
	path      string
	watcher   *fsnotify.Watcher
	onChange  func(HostConfig)
	mu        sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

// WatchConfig starts watching path for changes, invoking onChange with
// each successfully reloaded config. Call Close to stop.
func WatchConfig(path string, onChange func(HostConfig)) (*ConfigWatcher, error) {
	if path == "" {
		path = defaultConfigPath()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		path:     path,
		watcher:  w,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go cw.loop()
	return cw, nil
}

func (cw *ConfigWatcher) loop() {
	for {
		select {
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(cw.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg := LoadHostConfig(cw.path)
			cw.mu.Lock()
			cb := cw.onChange
			cw.mu.Unlock()
			if cb != nil {
				cb(cfg)
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config watch: %v", err)
		case <-cw.done:
			return
		}
	}
}

// Close stops the watcher.
func (cw *ConfigWatcher) Close() error {
	cw.closeOnce.Do(func() { close(cw.done) })
	return cw.watcher.Close()
}
