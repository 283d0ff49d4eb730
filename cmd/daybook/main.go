// ABOUTME: Entry point for the daybook journaling core
// ABOUTME: Hosts the request gateway over a stdio bridge for the desktop shell

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/daybook/internal/config"
	"github.com/2389/daybook/internal/gateway"
	"github.com/2389/daybook/internal/media"
	"github.com/2389/daybook/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

// getConfigPath returns the path to the daybook config file.
// Priority: DAYBOOK_CONFIG env var > XDG_CONFIG_HOME/daybook/daybook.yaml > ~/.config/daybook/daybook.yaml
func getConfigPath() string {
	if envPath := os.Getenv("DAYBOOK_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "daybook.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "daybook", "daybook.yaml")
}

// getDataPath returns the per-user application data directory.
// Priority: XDG_DATA_HOME > ~/.local/share
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return dataDir
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: daybook <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve      Serve journal requests over stdio (launched by the desktop shell)")
		fmt.Println("  init       Write a default config file")
		fmt.Println("  journals   List stored journal entries")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "journals":
		err = runJournals(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when no
// file exists yet.
func loadConfig() (*config.Config, error) {
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config.Default(getDataPath()), nil
	}
	return config.Load(configPath)
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// stdout carries the response stream, so logs go to stderr.
	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	s := store.NewSQLiteStore(cfg.Database.Path)
	if err := s.Initialize(ctx); err != nil {
		// Non-fatal: the bridge keeps serving and store-backed
		// requests report the degraded state.
		logger.Error("store initialization failed, serving degraded", "error", err)
	}
	defer s.Close()

	var picker media.Picker = media.NoPicker
	if cfg.Media.PickerCommand != "" {
		picker = &media.CommandPicker{Command: cfg.Media.PickerCommand}
	}

	logger.Info("starting daybook",
		"version", version,
		"database", cfg.Database.Path,
	)

	bridge := gateway.NewBridge(gateway.New(s, picker))
	return bridge.Serve(ctx, os.Stdin, os.Stdout)
}

func runInit() error {
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists at %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	dbPath := filepath.Join(getDataPath(), "daybook", "journals.db")
	content := fmt.Sprintf(`database:
  path: %q

media:
  # External chooser program for select-image/select-video.
  # picker_command: /usr/local/bin/daybook-picker

logging:
  level: info
  format: text
`, dbPath)

	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Print("✓ ")
	fmt.Printf("Wrote %s\n", configPath)
	return nil
}

func runJournals(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(setupLogger(config.LoggingConfig{Level: "warn"}))

	s := store.NewSQLiteStore(cfg.Database.Path)
	if err := s.Initialize(ctx); err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	journals, err := s.ListJournals(ctx)
	if err != nil {
		return fmt.Errorf("listing journals: %w", err)
	}

	if len(journals) == 0 {
		fmt.Println("no journal entries")
		return nil
	}

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	for _, j := range journals {
		cyan.Printf("%-36s ", j.ID)
		fmt.Printf("%-30s ", j.Title)
		gray.Printf("updated %s\n", j.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = &colorHandler{
			level: level,
		}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu     sync.Mutex
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder

	// Format timestamp
	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	// Colorize level
	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	// Print message
	buf.WriteString(r.Message)

	// Print handler-level attrs first (from WithAttrs)
	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}

	// Print record attrs
	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteString("\n")
	fmt.Fprint(os.Stderr, buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups), len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups = append(newGroups, name)
	return &colorHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}
