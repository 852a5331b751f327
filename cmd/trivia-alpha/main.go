package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/config"
	"github.com/ViewtifulSlayer/trivia-alpha/etree"
	"github.com/ViewtifulSlayer/trivia-alpha/fs"
	"github.com/ViewtifulSlayer/trivia-alpha/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("trivia-alpha"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'trivia-alpha --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Rules = config.Default()
	if cli.Rules != "" {
		deps.Rules, err = config.Load(cli.Rules)
		if err != nil {
			return fmt.Errorf("failed to load rules file: %w", err)
		}
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TRIVIA_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Documents = sqlite.NewDocumentStore(m.DB)
	deps.Checkpoint = sqlite.NewCheckpointService(m.DB)

	return kongCtx.Run(deps)
}

// newPageSource picks a reader for the dump by extension: .xml is
// treated as a MediaWiki export, anything else as a JSON pages file.
func newPageSource(path string) trivia.PageSource {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return etree.NewPageSource(path)
	}
	return fs.NewPageSource(path)
}

func defaultDBPath() string {
	if path := os.Getenv("TRIVIA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "trivia.db"
	}
	dir := filepath.Join(home, ".trivia-alpha")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "trivia.db")
}
