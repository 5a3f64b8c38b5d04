package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/erazemk/inventar/internal/config"
	"github.com/erazemk/inventar/internal/db"
	"github.com/erazemk/inventar/internal/form"
	"github.com/erazemk/inventar/internal/slot"
	"github.com/erazemk/inventar/internal/store"
)

// levelRouter is a slog.Handler that routes ERROR+ to the error writer and
// everything below it to the info writer.
type levelRouter struct {
	info slog.Handler
	errs slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.errs.Handle(ctx, r)
	}
	return lr.info.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		info: lr.info.WithAttrs(attrs),
		errs: lr.errs.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		info: lr.info.WithGroup(name),
		errs: lr.errs.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO and WARN go to stderr only
// when verbose is set. ERROR records are only written to the log file, since
// run reports every failure on stderr itself. If logPath is non-empty, all
// levels are written to that file. Returns a cleanup function that closes the
// log file (if opened).
func setupLogger(logPath string, verbose bool, stderr io.Writer) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	infoW := io.Discard
	if verbose {
		infoW = stderr
	}
	errorW := io.Discard

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		if verbose {
			infoW = io.MultiWriter(stderr, f)
		} else {
			infoW = f
		}
		errorW = f
	}

	handler := &levelRouter{
		info: slog.NewTextHandler(infoW, opts),
		errs: slog.NewTextHandler(errorW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

func main() {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

const usage = `Usage: inventar [flags] <command> [args]

Commands:
  create [item flags]            add an item
  show <id>                      print one item
  list [-q term] [-field f]      list items, newest first
  update <id> [item flags]       change the given fields of an item
  stats                          count items and list those missing fields
  qr <id> [-o file] [-size px]   render the item's QR label as PNG
  photo <id> [-o file]           extract the item's photo

Item flags:
  -name, -purchaser, -date <YYYY-MM-DD>, -amount, -location,
  -provisional, -qr, -remarks, -final, -photo <jpeg or png file>

Flags:
  -b, -backend <sqlite|file>   storage backend (default: sqlite)
  -d, -db <path>               database or JSON file path
                               (default: inventar.sqlite3 or inventar.json)
  -s, -slot <key>              storage slot key (default: inventory_items)
  -f, -format <table|json>     output format (default: table)
  -l, -log <path>              log file path (default: no file)
  -v, -verbose                 log activity to stderr
  -h, -help                    show this help and exit
`

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("inventar", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "")

	fs.StringVar(&cfg.DB, "db", cfg.DB, "")
	fs.StringVar(&cfg.DB, "d", cfg.DB, "")

	fs.StringVar(&cfg.Slot, "slot", cfg.Slot, "")
	fs.StringVar(&cfg.Slot, "s", cfg.Slot, "")

	fs.StringVar(&cfg.Format, "format", cfg.Format, "")
	fs.StringVar(&cfg.Format, "f", cfg.Format, "")

	fs.StringVar(&cfg.Log, "log", cfg.Log, "")
	fs.StringVar(&cfg.Log, "l", cfg.Log, "")

	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "")

	fs.Usage = func() { fmt.Fprint(stdout, usage) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	// The default path follows the backend unless one was chosen explicitly.
	if os.Getenv("INVENTAR_DB") == "" && !flagSet(fs, "db", "d") {
		cfg.DB = config.DefaultDB(cfg.Backend)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "error: missing command")
		fs.Usage()
		return 2
	}
	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "error: unknown command: %s\n", name)
		fs.Usage()
		return 2
	}

	closeLog, err := setupLogger(cfg.Log, cfg.Verbose, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if closeLog != nil {
		defer closeLog()
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.Backend, "path", cfg.DB, "error", err)
		fmt.Fprintf(stderr, "error: opening storage: %v\n", err)
		return 1
	}
	defer closeStore()

	a := &app{
		store:  st,
		form:   form.NewValidator(),
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
	}

	err = cmd(ctx, a, fs.Args()[1:])
	var ue *usageError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	default:
		slog.Error("command failed", "command", name, "error", err)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

// openStore builds the store on the configured backend. The returned
// cleanup function releases the backend.
func openStore(cfg *config.Config) (*store.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendFile:
		slog.Info("using file storage", "path", cfg.DB)
		return store.New(slot.NewFile(cfg.DB)), func() {}, nil
	default:
		database, err := db.Open(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		// Ensure schema exists (idempotent).
		if err := db.EnsureSchema(database); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("ensuring schema: %w", err)
		}
		slog.Info("database ready", "path", cfg.DB, "slot", cfg.Slot)
		return store.New(slot.NewSQL(database, cfg.Slot)), func() { database.Close() }, nil
	}
}

// flagSet reports whether any of the named flags was given on the command line.
func flagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, n := range names {
			if f.Name == n {
				found = true
			}
		}
	})
	return found
}
