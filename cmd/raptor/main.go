package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasiraptor/bridge"
	"github.com/wippyai/wasiraptor/config"
	"github.com/wippyai/wasiraptor/engine"
	"github.com/wippyai/wasiraptor/host"
	"github.com/wippyai/wasiraptor/intrinsics"
)

const usage = `Usage:
  raptor [flags] log --level <level> --message <text>
  raptor [flags] run --wasm <file.wasm> [--entry name]
  raptor [flags] -i

Flags:
`

type options struct {
	configPath  string
	logLevel    string
	logFormat   string
	recordPath  string
	interactive bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	fs := pflag.NewFlagSet("raptor", pflag.ContinueOnError)
	fs.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVar(&opts.logLevel, "log-level", "", "Override log.level")
	fs.StringVar(&opts.logFormat, "log-format", "", "Override log.format (console|json)")
	fs.StringVar(&opts.recordPath, "record", "", "Write delivered records to this CBOR file")
	fs.BoolVarP(&opts.interactive, "interactive", "i", false, "Interactive console")
	fs.SetInterspersed(false)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	if opts.recordPath != "" {
		cfg.Record.Path = opts.recordPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	engine.SetLogger(log.Named("engine"))
	bridge.SetLogger(log.Named("bridge"))

	if opts.interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive(cfg, log)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}

	rec := host.NewRecorder(cfg.Record.Limit)
	ctx := context.Background()
	eng, err := engine.New(ctx, &engine.Config{
		Output:           log.Named("guest"),
		Recorder:         rec,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		MemoryLimitPages: cfg.Guest.MemoryLimitPages,
		GuestPages:       cfg.Guest.Pages,
	})
	if err != nil {
		return err
	}
	defer eng.Close(ctx)

	switch rest[0] {
	case "log":
		err = runLog(ctx, eng, rec, cfg, rest[1:])
	case "run":
		err = runWasm(ctx, eng, rest[1:])
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", rest[0])
	}
	if err != nil {
		return err
	}

	return writeRecord(cfg.Record.Path, rec, log)
}

func runLog(ctx context.Context, eng *engine.Engine, rec *host.Recorder, cfg config.Config, args []string) error {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	level := fs.StringP("level", "l", "info", "Severity level string")
	message := fs.StringP("message", "m", "", "Message text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	guest, err := eng.NewGuest(ctx, "raptor")
	if err != nil {
		return err
	}
	defer guest.Close(ctx)

	b, err := guest.Bridge(bridge.WithBaseOffset(cfg.Guest.BaseOffset))
	if err != nil {
		return err
	}

	env := intrinsics.NewGlobals()
	if err := env.SetGlobal(intrinsics.MathObject, intrinsics.NewObject()); err != nil {
		return err
	}
	reg, err := intrinsics.Register(env, b)
	if err != nil {
		return err
	}

	if err := callLogger(reg, *level, *message); err != nil {
		return err
	}

	for _, e := range rec.Entries() {
		printEntry(e)
	}
	return nil
}

// callLogger invokes the installed guest function and turns its panic back
// into an error at the process boundary.
func callLogger(reg *intrinsics.Registration, level, message string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	reg.Logger()(level, message)
	return nil
}

func runWasm(ctx context.Context, eng *engine.Engine, args []string) error {
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	wasmFile := fs.StringP("wasm", "w", "", "Guest module")
	entry := fs.StringP("entry", "e", "_start", "Export to call")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *wasmFile == "" {
		return fmt.Errorf("--wasm is required")
	}

	data, err := os.ReadFile(*wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	return eng.Run(ctx, "guest", data, *entry)
}

func printEntry(e host.Entry) {
	fmt.Printf("level   %-20s %#016x  %s\n", e.LevelRef, e.LevelRef.Pack(), e.Level)
	fmt.Printf("message %-20s %#016x  %s\n", e.MessageRef, e.MessageRef.Pack(), e.Message)
}

func writeRecord(path string, rec *host.Recorder, log *zap.Logger) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	defer f.Close()

	if err := rec.WriteCBOR(f); err != nil {
		return err
	}
	log.Info("journal written", zap.String("path", path), zap.Int("entries", rec.Len()))
	return nil
}
