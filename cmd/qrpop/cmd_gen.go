package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sadopc/qrpop/internal/config"
	"github.com/sadopc/qrpop/internal/controller"
	"github.com/sadopc/qrpop/internal/core/history"
	"github.com/sadopc/qrpop/internal/core/kv"
	"github.com/sadopc/qrpop/internal/core/qr"
	"github.com/sadopc/qrpop/internal/export"
	"github.com/sadopc/qrpop/internal/logging"
)

type genOptions struct {
	Text  string
	Level qr.Level
	Print bool
}

func genCmd() {
	os.Exit(genMain(os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
}

// genMain runs the gen command and returns the process exit code.
func genMain(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	levelFlag := fs.String("level", "", "Error correction level: L, M, Q, H (default from config)")
	outFlag := fs.String("out", "", "Output PNG path, or - for stdout (default: download dir)")
	noHistoryFlag := fs.Bool("no-history", false, "Do not record the text in history")
	printFlag := fs.Bool("print", false, "Also print the symbol to the terminal")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: qrpop gen <text> [flags]\n\n")
		fmt.Fprintf(stderr, "Generate a QR code PNG from text. Use - as text to read stdin.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  qrpop gen https://example.com\n")
		fmt.Fprintf(stderr, "  qrpop gen \"WIFI:S:home;T:WPA;P:secret;;\" --level H --out wifi.png\n")
		fmt.Fprintf(stderr, "  echo hello | qrpop gen - --out - > hello.png\n")
	}

	args, err := parseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if len(args) == 0 {
		fmt.Fprintf(stderr, "Error: text is required\n\n")
		fs.Usage()
		return 2
	}

	text := strings.Join(args, " ")
	if text == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
			return 1
		}
		text = string(b)
	}

	cfg := config.Load()
	if *levelFlag != "" {
		cfg.Level = *levelFlag
	}
	level, err := qr.ParseLevel(cfg.Level)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger := logging.New(stderr, cfg.LogLevel)

	var hist controller.HistoryRepository
	if *noHistoryFlag {
		hist = history.NewStore(kv.NewMemory())
	} else {
		store, closeHist, err := openHistory(cfg, logger)
		if err != nil {
			fmt.Fprintf(stderr, "Warning: %v; history will not be kept\n", err)
		}
		defer closeHist()
		hist = store
	}

	var dl controller.Downloader
	out := stdout
	switch *outFlag {
	case "":
		dl = export.NewDirDownloader(downloadDir(cfg))
	case "-":
		dl = writerDownloader{w: stdout}
		// The PNG owns stdout.
		out = stderr
	default:
		dl = fileDownloader{path: *outFlag}
	}

	path, err := runGen(context.Background(), cfg, hist, dl, genOptions{
		Text:  text,
		Level: level,
		Print: *printFlag,
	}, out, stderr, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, controller.ErrEmptyInput) {
			return 2
		}
		return 1
	}
	if path != "-" {
		fmt.Fprintf(stderr, "Saved %s\n", path)
	}
	return 0
}

// runGen submits text through the popup controller and exports the result,
// returning where the PNG went.
func runGen(ctx context.Context, cfg config.Config, hist controller.HistoryRepository, dl controller.Downloader,
	opts genOptions, stdout, stderr io.Writer, logger *slog.Logger) (string, error) {
	view := &cliView{}
	ctrl, err := controller.New(controller.Deps{
		Renderer:   qr.NewRenderer(),
		History:    hist,
		Downloader: dl,
		View:       view,
		Logger:     logger,
	},
		controller.WithLevel(opts.Level),
		controller.WithAppearance(cfg.Size, cfg.Foreground, cfg.Background),
	)
	if err != nil {
		return "", err
	}

	if err := ctrl.Submit(ctx, opts.Text); err != nil {
		return "", err
	}
	for _, w := range view.warnings {
		fmt.Fprintf(stderr, "Warning: %s\n", w)
	}
	if opts.Print {
		fmt.Fprint(stdout, ctrl.Current().Terminal())
	}
	return ctrl.Export(ctx)
}

// cliView is a controller.View that only keeps error notices.
type cliView struct {
	warnings []string
}

func (v *cliView) SetInput(string)          {}
func (v *cliView) ShowRender(*qr.Code)      {}
func (v *cliView) ShowHistory(history.List) {}
func (v *cliView) SetExportEnabled(bool)    {}
func (v *cliView) ShowNotice(text string, isError bool) {
	if isError {
		v.warnings = append(v.warnings, text)
	}
}

type fileDownloader struct {
	path string
}

func (d fileDownloader) Save(_ string, data []byte) (string, error) {
	if err := os.WriteFile(d.path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", d.path, err)
	}
	return d.path, nil
}

// writerDownloader streams the PNG to w; the returned location is "-".
type writerDownloader struct {
	w io.Writer
}

func (d writerDownloader) Save(_ string, data []byte) (string, error) {
	if _, err := d.w.Write(data); err != nil {
		return "", fmt.Errorf("writing PNG: %w", err)
	}
	return "-", nil
}

// parseArgs parses flags that may appear before, between or after
// positional arguments and returns the positionals in order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
