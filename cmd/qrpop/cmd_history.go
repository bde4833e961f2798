package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/pretty"

	"github.com/sadopc/qrpop/internal/config"
	"github.com/sadopc/qrpop/internal/controller"
	"github.com/sadopc/qrpop/internal/core/history"
	"github.com/sadopc/qrpop/internal/logging"
)

type historyOptions struct {
	JSON  bool
	Clear bool
}

func historyCmd() {
	os.Exit(historyMain(os.Args[2:]))
}

// historyMain returns the exit code for the history command.
func historyMain(argv []string) int {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	jsonFlag := fs.Bool("json", false, "Print history as JSON")
	clearFlag := fs.Bool("clear", false, "Remove all saved entries")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qrpop history [flags]\n\n")
		fmt.Fprintf(os.Stderr, "List the %d most recent inputs, newest first.\n\n", history.Limit)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv); err != nil {
		return 2
	}

	cfg := config.Load()
	logger := logging.New(os.Stderr, cfg.LogLevel)
	store, closeHist, err := openHistory(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeHist()

	opts := historyOptions{JSON: *jsonFlag, Clear: *clearFlag}
	if err := runHistory(context.Background(), store, opts, os.Stdout, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runHistory(ctx context.Context, hist controller.HistoryRepository, opts historyOptions, w io.Writer, now time.Time) error {
	if opts.Clear {
		if err := hist.Clear(ctx); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(w, "History cleared")
		return nil
	}

	list, err := hist.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if opts.JSON {
		if list == nil {
			list = history.List{}
		}
		b, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("encoding history: %w", err)
		}
		_, err = w.Write(pretty.Pretty(b))
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(w, "No history yet")
		return nil
	}
	for i, e := range list {
		fmt.Fprintf(w, "%d. %s  (%s)\n", i+1, e.Text, humanize.RelTime(e.Timestamp, now, "ago", "from now"))
	}
	return nil
}
