package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sadopc/qrpop/internal/config"
	"github.com/sadopc/qrpop/internal/core/qr"
	"github.com/sadopc/qrpop/internal/logging"
	"github.com/sadopc/qrpop/internal/server"
)

func serveCmd() {
	os.Exit(serveMain(os.Args[2:]))
}

// serveMain runs the server until interrupted and returns the exit code.
func serveMain(argv []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	portFlag := fs.Int("port", 8080, "Port to listen on")
	levelFlag := fs.String("level", "", "Default error correction level: L, M, Q, H")
	corsOriginFlag := fs.String("cors-origin", "*", "Access-Control-Allow-Origin header value")
	noHistoryFlag := fs.Bool("no-history", false, "Do not record or serve history")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qrpop serve [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Serve QR codes over HTTP.\n\n")
		fmt.Fprintf(os.Stderr, "Routes:\n")
		fmt.Fprintf(os.Stderr, "  GET    /qr?text=...&level=Q[&format=datauri]\n")
		fmt.Fprintf(os.Stderr, "  GET    /history\n")
		fmt.Fprintf(os.Stderr, "  DELETE /history\n")
		fmt.Fprintf(os.Stderr, "  GET    /health\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  qrpop serve\n")
		fmt.Fprintf(os.Stderr, "  qrpop serve --port 3000 --level H\n")
	}

	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if *portFlag < 0 || *portFlag > 65535 {
		fmt.Fprintf(os.Stderr, "Error: port must be between 0 and 65535\n")
		return 2
	}

	cfg := config.Load()
	if *levelFlag != "" {
		cfg.Level = *levelFlag
	}
	level, err := qr.ParseLevel(cfg.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)
	opts := []server.Option{
		server.WithPort(*portFlag),
		server.WithCORSOrigin(*corsOriginFlag),
		server.WithLevel(level),
		server.WithAppearance(cfg.Size, cfg.Foreground, cfg.Background),
		server.WithLogger(logger),
	}

	var srv *server.Server
	if *noHistoryFlag {
		srv = server.New(qr.NewRenderer(), nil, opts...)
	} else {
		store, closeHist, err := openHistory(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v; history will not be kept\n", err)
		}
		defer closeHist()
		srv = server.New(qr.NewRenderer(), store, opts...)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Serving QR codes on http://localhost:%d/qr?text=hello\n", *portFlag)
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
