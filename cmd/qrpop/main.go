package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/qrpop/internal/app"
	"github.com/sadopc/qrpop/internal/config"
	"github.com/sadopc/qrpop/internal/core/qr"
	"github.com/sadopc/qrpop/internal/export"
	"github.com/sadopc/qrpop/internal/logging"
	"github.com/sadopc/qrpop/pkg/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "gen":
			genCmd()
			return
		case "history":
			historyCmd()
			return
		case "serve":
			serveCmd()
			return
		case "completion":
			completionCmd()
			return
		case "version":
			fmt.Println(version.String())
			return
		case "help":
			printHelp()
			return
		}
	}
	tuiCmd()
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `qrpop - QR codes in the terminal

Usage:
  qrpop [flags]                    Launch TUI (interactive mode)
  qrpop <command> [args] [flags]   Run a subcommand

Commands:
  gen         Generate a QR code PNG from text
  history     List or clear the saved history
  serve       Serve QR codes and history over HTTP
  completion  Generate shell completion scripts (bash, zsh, fish)
  version     Print version information
  help        Show this help message

TUI Flags:
  --level <L|M|Q|H>  Error correction level
  --theme <name>     Color theme
  --version          Print version and exit

Run 'qrpop <command> --help' for more information about a command.
`)
}

func tuiCmd() {
	os.Exit(tuiMain())
}

// tuiMain runs the TUI and returns the exit code. Deferred cleanup
// completes before the caller exits.
func tuiMain() int {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	levelFlag := flag.String("level", "", "Error correction level: L, M, Q, H")
	themeFlag := flag.String("theme", "", "Color theme name")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.String())
		return 0
	}

	cfg := config.Load()
	if *levelFlag != "" {
		if _, err := qr.ParseLevel(*levelFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
		cfg.Level = *levelFlag
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}

	// The TUI owns the terminal, so logs go to a file.
	logger, logCloser, err := logging.OpenFile(cfg.ResolvedDataDir(), cfg.LogLevel)
	if err != nil {
		logger = logging.Discard()
	} else {
		defer logCloser.Close()
	}

	hist, closeHist, err := openHistory(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; history will not be kept\n", err)
	}
	defer closeHist()

	model, err := app.New(cfg, app.Deps{
		History:    hist,
		Downloader: export.NewDirDownloader(downloadDir(cfg)),
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
