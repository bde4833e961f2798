package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/qrpop/internal/config"
	"github.com/sadopc/qrpop/internal/controller"
	"github.com/sadopc/qrpop/internal/core/history"
	"github.com/sadopc/qrpop/internal/core/kv"
	"github.com/sadopc/qrpop/internal/core/qr"
	"github.com/sadopc/qrpop/internal/export"
	"github.com/sadopc/qrpop/internal/logging"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRunGen_WritesFileAndRecords(t *testing.T) {
	dir := t.TempDir()
	store := history.NewStore(kv.NewMemory())
	var stdout, stderr bytes.Buffer

	path, err := runGen(context.Background(), config.DefaultConfig(), store, export.NewDirDownloader(dir),
		genOptions{Text: "https://example.com", Level: qr.High}, &stdout, &stderr, logging.Discard())
	if err != nil {
		t.Fatalf("runGen: %v", err)
	}

	want := filepath.Join(dir, "qr-code-https___example.com.png")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("file is not a PNG")
	}
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("unexpected output %q / %q", stdout.String(), stderr.String())
	}

	list, _ := store.Load(context.Background())
	if len(list) != 1 || list[0].Text != "https://example.com" {
		t.Errorf("unexpected history %v", list.Texts())
	}
}

func TestRunGen_ExplicitPathAndPrint(t *testing.T) {
	out := filepath.Join(t.TempDir(), "code.png")
	var stdout bytes.Buffer

	path, err := runGen(context.Background(), config.DefaultConfig(), history.NewStore(kv.NewMemory()),
		fileDownloader{path: out}, genOptions{Text: "hi", Print: true}, &stdout, io.Discard, logging.Discard())
	if err != nil {
		t.Fatalf("runGen: %v", err)
	}
	if path != out {
		t.Errorf("path = %q, want %q", path, out)
	}
	if !strings.Contains(stdout.String(), "█") {
		t.Error("expected terminal rendering on stdout")
	}
}

func TestRunGen_Stdout(t *testing.T) {
	var png bytes.Buffer
	path, err := runGen(context.Background(), config.DefaultConfig(), history.NewStore(kv.NewMemory()),
		writerDownloader{w: &png}, genOptions{Text: "pipe"}, io.Discard, io.Discard, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if path != "-" || !bytes.HasPrefix(png.Bytes(), pngMagic) {
		t.Errorf("expected PNG on writer, path %q", path)
	}
}

func TestRunGen_EmptyText(t *testing.T) {
	dir := t.TempDir()
	_, err := runGen(context.Background(), config.DefaultConfig(), history.NewStore(kv.NewMemory()),
		export.NewDirDownloader(dir), genOptions{Text: " \n\t"}, io.Discard, io.Discard, logging.Discard())
	if !errors.Is(err, controller.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected nothing written, got %d files", len(entries))
	}
}

type readOnlyKV struct{ kv.Store }

func (readOnlyKV) Set(context.Context, string, []byte) error { return errors.New("read-only") }

func TestRunGen_HistoryFailureIsWarning(t *testing.T) {
	var stderr bytes.Buffer
	store := history.NewStore(readOnlyKV{kv.NewMemory()})

	_, err := runGen(context.Background(), config.DefaultConfig(), store, writerDownloader{w: io.Discard},
		genOptions{Text: "x"}, io.Discard, &stderr, logging.Discard())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Warning: History not saved") {
		t.Errorf("expected warning, got %q", stderr.String())
	}
}

func TestFileDownloader_Error(t *testing.T) {
	d := fileDownloader{path: filepath.Join(t.TempDir(), "missing", "x.png")}
	if _, err := d.Save("ignored", []byte("x")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestParseArgs_Interspersed(t *testing.T) {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	level := fs.String("level", "", "")
	noHistory := fs.Bool("no-history", false, "")

	args, err := parseArgs(fs, []string{"hello", "--level", "Q", "world", "--no-history"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(args, " ") != "hello world" {
		t.Errorf("positional = %v", args)
	}
	if *level != "Q" || !*noHistory {
		t.Errorf("flags not parsed: level=%q no-history=%v", *level, *noHistory)
	}
}

func TestGenMain_ExitCodes(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dataDir := filepath.Join(home, "data")
	cfgPath := filepath.Join(home, ".config", "qrpop", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgPath, []byte("storage: sqlite\ndata_dir: "+dataDir+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(home, "code.png")

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  int
	}{
		{"missing text", nil, "", 2},
		{"bad level", []string{"hi", "--level", "Z"}, "", 2},
		{"blank stdin after history opens", []string{"-", "--out", out}, "   ", 2},
		{"success", []string{"hello", "--out", out}, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			got := genMain(tt.args, strings.NewReader(tt.stdin), io.Discard, &stderr)
			if got != tt.want {
				t.Errorf("exit code = %d, want %d (stderr %q)", got, tt.want, stderr.String())
			}
		})
	}

	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected PNG at %s: %v", out, err)
	}
	store, closeHist, err := openHistory(config.Load(), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer closeHist()
	list, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Text != "hello" {
		t.Errorf("history = %+v, want [hello]", list)
	}
}
