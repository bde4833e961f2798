package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	sq, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sq.Close() })

	f, err := OpenFile(filepath.Join(t.TempDir(), "kv.json"))
	if err != nil {
		t.Fatal(err)
	}

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sq,
		"file":   f,
	}
}

func TestStore_GetMissingKey(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := s.Get(context.Background(), "qrHistory")
			if err != nil {
				t.Fatal(err)
			}
			if ok {
				t.Errorf("expected missing key, got %q", v)
			}
		})
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, "k", []byte(`[1]`)); err != nil {
				t.Fatal(err)
			}
			if err := s.Set(ctx, "k", []byte(`[2,3]`)); err != nil {
				t.Fatal(err)
			}
			v, ok, err := s.Get(ctx, "k")
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				t.Fatal("expected key to exist")
			}
			if string(v) != `[2,3]` {
				t.Errorf("got %q, want [2,3]", v)
			}
		})
	}
}

func TestStore_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s.Set(ctx, "a", []byte(`"one"`))
			s.Set(ctx, "b", []byte(`"two"`))

			v, _, _ := s.Get(ctx, "a")
			if string(v) != `"one"` {
				t.Errorf("a = %q, want \"one\"", v)
			}
			v, _, _ = s.Get(ctx, "b")
			if string(v) != `"two"` {
				t.Errorf("b = %q, want \"two\"", v)
			}
		})
	}
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kv.json")
	ctx := context.Background()

	f1, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f1.Set(ctx, "qrHistory", []byte(`[{"text":"hello"}]`)); err != nil {
		t.Fatal(err)
	}

	f2, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	v, ok, err := f2.Get(ctx, "qrHistory")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || string(v) != `[{"text":"hello"}]` {
		t.Errorf("got %q (ok=%v)", v, ok)
	}

	// no temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the kv file in dir, got %d entries", len(entries))
	}
}

func TestFile_RejectsInvalidJSON(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "kv.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Set(context.Background(), "k", []byte("not json")); err == nil {
		t.Error("expected error for invalid JSON value")
	}
}

func TestFile_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := f.Get(context.Background(), "k"); err == nil {
		t.Error("expected parse error for corrupt document")
	}
}

func TestFile_SetRecoversFromCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := f.Set(ctx, "k", []byte(`["v"]`)); err != nil {
		t.Fatalf("Set on corrupt document: %v", err)
	}
	got, ok, err := f.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get after recovery: ok=%v err=%v", ok, err)
	}
	if string(got) != `["v"]` {
		t.Errorf("got %s, want [\"v\"]", got)
	}

	saved, err := os.ReadFile(path + ".corrupt")
	if err != nil {
		t.Fatalf("expected corrupt document kept aside: %v", err)
	}
	if string(saved) != "{broken" {
		t.Errorf("corrupt copy = %q", saved)
	}
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory()
	if err := m.Set(ctx, "k", []byte(`1`)); err == nil {
		t.Error("expected error on canceled context")
	}
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	for _, backend := range []string{BackendSQLite, BackendJSON, BackendMemory, ""} {
		s, err := Open(backend, dir)
		if err != nil {
			t.Fatalf("Open(%q) error: %v", backend, err)
		}
		s.Close()
	}

	if _, err := Open("redis", dir); err == nil {
		t.Error("expected error for unknown backend")
	}
}
