package kv

import (
	"fmt"
	"os"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendMemory = "memory"
)

// Open creates the store named by backend inside dataDir.
func Open(backend, dataDir string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendJSON:
		return OpenFile(filepath.Join(dataDir, "qrpop.json"))
	case BackendSQLite, "":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		return OpenSQLite(filepath.Join(dataDir, "qrpop.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q (use sqlite, json, or memory)", backend)
	}
}
