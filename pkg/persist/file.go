package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir is a file-backed KV store: one file per key inside a directory. It is
// what the CLI front-end uses so an interrupted terminal session can resume.
type Dir struct {
	root string
}

// NewDir creates the directory if needed and returns the store.
func NewDir(root string) (*Dir, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("persist: state directory is required")
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, err
	}
	return &Dir{root: root}, nil
}

// Get implements KV.
func (d *Dir) Get(key string) (string, bool) {
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set implements KV.
func (d *Dir) Set(key, value string) error {
	return os.WriteFile(d.path(key), []byte(value), 0o600)
}

// Remove implements KV.
func (d *Dir) Remove(key string) {
	_ = os.Remove(d.path(key))
}

// path encodes the key into a safe file name. Bytes outside [a-zA-Z0-9._-]
// are hex-escaped as %XX, and '%' itself is escaped, so distinct keys never
// collide on the same file.
func (d *Dir) path(key string) string {
	var name strings.Builder
	for i := 0; i < len(key); i++ {
		b := key[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
			name.WriteByte(b)
		case b == '.' || b == '-' || b == '_':
			name.WriteByte(b)
		default:
			fmt.Fprintf(&name, "%%%02X", b)
		}
	}
	return filepath.Join(d.root, name.String()+".json")
}
