// Package testutil loads shared test fixtures. Telegram captures live
// under a repo-level testdata directory so the decoder packages and the
// public API tests can share them.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// LoadHex returns the trimmed contents of a .hex fixture.
func LoadHex(t *testing.T, rel string) string {
	t.Helper()
	return strings.TrimSpace(string(read(t, rel)))
}

// LoadJSON unmarshals a JSON fixture into v.
func LoadJSON(t *testing.T, rel string, v any) {
	t.Helper()
	if err := json.Unmarshal(read(t, rel), v); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
}

func read(t *testing.T, rel string) []byte {
	t.Helper()
	candidates := []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}
