package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// UpdateEnv names the environment variable that rewrites golden files.
const UpdateEnv = "GOLDEN_UPDATE"

// Golden compares got against testdata/<name>.golden.
// If UpdateEnv is set, the golden file is rewritten instead.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")

	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, got, 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nGot:\n%s", goldenPath, err, got)
	}

	if !bytes.Equal(got, want) {
		t.Errorf("output mismatch for %s\nWant:\n%q\nGot:\n%q", name, want, got)
	}
}

// GoldenString is like Golden but takes a string.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()
	Golden(t, name, []byte(got))
}

// CountingWriter records each Write call separately.
type CountingWriter struct {
	Writes [][]byte
	Err    error
}

// Write implements io.Writer. When Err is set it is returned and nothing is recorded.
func (w *CountingWriter) Write(p []byte) (int, error) {
	if w.Err != nil {
		return 0, w.Err
	}
	w.Writes = append(w.Writes, append([]byte(nil), p...))
	return len(p), nil
}

// String returns everything written so far.
func (w *CountingWriter) String() string {
	return string(bytes.Join(w.Writes, nil))
}
