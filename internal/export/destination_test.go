package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "graph.jsonl")
	dest := NewFileDestination(path)

	for _, data := range []string{"first\n", "second\n"} {
		if err := dest.Write(context.Background(), []byte(data)); err != nil {
			t.Fatalf("write: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(got) != data {
			t.Errorf("content = %q, want %q", got, data)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("leftover temp files: %v", entries)
	}
	if dest.Name() != "file:"+path {
		t.Errorf("Name = %q", dest.Name())
	}
}
