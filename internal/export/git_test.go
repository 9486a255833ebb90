package export

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// newTestClone creates a bare remote with one commit on main and returns the
// path of a working clone.
func newTestClone(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	remoteDir := t.TempDir()
	run(t, remoteDir, "git", "init", "--bare")

	workDir := t.TempDir()
	run(t, workDir, "git", "clone", remoteDir, "repo")
	repoDir := filepath.Join(workDir, "repo")

	run(t, repoDir, "git", "config", "user.email", "test@test.com")
	run(t, repoDir, "git", "config", "user.name", "Test")
	run(t, repoDir, "git", "symbolic-ref", "HEAD", "refs/heads/main")

	if err := os.WriteFile(filepath.Join(repoDir, ".gitkeep"), nil, 0o644); err != nil {
		t.Fatalf("write .gitkeep: %v", err)
	}
	run(t, repoDir, "git", "add", ".")
	run(t, repoDir, "git", "commit", "-m", "init")
	run(t, repoDir, "git", "push", "origin", "main")
	return repoDir
}

func TestGitDestination(t *testing.T) {
	repoDir := newTestClone(t)
	dest := NewGitDestination(repoDir, "graph.jsonl", "main")
	ctx := context.Background()

	data1 := []byte(`{"version":"1","type":"header"}` + "\n")
	if err := dest.Write(ctx, data1); err != nil {
		t.Fatalf("first write: %v", err)
	}
	assertFile(t, filepath.Join(repoDir, "graph.jsonl"), data1)
	if got := lastCommitSubject(t, repoDir); got != CommitMessage {
		t.Errorf("commit subject = %q, want %q", got, CommitMessage)
	}
	commits := commitCount(t, repoDir)

	// Unchanged data commits nothing.
	if err := dest.Write(ctx, data1); err != nil {
		t.Fatalf("second write: %v", err)
	}
	if got := commitCount(t, repoDir); got != commits {
		t.Errorf("commit count = %d after no-op write, want %d", got, commits)
	}

	data2 := []byte(`{"version":"1","type":"header","node_count":1}` + "\n")
	if err := dest.Write(ctx, data2); err != nil {
		t.Fatalf("third write: %v", err)
	}
	assertFile(t, filepath.Join(repoDir, "graph.jsonl"), data2)
	if got := commitCount(t, repoDir); got != commits+1 {
		t.Errorf("commit count = %d, want %d", got, commits+1)
	}
}

func TestGitDestination_SubDirectory(t *testing.T) {
	repoDir := newTestClone(t)
	dest := NewGitDestination(repoDir, "exports/graph.jsonl", "main")

	data := []byte(`{"type":"header"}` + "\n")
	if err := dest.Write(context.Background(), data); err != nil {
		t.Fatalf("write: %v", err)
	}
	assertFile(t, filepath.Join(repoDir, "exports", "graph.jsonl"), data)
}

func assertFile(t *testing.T, path string, want []byte) {
	t.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if string(got) != string(want) {
		t.Fatalf("content mismatch: got %q, want %q", got, want)
	}
}

func lastCommitSubject(t *testing.T, dir string) string {
	t.Helper()
	return strings.TrimSpace(output(t, dir, "git", "log", "-1", "--format=%s"))
}

func commitCount(t *testing.T, dir string) int {
	t.Helper()
	return len(strings.Fields(output(t, dir, "git", "rev-list", "HEAD")))
}

func output(t *testing.T, dir string, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("%s %v failed: %v", name, args, err)
	}
	return string(out)
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("%s %v failed: %v", name, args, err)
	}
}
