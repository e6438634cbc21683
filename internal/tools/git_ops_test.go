package tools

import (
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@test",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@test",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}

	run("init")
	if err := os.WriteFile(filepath.Join(dir, "doc.md"),
		[]byte("| Name | Age |\n| --- | --- |\n| alice | 30 |\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", "doc.md")
	run("commit", "-m", "initial")

	return dir
}

func TestGitDiffSourceUnifiedDiff(t *testing.T) {
	dir := initTestRepo(t)

	if err := os.WriteFile(filepath.Join(dir, "doc.md"),
		[]byte("| Name | Age |\n| --- | --- |\n| alice | 31 |\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	source := &GitDiffSource{WorkDir: dir}
	diff, err := source.UnifiedDiff("doc.md", "")
	if err != nil {
		t.Fatalf("UnifiedDiff failed: %v", err)
	}

	if diff == "" {
		t.Fatal("expected a non-empty diff for a modified file")
	}
	for _, want := range []string{"@@", "-| alice | 30 |", "+| alice | 31 |"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q:\n%s", want, diff)
		}
	}
}

func TestGitDiffSourceCleanFile(t *testing.T) {
	dir := initTestRepo(t)

	source := &GitDiffSource{WorkDir: dir}
	diff, err := source.UnifiedDiff("doc.md", "")
	if err != nil {
		t.Fatalf("UnifiedDiff failed: %v", err)
	}
	if diff != "" {
		t.Errorf("expected empty diff for unmodified file, got:\n%s", diff)
	}
}

func TestGitDiffSourceIsTracked(t *testing.T) {
	dir := initTestRepo(t)
	source := &GitDiffSource{WorkDir: dir}

	if !source.IsTracked("doc.md") {
		t.Error("committed file should be tracked")
	}
	if source.IsTracked("missing.md") {
		t.Error("nonexistent file should not be tracked")
	}
}

func TestGitDiffSourceUnavailableBinary(t *testing.T) {
	source := &GitDiffSource{GitBinary: "definitely-not-a-real-binary"}
	if _, err := source.UnifiedDiff("doc.md", ""); err == nil {
		t.Error("expected error for missing git binary")
	}
}

func TestParseTrackedFiles(t *testing.T) {
	tests := []struct {
		input  string
		expect []string
	}{
		{"", []string{}},
		{"a.md\n", []string{"a.md"}},
		{"a.md\nb.md\n\nc.md\n", []string{"a.md", "b.md", "c.md"}},
		{"  spaced.md  \n", []string{"spaced.md"}},
	}

	for _, tt := range tests {
		if got := ParseTrackedFiles(tt.input); !reflect.DeepEqual(got, tt.expect) {
			t.Errorf("ParseTrackedFiles(%q) = %v; want %v", tt.input, got, tt.expect)
		}
	}
}
