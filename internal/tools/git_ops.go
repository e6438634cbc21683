package tools

import (
	"fmt"
	"os/exec"
	"strings"
)

// GitDiffSource retrieves unified-diff text by shelling out to git. Output is
// requested with zero context lines so every hunk maps exactly onto changed
// table rows. It satisfies the analyzer's DiffSource interface.
type GitDiffSource struct {
	// GitBinary overrides the git executable; empty means "git" from PATH.
	GitBinary string
	// WorkDir is the repository directory to run git in; empty means the
	// current working directory.
	WorkDir string
}

// NewGitDiffSource returns a source using "git" from PATH in the current
// directory.
func NewGitDiffSource() *GitDiffSource {
	return &GitDiffSource{}
}

// UnifiedDiff runs `git diff --unified=0 [revRange] -- filePath` and returns
// its output. An empty revRange diffs the working tree against HEAD. Errors
// (file untracked, not a repository, git unavailable) are returned as-is; the
// caller treats them as "no diff available".
func (s *GitDiffSource) UnifiedDiff(filePath, revRange string) (string, error) {
	bin := s.GitBinary
	if bin == "" {
		bin = "git"
	}

	args := []string{"diff", "--unified=0"}
	if revRange != "" {
		args = append(args, revRange)
	}
	args = append(args, "--", filePath)

	cmd := exec.Command(bin, args...)
	if s.WorkDir != "" {
		cmd.Dir = s.WorkDir
	}
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get diff for %s: %w", filePath, err)
	}

	return string(output), nil
}

// IsTracked reports whether filePath is under version control. Untracked
// files have no history to diff against, so callers can skip the diff call
// entirely.
func (s *GitDiffSource) IsTracked(filePath string) bool {
	bin := s.GitBinary
	if bin == "" {
		bin = "git"
	}

	cmd := exec.Command(bin, "ls-files", "--error-unmatch", "--", filePath)
	if s.WorkDir != "" {
		cmd.Dir = s.WorkDir
	}
	return cmd.Run() == nil
}

// ParseTrackedFiles splits `git ls-files` style output into a file list,
// dropping blank lines.
func ParseTrackedFiles(output string) []string {
	if output == "" {
		return []string{}
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}

	return files
}
