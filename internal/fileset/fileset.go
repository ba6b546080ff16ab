// Package fileset computes the list of version-controlled files a lint step
// runs against. The authoritative source is `git ls-files` in the job
// workspace; when the workspace is not a git checkout (or git is missing)
// it falls back to a filesystem walk. Either way the candidate paths are
// filtered through the same glob matcher, so a pattern never selects files
// outside its tree.
package fileset

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/flowgrid/internal/ctxlog"
)

// List returns the workspace-relative paths of tracked files matching the
// glob pattern, in git's listing order (lexical order for the walk
// fallback). An empty result is not an error.
func List(ctx context.Context, workspace, pattern string) ([]string, error) {
	candidates, err := trackedFiles(ctx, workspace)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, c := range candidates {
		if Match(pattern, c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// trackedFiles lists every file git tracks in the workspace, falling back
// to a walk of the directory tree.
func trackedFiles(ctx context.Context, workspace string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", workspace, "ls-files", "-z")
	out, err := cmd.Output()
	if err == nil {
		var files []string
		for _, f := range bytes.Split(out, []byte{0}) {
			if len(f) > 0 {
				files = append(files, string(f))
			}
		}
		return files, nil
	}

	logger := ctxlog.FromContext(ctx)
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		logger.Debug("git ls-files failed, walking workspace instead.", "stderr", strings.TrimSpace(string(exitErr.Stderr)))
	case errors.Is(err, exec.ErrNotFound):
		logger.Debug("git binary not found, walking workspace instead.")
	default:
		return nil, err
	}
	return walkFiles(workspace)
}

func walkFiles(workspace string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(workspace, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(workspace, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Match reports whether the slash-separated path matches the glob pattern.
// Pattern segments use path.Match syntax; a `**` segment matches zero or
// more path segments, so "pkg/**/*.py" covers both "pkg/a.py" and
// "pkg/sub/a.py".
func Match(pattern, name string) bool {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pattern, parts []string) bool {
	if len(pattern) == 0 {
		return len(parts) == 0
	}
	if pattern[0] == "**" {
		for i := 0; i <= len(parts); i++ {
			if matchSegments(pattern[1:], parts[i:]) {
				return true
			}
		}
		return false
	}
	if len(parts) == 0 {
		return false
	}
	if ok, err := path.Match(pattern[0], parts[0]); err != nil || !ok {
		return false
	}
	return matchSegments(pattern[1:], parts[1:])
}
