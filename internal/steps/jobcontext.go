package steps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JobContext carries the per-entry state the sequential steps build up: the
// workspace the checkout step populates, the interpreter the setup step
// resolves, and the environment later steps run under. Entries never share
// a JobContext.
type JobContext struct {
	// Workspace is the entry's private directory; checkout materializes the
	// repository here and every command runs with it as working directory.
	Workspace string
	// Repo is the repository (local path or URL) the entry checks out.
	Repo string
	// Revision is the commit-ish to check out. Empty means the default
	// branch head.
	Revision string
	// Interpreter is the resolved python binary, set by setup_python.
	Interpreter string

	env []string
}

// NewJobContext builds a context with the parent process environment.
func NewJobContext(workspace, repo, revision string) *JobContext {
	return &JobContext{
		Workspace: workspace,
		Repo:      repo,
		Revision:  revision,
		env:       os.Environ(),
	}
}

// Environ returns the environment commands run under.
func (j *JobContext) Environ() []string {
	return j.env
}

// Setenv sets or replaces a variable in the job environment.
func (j *JobContext) Setenv(key, value string) {
	prefix := key + "="
	for i, kv := range j.env {
		if strings.HasPrefix(kv, prefix) {
			j.env[i] = prefix + value
			return
		}
	}
	j.env = append(j.env, prefix+value)
}

// PrependPath puts dir at the front of the job's PATH so binaries installed
// into the entry's environment win over system ones.
func (j *JobContext) PrependPath(dir string) {
	j.Setenv("PATH", dir+string(os.PathListSeparator)+j.pathValue())
}

func (j *JobContext) pathValue() string {
	for _, kv := range j.env {
		if strings.HasPrefix(kv, "PATH=") {
			return strings.TrimPrefix(kv, "PATH=")
		}
	}
	return ""
}

// LookPath resolves an executable name against the job's PATH rather than
// the parent process's, so venv-installed tools are found.
func (j *JobContext) LookPath(name string) (string, error) {
	if strings.Contains(name, string(os.PathSeparator)) {
		return name, nil
	}
	for _, dir := range filepath.SplitList(j.pathValue()) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0o111 != 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("executable %q not found in job PATH", name)
}
